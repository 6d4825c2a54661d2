package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAlert(productID uuid.UUID) *model.Alert {
	return &model.Alert{
		ID:               uuid.New(),
		Type:             model.AlertTypeRestock,
		Message:          fmt.Sprintf("Product %s is low on stock", productID),
		Status:           model.AlertActive,
		ProductID:        productID,
		CurrentStock:     2,
		ReorderThreshold: 5,
		CreatedAt:        time.Now(),
	}
}

func TestAlertRepository_CreateIfAbsent_Deduplicates(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(pool, zerolog.Nop())

	product := seedProduct(t, pool, "Widget", "WID-1", 10.00, 2, 5)

	created, err := repo.CreateIfAbsent(ctx, newTestAlert(product.ID))
	require.NoError(t, err)
	assert.True(t, created)

	// Second active alert for the same product is swallowed.
	created, err = repo.CreateIfAbsent(ctx, newTestAlert(product.ID))
	require.NoError(t, err)
	assert.False(t, created)

	alerts, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestAlertRepository_CreateIfAbsent_ConcurrentSingleWinner(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(pool, zerolog.Nop())

	product := seedProduct(t, pool, "Widget", "WID-1", 10.00, 2, 5)

	const attempts = 5
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.CreateIfAbsent(ctx, newTestAlert(product.ID))
			if err == nil {
				results <- created
			}
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for created := range results {
		if created {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestAlertRepository_CreateIfAbsent_AllowedAfterResolution(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(pool, zerolog.Nop())

	product := seedProduct(t, pool, "Widget", "WID-1", 10.00, 2, 5)

	first := newTestAlert(product.ID)
	created, err := repo.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	require.True(t, created)

	_, err = repo.UpdateStatus(ctx, first.ID, model.AlertOrdered)
	require.NoError(t, err)

	// Stock dipped again after the restock order; a fresh alert is allowed.
	created, err = repo.CreateIfAbsent(ctx, newTestAlert(product.ID))
	require.NoError(t, err)
	assert.True(t, created)

	alerts, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestAlertRepository_UpdateStatus(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(pool, zerolog.Nop())

	product := seedProduct(t, pool, "Widget", "WID-1", 10.00, 2, 5)
	alert := newTestAlert(product.ID)
	_, err := repo.CreateIfAbsent(ctx, alert)
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, alert.ID, model.AlertDismissed)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.AlertDismissed, updated.Status)

	// Dismissed is terminal.
	_, err = repo.UpdateStatus(ctx, alert.ID, model.AlertOrdered)
	require.Error(t, err)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeIllegalStatusTransition, domainErr.Code)
}

func TestAlertRepository_UpdateStatus_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(pool, zerolog.Nop())

	_, err := repo.UpdateStatus(ctx, uuid.New(), model.AlertOrdered)
	assert.ErrorIs(t, err, model.ErrAlertNotFound)
}

func TestAlertRepository_List_StatusFilter(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(pool, zerolog.Nop())

	first := seedProduct(t, pool, "Widget", "WID-1", 10.00, 2, 5)
	second := seedProduct(t, pool, "Gadget", "GAD-1", 15.00, 1, 5)

	alertA := newTestAlert(first.ID)
	alertB := newTestAlert(second.ID)
	_, err := repo.CreateIfAbsent(ctx, alertA)
	require.NoError(t, err)
	_, err = repo.CreateIfAbsent(ctx, alertB)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, alertA.ID, model.AlertOrdered)
	require.NoError(t, err)

	active := model.AlertActive
	alerts, err := repo.List(ctx, &active)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, alertB.ID, alerts[0].ID)

	ordered := model.AlertOrdered
	alerts, err = repo.List(ctx, &ordered)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, alertA.ID, alerts[0].ID)
}
