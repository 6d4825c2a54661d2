package service

import (
	"context"
	"fmt"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// alertService implements AlertService.
type alertService struct {
	alertRepo   repository.AlertRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewAlertService creates a new alert service.
func NewAlertService(
	alertRepo repository.AlertRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) AlertService {
	return &alertService{
		alertRepo:   alertRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "alert").Logger(),
	}
}

// CheckProduct raises a restock alert when stock has fallen to or below the
// reorder threshold. The conditional insert in the repository guarantees at
// most one active alert per product even under concurrent checkouts.
func (s *alertService) CheckProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if product.Stock > product.ReorderThreshold {
		return nil
	}

	message := fmt.Sprintf("Restock needed: %q stock is %d, at or below threshold of %d.",
		product.Name, product.Stock, product.ReorderThreshold)

	var supplierEmail string
	if product.SupplierID != nil {
		supplier, err := s.productRepo.GetSupplier(ctx, *product.SupplierID)
		if err != nil {
			return err
		}
		if supplier != nil {
			message += fmt.Sprintf(" Supplier: %s.", supplier.Name)
			supplierEmail = supplier.ContactEmail
		}
	}

	alert := &model.Alert{
		ID:               uuid.New(),
		Type:             model.AlertTypeRestock,
		Message:          message,
		Status:           model.AlertActive,
		ProductID:        product.ID,
		SupplierID:       product.SupplierID,
		CurrentStock:     product.Stock,
		ReorderThreshold: product.ReorderThreshold,
		CreatedAt:        time.Now(),
	}

	created, err := s.alertRepo.CreateIfAbsent(ctx, alert)
	if err != nil {
		return err
	}

	if created && supplierEmail != "" {
		s.notifySupplier(supplierEmail, product.Name, message)
	}

	return nil
}

// notifySupplier is a stub for future mail integration; for now the
// notification is only logged.
func (s *alertService) notifySupplier(email, productName, message string) {
	s.logger.Info().
		Str("to", email).
		Str("subject", "Restock Alert: "+productName).
		Str("body", message).
		Msg("supplier notification")
}

// Create manually raises an alert. Stock figures and the supplier default
// to the product row when the request omits them; at most one active alert
// per product holds here too.
func (s *alertService) Create(ctx context.Context, req *model.AlertCreate) (*model.Alert, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	alert := &model.Alert{
		ID:               uuid.New(),
		Type:             model.AlertTypeRestock,
		Message:          req.Message,
		Status:           model.AlertActive,
		ProductID:        product.ID,
		SupplierID:       product.SupplierID,
		CurrentStock:     product.Stock,
		ReorderThreshold: product.ReorderThreshold,
		CreatedAt:        time.Now(),
	}
	if req.Type != "" {
		alert.Type = req.Type
	}
	if req.SupplierID != nil {
		alert.SupplierID = req.SupplierID
	}
	if req.CurrentStock != nil {
		alert.CurrentStock = *req.CurrentStock
	}
	if req.ReorderThreshold != nil {
		alert.ReorderThreshold = *req.ReorderThreshold
	}

	created, err := s.alertRepo.CreateIfAbsent(ctx, alert)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, model.NewDomainError(
			model.ErrCodeDuplicateAlert,
			"An active alert already exists for this product",
		)
	}

	s.logger.Info().
		Str("alert_id", alert.ID.String()).
		Str("product_id", product.ID.String()).
		Msg("alert created manually")

	return alert, nil
}

// UpdateStatus marks an active alert as ordered or dismissed.
func (s *alertService) UpdateStatus(ctx context.Context, id uuid.UUID, target model.AlertStatus) (*model.Alert, error) {
	if !target.Valid() || target == model.AlertActive {
		return nil, model.NewDomainError(
			model.ErrCodeIllegalStatusTransition,
			fmt.Sprintf("Alerts can only move to %q or %q", model.AlertOrdered, model.AlertDismissed),
		)
	}

	return s.alertRepo.UpdateStatus(ctx, id, target)
}

// List retrieves alerts, optionally filtered by status.
func (s *alertService) List(ctx context.Context, status *model.AlertStatus) ([]model.Alert, error) {
	return s.alertRepo.List(ctx, status)
}
