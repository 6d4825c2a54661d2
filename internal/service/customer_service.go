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

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// Create creates a new customer.
func (s *customerService) Create(ctx context.Context, req *model.CustomerCreate) (*model.Customer, error) {
	c := &model.Customer{
		ID:              uuid.New(),
		Name:            req.Name,
		Email:           req.Email,
		Company:         req.Company,
		Phone:           req.Phone,
		ShippingStreet:  req.ShippingStreet,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		ShippingCountry: req.ShippingCountry,
		CreatedAt:       time.Now(),
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetByID retrieves a customer.
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if c == nil {
		return nil, model.ErrCustomerNotFound
	}
	return c, nil
}

// List retrieves all customers.
func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.customerRepo.List(ctx)
}

// Update applies a partial customer update.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, patch *model.CustomerUpdate) (*model.Customer, error) {
	c, err := s.customerRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, model.ErrCustomerNotFound
	}
	return c, nil
}
