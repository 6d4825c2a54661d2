package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shopcore/internal/coupon"
	"shopcore/internal/model"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	couponRepo   repository.CouponRepository
	customerRepo repository.CustomerRepository
	validator    coupon.Validator
	alerts       AlertService
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	customerRepo repository.CustomerRepository,
	validator coupon.Validator,
	alerts AlertService,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		couponRepo:   couponRepo,
		customerRepo: customerRepo,
		validator:    validator,
		alerts:       alerts,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder converts a cart into a persisted order in one transaction.
// Stock reservations, order and line item inserts, and the coupon
// redemption either all commit or all roll back; a partial order is never
// created. Restock alert checks run after the commit and never fail the
// order.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify customer: %w", err)
		}
		if customer == nil {
			return nil, model.ErrCustomerNotFound
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// Reserve stock in ascending product-ID order. With every placement
	// locking product rows in the same order, two competing multi-item
	// checkouts cannot deadlock on each other.
	lines := make([]model.OrderItemRequest, len(req.Items))
	copy(lines, req.Items)
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID.String() < lines[j].ProductID.String()
	})

	now := time.Now()
	orderID := uuid.New()
	var subtotal float64
	items := make([]model.OrderItem, 0, len(lines))

	for _, line := range lines {
		var product *model.Product
		product, err = s.productRepo.ReserveStock(ctx, tx, line.ProductID, line.Quantity)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("product_id", line.ProductID.String()).
				Int("quantity", line.Quantity).
				Msg("stock reservation failed, aborting order")
			return nil, err
		}

		subtotal += product.Price * float64(line.Quantity)
		items = append(items, model.OrderItem{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.Price,
		})
	}
	subtotal = model.RoundCents(subtotal)

	// Re-validate the coupon against the just-computed subtotal. A stale
	// client-side validation must abort the order, not silently drop the
	// discount.
	var discount float64
	var couponCode *string
	if req.CouponCode != nil && *req.CouponCode != "" {
		var result *model.CouponValidationResult
		result, err = s.validator.Validate(ctx, *req.CouponCode, subtotal)
		if err != nil {
			return nil, fmt.Errorf("failed to validate coupon: %w", err)
		}
		if !result.Valid {
			s.logger.Warn().
				Str("coupon_code", *req.CouponCode).
				Str("reason", result.Reason).
				Msg("coupon rejected, aborting order")
			err = model.NewDomainError(model.ErrCodeInvalidCoupon, result.Message)
			return nil, err
		}

		var redeemed bool
		redeemed, err = s.couponRepo.Redeem(ctx, tx, result.Coupon.ID)
		if err != nil {
			return nil, err
		}
		if !redeemed {
			// Another checkout claimed the last use between our read and
			// the guarded increment.
			err = model.NewDomainError(model.ErrCodeInvalidCoupon, "Coupon usage limit reached")
			return nil, err
		}

		discount = result.DiscountAmount
		couponCode = &result.Coupon.Code
	}

	order := &model.Order{
		ID:             orderID,
		CustomerID:     req.CustomerID,
		TotalAmount:    model.RoundCents(subtotal - discount),
		Status:         model.StatusPending,
		CouponCode:     couponCode,
		DiscountAmount: discount,
		CreatedAt:      now,
		UpdatedAt:      now,
		Items:          items,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to commit order")
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Int("item_count", len(items)).
		Float64("total", order.TotalAmount).
		Msg("order placed")

	s.checkRestockAlerts(ctx, items)

	return order, nil
}

// checkRestockAlerts runs the low-stock check for every product touched by
// the order. Best effort: a failed check is logged, never propagated.
func (s *orderService) checkRestockAlerts(ctx context.Context, items []model.OrderItem) {
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true

		if err := s.alerts.CheckProduct(ctx, item.ProductID); err != nil {
			s.logger.Error().
				Err(err).
				Str("product_id", item.ProductID.String()).
				Msg("restock alert check failed")
		}
	}
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// List retrieves orders with pagination, most recent first.
func (s *orderService) List(ctx context.Context, page, limit int) (*model.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.orderRepo.List(ctx, page, limit)
}

// ListUnassigned retrieves orders without a customer.
func (s *orderService) ListUnassigned(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListUnassigned(ctx)
}

// ListByCustomer retrieves a customer's orders.
func (s *orderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

// UpdateStatus moves an order through its lifecycle. The transition table
// is checked under a row lock, and stock restoration for cancellations and
// returns commits atomically with the status write.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, target model.OrderStatus) (*model.Order, error) {
	if !target.Valid() {
		return nil, model.NewDomainError(
			model.ErrCodeIllegalStatusTransition,
			fmt.Sprintf("Unknown order status %q", target),
		)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(target)).
			Msg("illegal status transition rejected")
		err = model.NewDomainError(
			model.ErrCodeIllegalStatusTransition,
			fmt.Sprintf("Cannot transition from %q to %q", order.Status, target),
		)
		return nil, err
	}

	if target.RestoresStock() {
		var items []model.OrderItem
		items, err = s.orderRepo.ItemsByOrder(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if err = s.productRepo.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, tx, id, target)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	return updated, nil
}

// AttachCustomer assigns an unassigned order to a customer.
func (s *orderService) AttachCustomer(ctx context.Context, orderID, customerID uuid.UUID) (*model.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	return s.orderRepo.AttachCustomer(ctx, orderID, customerID)
}

// DetachCustomer clears the customer reference on an order.
func (s *orderService) DetachCustomer(ctx context.Context, orderID, customerID uuid.UUID) error {
	return s.orderRepo.DetachCustomer(ctx, orderID, customerID)
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "order request is nil")
	}

	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "order must contain at least one item")
	}

	seen := make(map[uuid.UUID]bool, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("item %d: product ID is required", i))
		}
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID.String()).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
		if seen[item.ProductID] {
			return model.NewDomainError(model.ErrCodeInvalidQuantity,
				fmt.Sprintf("item %d: duplicate product in cart", i))
		}
		seen[item.ProductID] = true
	}

	return nil
}
