package services

import (
	"context"
	"fmt"
	"strings"

	"donerci/internal/apperr"
	"donerci/internal/models"
	"donerci/internal/pricing"
	"donerci/internal/repository"

	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderLine is one requested catalog item. Prices are never taken from
// the caller.
type OrderLine struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// Submission is an order request. Checkout submissions carry the full set
// of contact details; API submissions only need a customer name.
type Submission struct {
	Source          models.OrderSource
	CustomerName    string
	ContactEmail    string
	ContactPhone    string
	DeliveryAddress string
	Items           []OrderLine
	// ClientTotal is what the caller displayed. It is only compared against
	// the computed total.
	ClientTotal *decimal.Decimal
}

// Validate reports every missing or malformed field. It performs no I/O.
func (s *Submission) Validate() error {
	var missing []string
	if strings.TrimSpace(s.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if s.Source == models.SourceCheckout {
		if strings.TrimSpace(s.ContactEmail) == "" {
			missing = append(missing, "email")
		}
		if strings.TrimSpace(s.ContactPhone) == "" {
			missing = append(missing, "phone")
		}
		if strings.TrimSpace(s.DeliveryAddress) == "" {
			missing = append(missing, "address")
		}
	}
	if len(s.Items) == 0 {
		missing = append(missing, "items")
	}
	for i, it := range s.Items {
		if it.MenuItemID == 0 {
			missing = append(missing, fmt.Sprintf("items[%d].menu_item_id", i))
		}
		if it.Quantity < 1 {
			missing = append(missing, fmt.Sprintf("items[%d].quantity", i))
		}
	}
	if len(missing) > 0 {
		return apperr.Validation(missing...)
	}
	return nil
}

type OrderService interface {
	// Submit validates the submission and writes the order header and all
	// of its lines in one transaction.
	Submit(ctx context.Context, sub *Submission) (*models.Order, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, actor string) (*models.Order, error)
}

type orderService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	menuRepo      repository.MenuRepository
	activities    ActivityService
	calc          pricing.Calculator
	logger        *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	menuRepo repository.MenuRepository,
	activities ActivityService,
	calc pricing.Calculator,
	logger *zap.Logger,
) OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		menuRepo:      menuRepo,
		activities:    activities,
		calc:          calc,
		logger:        logger,
	}
}

func (s *orderService) Submit(ctx context.Context, sub *Submission) (*models.Order, error) {
	if sub == nil {
		return nil, apperr.Validation("customer_name", "items")
	}
	source := sub.Source
	if source == "" {
		source = models.SourceAPI
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(sub.Items))
	for _, it := range sub.Items {
		ids = append(ids, it.MenuItemID)
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog, err := s.menuRepo.FindForOrder(tx, ids)
		if err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(sub.Items))
		lines := make([]pricing.Line, 0, len(sub.Items))
		for _, it := range sub.Items {
			menuItem, ok := catalog[it.MenuItemID]
			if !ok {
				return fmt.Errorf("menu item %d does not exist", it.MenuItemID)
			}
			items = append(items, models.OrderItem{
				MenuItemID: menuItem.ID,
				Name:       menuItem.Name,
				UnitPrice:  menuItem.Price,
				Quantity:   it.Quantity,
			})
			lines = append(lines, pricing.Line{UnitPrice: menuItem.Price, Quantity: it.Quantity})
		}
		totals := s.calc.Compute(lines)

		// Attributed to the first line's restaurant; mixed carts are not split.
		first := catalog[sub.Items[0].MenuItemID]
		header := &models.Order{
			OrderNumber:     cuid.New(),
			CustomerName:    strings.TrimSpace(sub.CustomerName),
			ContactEmail:    strings.TrimSpace(sub.ContactEmail),
			ContactPhone:    strings.TrimSpace(sub.ContactPhone),
			DeliveryAddress: strings.TrimSpace(sub.DeliveryAddress),
			RestaurantID:    first.RestaurantID,
			Subtotal:        totals.Subtotal,
			DeliveryFee:     totals.DeliveryFee,
			Total:           totals.Total,
			Status:          string(models.OrderPending),
			Source:          string(source),
		}
		if first.Restaurant != nil {
			header.RestaurantName = first.Restaurant.Name
		}

		if err := s.orderRepo.Create(tx, header); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = header.ID
			if err := s.orderItemRepo.Create(tx, &items[i]); err != nil {
				return err
			}
		}
		header.Items = items
		order = header
		return nil
	})
	if err != nil {
		return nil, apperr.Persistence("place order", err)
	}

	if sub.ClientTotal != nil && !sub.ClientTotal.Equal(order.Total) {
		s.logger.Warn("client total differs from catalog total",
			zap.String("order_number", order.OrderNumber),
			zap.String("client_total", sub.ClientTotal.String()),
			zap.String("total", order.Total.String()))
	}

	restaurant := order.RestaurantName
	if restaurant == "" {
		restaurant = "Donerci"
	}
	actor := order.ContactEmail
	if actor == "" {
		actor = order.CustomerName
	}
	details := fmt.Sprintf("New order #%s placed for %s", order.OrderNumber, restaurant)
	if _, err := s.activities.Record(ctx, models.ActivityOrder, actor, details); err != nil {
		s.logger.Error("order placed but activity not recorded", zap.Uint("order_id", order.ID), zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Total.String()))
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Persistence("get order", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	if status != "" && !models.OrderStatus(status).Valid() {
		return nil, apperr.Validationf("status", "unknown order status %q", status)
	}
	orders, err := s.orderRepo.GetAll(ctx, status)
	if err != nil {
		return nil, apperr.Persistence("list orders", err)
	}
	return orders, nil
}

// UpdateStatus applies a status transition. Orders never return to
// pending; completed and cancelled may be swapped by an operator.
func (s *orderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, actor string) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperr.Validationf("status", "unknown order status %q", status)
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	from := models.OrderStatus(order.Status)
	if from == status {
		return nil, apperr.Validationf("status", "order %d is already %s", id, status)
	}
	if status == models.OrderPending {
		return nil, apperr.Validationf("status", "order %d cannot return to pending", id)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, from, status); err != nil {
		if apperr.IsNotFound(err) || apperr.IsConflict(err) {
			return nil, err
		}
		return nil, apperr.Persistence("update order status", err)
	}

	details := fmt.Sprintf("Updated order #%d status to %s", id, status)
	if _, err := s.activities.Record(ctx, models.ActivityUpdate, actor, details); err != nil {
		s.logger.Error("status updated but activity not recorded", zap.Uint("order_id", id), zap.Error(err))
	}

	updated, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
