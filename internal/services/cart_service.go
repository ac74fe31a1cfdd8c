package services

import (
	"context"
	"strconv"

	"donerci/internal/apperr"
	"donerci/internal/cart"
	"donerci/internal/models"
	"donerci/internal/pricing"
	"donerci/internal/repository"

	"go.uber.org/zap"
)

// CartView is the rendered state of a session cart.
type CartView struct {
	SessionID string         `json:"session_id"`
	Items     []cart.Item    `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    pricing.Totals `json:"totals"`
}

// CheckoutDetails are the contact fields collected at checkout.
type CheckoutDetails struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type CartService interface {
	View(ctx context.Context, sessionID string) (*CartView, error)
	// AddItem adds one unit of a catalog item. Name, price and image are
	// read from the catalog, never from the caller.
	AddItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error)
	SetQuantity(ctx context.Context, sessionID string, menuItemID uint, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error)
	Clear(ctx context.Context, sessionID string) error
	// Checkout places an order for the cart's contents and empties the
	// cart. On failure the cart is left as it was.
	Checkout(ctx context.Context, sessionID string, details CheckoutDetails) (*models.Order, error)
}

type cartService struct {
	store    cart.SnapshotStore
	menuRepo repository.MenuRepository
	orders   OrderService
	calc     pricing.Calculator
	logger   *zap.Logger
}

func NewCartService(store cart.SnapshotStore, menuRepo repository.MenuRepository, orders OrderService, calc pricing.Calculator, logger *zap.Logger) CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cartService{store: store, menuRepo: menuRepo, orders: orders, calc: calc, logger: logger}
}

func (s *cartService) open(ctx context.Context, sessionID string) (*cart.Session, error) {
	if sessionID == "" {
		return nil, apperr.Validation("session_id")
	}
	return cart.Open(ctx, s.store, sessionID, s.logger)
}

func (s *cartService) view(session *cart.Session) *CartView {
	c := session.Cart()
	return &CartView{
		SessionID: session.ID(),
		Items:     c.Items(),
		ItemCount: c.TotalItemCount(),
		Totals:    c.Totals(s.calc),
	}
}

func (s *cartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	session, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error) {
	if menuItemID == 0 {
		return nil, apperr.Validation("menu_item_id")
	}
	menuItem, err := s.menuRepo.GetByID(ctx, menuItemID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Persistence("get menu item", err)
	}

	session, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item := cart.Item{
		ID:        cartItemID(menuItem.ID),
		Name:      menuItem.Name,
		UnitPrice: menuItem.Price,
		ImageRef:  menuItem.ImageURL,
	}
	if menuItem.RestaurantID != nil {
		item.RestaurantID = cartItemID(*menuItem.RestaurantID)
	}
	if menuItem.Restaurant != nil {
		item.RestaurantName = menuItem.Restaurant.Name
	}
	if err := session.Add(ctx, item); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *cartService) SetQuantity(ctx context.Context, sessionID string, menuItemID uint, quantity int) (*CartView, error) {
	session, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := session.Cart().Get(cartItemID(menuItemID)); !ok {
		return nil, apperr.ErrNotFound
	}
	// Quantities below one leave the cart as it is.
	if quantity < 1 {
		return s.view(session), nil
	}
	if err := session.SetQuantity(ctx, cartItemID(menuItemID), quantity); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error) {
	session, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Remove(ctx, cartItemID(menuItemID)); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	session, err := s.open(ctx, sessionID)
	if err != nil {
		return err
	}
	return session.Clear(ctx)
}

func (s *cartService) Checkout(ctx context.Context, sessionID string, details CheckoutDetails) (*models.Order, error) {
	session, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c := session.Cart()

	sub := &Submission{
		Source:          models.SourceCheckout,
		CustomerName:    details.CustomerName,
		ContactEmail:    details.Email,
		ContactPhone:    details.Phone,
		DeliveryAddress: details.Address,
	}
	for _, it := range c.Items() {
		id, err := strconv.ParseUint(it.ID, 10, 64)
		if err != nil {
			return nil, apperr.Validationf("items", "cart item %q is not a catalog item", it.ID)
		}
		sub.Items = append(sub.Items, OrderLine{MenuItemID: uint(id), Quantity: it.Quantity})
	}
	displayed := c.Totals(s.calc).Total
	sub.ClientTotal = &displayed

	order, err := s.orders.Submit(ctx, sub)
	if err != nil {
		return nil, err
	}

	if err := session.Clear(ctx); err != nil {
		s.logger.Error("order placed but cart not cleared",
			zap.String("session_id", sessionID), zap.Uint("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

func cartItemID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
