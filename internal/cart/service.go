package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/pricing"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
)

// Service orchestrates shopper cart mutations and quote assembly.
type Service interface {
	GetCart(ctx context.Context, shopper Shopper) (*View, error)
	AddItem(ctx context.Context, shopper Shopper, input AddItemInput) (*View, error)
	UpdateQuantity(ctx context.Context, shopper Shopper, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, shopper Shopper, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, shopper Shopper) (*View, error)
	AttachUser(ctx context.Context, shopperID string, userID uuid.UUID) error
	Convert(ctx context.Context, shopperID string) error
}

// AddItemInput captures an add-to-cart request.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// View is the read model returned to controllers. Totals are derived via
// the pricing calculator on every call.
type View struct {
	CartID   *uuid.UUID     `json:"cart_id,omitempty"`
	Currency enums.Currency `json:"currency"`
	Items    []ItemView     `json:"items"`
	Quote    pricing.Quote  `json:"quote"`
}

// ItemView is one cart line in the read model.
type ItemView struct {
	ProductID               uuid.UUID             `json:"product_id"`
	Name                    string                `json:"name"`
	Category                enums.ProductCategory `json:"category"`
	UnitPriceCents          int                   `json:"unit_price_cents"`
	CompareAtUnitPriceCents *int                  `json:"compare_at_unit_price_cents,omitempty"`
	Quantity                int                   `json:"quantity"`
	LineTotalCents          int                   `json:"line_total_cents"`
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Repo              CartRepository
	Products          productLoader
	TransactionRunner txRunner
	Logger            *logger.Logger
}

type service struct {
	repo     CartRepository
	products productLoader
	txRunner txRunner
	logg     *logger.Logger
}

// NewService constructs a cart service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repo required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product loader required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}

	return &service{
		repo:     params.Repo,
		products: params.Products,
		txRunner: params.TransactionRunner,
		logg:     params.Logger,
	}, nil
}

// GetCart returns the shopper's active cart, or an empty view when none exists.
func (s *service) GetCart(ctx context.Context, shopper Shopper) (*View, error) {
	if err := requireShopper(shopper); err != nil {
		return nil, err
	}

	record, err := s.repo.FindActiveByShopper(ctx, shopper.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyView(), nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	return s.buildView(record, shopper)
}

// AddItem appends a product line or bumps the existing line quantity.
func (s *service) AddItem(ctx context.Context, shopper Shopper, input AddItemInput) (*View, error) {
	if err := requireShopper(shopper); err != nil {
		return nil, err
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindActiveByID(ctx, input.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	cap := MaxQuantityFor(shopper.EffectiveAccountType())

	record, err := s.findOrCreateActive(ctx, shopper)
	if err != nil {
		return nil, err
	}

	if err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		existing, err := txRepo.FindItem(ctx, record.ID, product.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing != nil {
			next := existing.Quantity + input.Quantity
			if next > cap {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds the limit for this account")
			}
			return txRepo.UpdateItemQuantity(ctx, existing.ID, next)
		}

		if input.Quantity > cap {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds the limit for this account")
		}
		return txRepo.CreateItem(ctx, &models.CartItem{
			CartID:                  record.ID,
			ProductID:               product.ID,
			Name:                    product.Name,
			Category:                product.Category,
			UnitPriceCents:          product.PriceCents,
			CompareAtUnitPriceCents: product.CompareAtPriceCents,
			Quantity:                input.Quantity,
		})
	}); err != nil {
		var coded *pkgerrors.Error
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart item")
	}

	return s.reload(ctx, shopper)
}

// UpdateQuantity sets a line's quantity to an absolute value. Repeating the
// same value is a no-op, not an error.
func (s *service) UpdateQuantity(ctx context.Context, shopper Shopper, productID uuid.UUID, quantity int) (*View, error) {
	if err := requireShopper(shopper); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if quantity > MaxQuantityFor(shopper.EffectiveAccountType()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds the limit for this account")
	}

	record, err := s.requireActive(ctx, shopper)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItem(ctx, record.ID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	if item.Quantity != quantity {
		if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
		}
	}

	return s.reload(ctx, shopper)
}

// RemoveItem deletes a product line from the cart.
func (s *service) RemoveItem(ctx context.Context, shopper Shopper, productID uuid.UUID) (*View, error) {
	if err := requireShopper(shopper); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	record, err := s.requireActive(ctx, shopper)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItem(ctx, record.ID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}

	return s.reload(ctx, shopper)
}

// Clear removes every line from the shopper's active cart.
func (s *service) Clear(ctx context.Context, shopper Shopper) (*View, error) {
	if err := requireShopper(shopper); err != nil {
		return nil, err
	}

	record, err := s.repo.FindActiveByShopper(ctx, shopper.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyView(), nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if err := s.repo.DeleteItems(ctx, record.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}

	return s.reload(ctx, shopper)
}

// AttachUser links the shopper's active cart to the authenticated user so the
// cart survives the login handoff.
func (s *service) AttachUser(ctx context.Context, shopperID string, userID uuid.UUID) error {
	if strings.TrimSpace(shopperID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.LinkUser(ctx, shopperID, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link cart to user")
	}
	return nil
}

// Convert marks the shopper's active cart as converted after a completed
// checkout. A fresh cart is created lazily on the next add.
func (s *service) Convert(ctx context.Context, shopperID string) error {
	if strings.TrimSpace(shopperID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}

	record, err := s.repo.FindActiveByShopper(ctx, shopperID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if err := s.repo.UpdateStatus(ctx, record.ID, enums.CartStatusConverted); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "convert cart")
	}
	return nil
}

func (s *service) findOrCreateActive(ctx context.Context, shopper Shopper) (*models.CartRecord, error) {
	record, err := s.repo.FindActiveByShopper(ctx, shopper.ID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	fresh := &models.CartRecord{
		ShopperID: shopper.ID,
		UserID:    shopper.UserID,
		Status:    enums.CartStatusActive,
		Currency:  enums.CurrencyEUR,
	}
	created, err := s.repo.Create(ctx, fresh)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return created, nil
}

func (s *service) requireActive(ctx context.Context, shopper Shopper) (*models.CartRecord, error) {
	record, err := s.repo.FindActiveByShopper(ctx, shopper.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}

func (s *service) reload(ctx context.Context, shopper Shopper) (*View, error) {
	record, err := s.repo.FindActiveByShopper(ctx, shopper.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyView(), nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return s.buildView(record, shopper)
}

func (s *service) buildView(record *models.CartRecord, shopper Shopper) (*View, error) {
	rate := 0
	if shopper.EffectiveAccountType() == enums.AccountTypeBusiness {
		rate = shopper.DiscountRateBps
	}

	quote, err := pricing.ComputeForItems(record.Items, rate)
	if err != nil {
		return nil, err
	}

	items := make([]ItemView, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, ItemView{
			ProductID:               item.ProductID,
			Name:                    item.Name,
			Category:                item.Category,
			UnitPriceCents:          item.UnitPriceCents,
			CompareAtUnitPriceCents: item.CompareAtUnitPriceCents,
			Quantity:                item.Quantity,
			LineTotalCents:          item.UnitPriceCents * item.Quantity,
		})
	}

	cartID := record.ID
	return &View{
		CartID:   &cartID,
		Currency: record.Currency,
		Items:    items,
		Quote:    quote,
	}, nil
}

func emptyView() *View {
	return &View{
		Currency: enums.CurrencyEUR,
		Items:    []ItemView{},
	}
}

func requireShopper(shopper Shopper) error {
	if strings.TrimSpace(shopper.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}
	return nil
}
