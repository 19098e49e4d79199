package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
)

type stubRepo struct {
	record      *models.CartRecord
	items       []models.CartItem
	updateCalls int
}

func (r *stubRepo) WithTx(tx *gorm.DB) CartRepository { return r }

func (r *stubRepo) FindActiveByShopper(ctx context.Context, shopperID string) (*models.CartRecord, error) {
	if r.record == nil || r.record.ShopperID != shopperID || r.record.Status != enums.CartStatusActive {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.record
	copied.Items = append([]models.CartItem(nil), r.items...)
	return &copied, nil
}

func (r *stubRepo) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	record.ID = uuid.New()
	r.record = record
	return record, nil
}

func (r *stubRepo) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	for i := range r.items {
		if r.items[i].CartID == cartID && r.items[i].ProductID == productID {
			copied := r.items[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) CreateItem(ctx context.Context, item *models.CartItem) error {
	item.ID = uuid.New()
	r.items = append(r.items, *item)
	return nil
}

func (r *stubRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	r.updateCalls++
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.items[i].Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRepo) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return nil
}

func (r *stubRepo) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	r.items = nil
	return nil
}

func (r *stubRepo) LinkUser(ctx context.Context, shopperID string, userID uuid.UUID) error {
	if r.record != nil && r.record.ShopperID == shopperID {
		r.record.UserID = &userID
	}
	return nil
}

func (r *stubRepo) UpdateStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error {
	if r.record != nil && r.record.ID == cartID {
		r.record.Status = status
	}
	return nil
}

type stubProducts struct {
	products map[uuid.UUID]*models.Product
}

func (p *stubProducts) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := p.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubRepo, products *stubProducts) Service {
	t.Helper()
	logg := logger.New(logger.Options{Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Repo:              repo,
		Products:          products,
		TransactionRunner: stubTxRunner{},
		Logger:            logg,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func fixtureProduct(priceCents int) *models.Product {
	return &models.Product{
		ID:         uuid.New(),
		Slug:       "aura",
		Name:       "Aura",
		Category:   enums.ProductCategoryLifestyle,
		PriceCents: priceCents,
		Currency:   enums.CurrencyEUR,
		IsActive:   true,
	}
}

func guest() Shopper {
	return Shopper{ID: "shopper-1"}
}

func businessShopper(rateBps int) Shopper {
	userID := uuid.New()
	return Shopper{
		ID:              "shopper-b2b",
		AccountType:     enums.AccountTypeBusiness,
		DiscountRateBps: rateBps,
		UserID:          &userID,
	}
}

func TestGetCartEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubProducts{})
	view, err := svc.GetCart(context.Background(), guest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CartID != nil {
		t.Fatalf("expected no cart id for empty view")
	}
	if len(view.Items) != 0 || view.Quote.TotalCents != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestAddItemCreatesCartAndLine(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	view, err := svc.AddItem(context.Background(), guest(), AddItemInput{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.CartID == nil {
		t.Fatal("expected cart id after add")
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Items[0].Quantity)
	}
	if view.Quote.SubtotalCents != 20000 || view.Quote.TotalCents != 20000 {
		t.Fatalf("unexpected quote %+v", view.Quote)
	}
}

func TestAddItemRecordsFreeFormShopperID(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	shopper := Shopper{ID: "device-9f2c-session-41"}
	if _, err := svc.AddItem(context.Background(), shopper, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if repo.record.ShopperID != shopper.ID {
		t.Fatalf("expected cart keyed by shopper id %q, got %q", shopper.ID, repo.record.ShopperID)
	}
}

func TestAddItemBumpsExistingLine(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	view, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(view.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", view.Items[0].Quantity)
	}
}

func TestAddItemEnforcesIndividualCap(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: product.ID, Quantity: 8}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: product.ID, Quantity: 3})
	if err == nil {
		t.Fatal("expected cap violation")
	}
	var coded *pkgerrors.Error
	if !errors.As(err, &coded) || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddItemBusinessCapAllowsBulk(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	view, err := svc.AddItem(context.Background(), businessShopper(0), AddItemInput{ProductID: product.ID, Quantity: 250})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Items[0].Quantity != 250 {
		t.Fatalf("expected bulk quantity, got %d", view.Items[0].Quantity)
	}
}

func TestUpdateQuantityIsIdempotent(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.UpdateQuantity(ctx, guest(), product.ID, 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	calls := repo.updateCalls

	view, err := svc.UpdateQuantity(ctx, guest(), product.ID, 4)
	if err != nil {
		t.Fatalf("repeat update: %v", err)
	}
	if repo.updateCalls != calls {
		t.Fatalf("expected no extra write for identical quantity")
	}
	if view.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", view.Items[0].Quantity)
	}
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubProducts{})
	if _, err := svc.UpdateQuantity(context.Background(), guest(), uuid.New(), 0); err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	other := fixtureProduct(5000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{
		product.ID: product,
		other.ID:   other,
	}})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: other.ID, Quantity: 1}); err != nil {
		t.Fatalf("add other: %v", err)
	}

	view, err := svc.RemoveItem(ctx, guest(), product.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != other.ID {
		t.Fatalf("expected only the other line to remain, got %+v", view.Items)
	}

	view, err = svc.Clear(ctx, guest())
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(view.Items) != 0 || view.Quote.TotalCents != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", view)
	}
}

func TestBusinessDiscountAppliedToView(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	view, err := svc.AddItem(context.Background(), businessShopper(1500), AddItemInput{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Quote.SubtotalCents != 20000 {
		t.Fatalf("expected subtotal 20000, got %d", view.Quote.SubtotalCents)
	}
	if view.Quote.DiscountCents != 3000 {
		t.Fatalf("expected discount 3000, got %d", view.Quote.DiscountCents)
	}
	if view.Quote.TotalCents != 17000 {
		t.Fatalf("expected total 17000, got %d", view.Quote.TotalCents)
	}
}

func TestConvertMarksCart(t *testing.T) {
	t.Parallel()

	product := fixtureProduct(10000)
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, guest(), AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Convert(ctx, guest().ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if repo.record.Status != enums.CartStatusConverted {
		t.Fatalf("expected converted status, got %s", repo.record.Status)
	}

	view, err := svc.GetCart(ctx, guest())
	if err != nil {
		t.Fatalf("get after convert: %v", err)
	}
	if view.CartID != nil {
		t.Fatalf("expected empty view after conversion")
	}
}

func TestConvertWithoutCartIsNoop(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubProducts{})
	if err := svc.Convert(context.Background(), "shopper-x"); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
}
