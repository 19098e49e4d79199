package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	productsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/products"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
)

type stubProductService struct {
	lastInput productsvc.ListInput
	result    *productsvc.ListResult
	bySlug    map[string]*productsvc.DTO
}

func (s *stubProductService) List(ctx context.Context, input productsvc.ListInput) (*productsvc.ListResult, error) {
	s.lastInput = input
	return s.result, nil
}

func (s *stubProductService) GetBySlug(ctx context.Context, slug string) (*productsvc.DTO, error) {
	dto, ok := s.bySlug[slug]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return dto, nil
}

func TestProductListParsesFilters(t *testing.T) {
	t.Parallel()

	svc := &stubProductService{result: &productsvc.ListResult{Products: []productsvc.DTO{}}}
	handler := ProductList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?category=sport&price_min_cents=5000&price_max_cents=30000&on_sale=true&q=aura&limit=12", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	filters := svc.lastInput.Filters
	if filters.Category == nil || *filters.Category != enums.ProductCategorySport {
		t.Fatalf("unexpected category %+v", filters.Category)
	}
	if filters.PriceMinCents == nil || *filters.PriceMinCents != 5000 {
		t.Fatalf("unexpected price min %+v", filters.PriceMinCents)
	}
	if filters.OnSale == nil || !*filters.OnSale {
		t.Fatal("expected on_sale filter")
	}
	if filters.Query != "aura" {
		t.Fatalf("unexpected query %q", filters.Query)
	}
	if svc.lastInput.Pagination.Limit != 12 {
		t.Fatalf("unexpected limit %d", svc.lastInput.Pagination.Limit)
	}
}

func TestProductListRejectsInvertedPriceRange(t *testing.T) {
	t.Parallel()

	handler := ProductList(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?price_min_cents=30000&price_max_cents=5000", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductListRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	handler := ProductList(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?category=bogus", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductBySlug(t *testing.T) {
	t.Parallel()

	dto := &productsvc.DTO{ID: uuid.New(), Slug: "aura"}
	svc := &stubProductService{bySlug: map[string]*productsvc.DTO{"aura": dto}}

	r := chi.NewRouter()
	r.Get("/products/{slug}", ProductBySlug(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/aura", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
