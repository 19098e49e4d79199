package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api/responses"
	"github.com/GESTIONMAX/my-vision-connect-sub001/api/validators"
	productsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/products"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/pagination"
)

const maxSearchQueryLen = 120

// ProductList serves the filtered, cursor-paginated catalog.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductBySlug serves a single catalog entry.
func ProductBySlug(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		product, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func parseListInput(r *http.Request) (*productsvc.ListInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	priceMin, err := validators.ParseQueryIntPtr(r, "price_min_cents", 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	priceMax, err := validators.ParseQueryIntPtr(r, "price_max_cents", 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	if priceMin != nil && priceMax != nil && *priceMin > *priceMax {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min_cents exceeds price_max_cents")
	}

	onSale, err := validators.ParseQueryBoolPtr(r, "on_sale")
	if err != nil {
		return nil, err
	}

	filters := productsvc.ListFilters{
		PriceMinCents: priceMin,
		PriceMaxCents: priceMax,
		OnSale:        onSale,
		Query:         validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQueryLen),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
		}
		filters.Category = &category
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("collection")); raw != "" {
		filters.Collection = &raw
	}

	return &productsvc.ListInput{
		Filters: filters,
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		},
	}, nil
}
