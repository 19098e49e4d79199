package products

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/pagination"
)

// Service exposes catalog reads to the API layer.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	GetBySlug(ctx context.Context, slug string) (*DTO, error)
}

// ListResult is one catalog page plus the cursor to the next one.
type ListResult struct {
	Products   []DTO   `json:"products"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

type catalogRepository interface {
	List(ctx context.Context, input ListInput) ([]models.Product, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo catalogRepository
}

type service struct {
	repo catalogRepository
}

// NewService constructs the catalog service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repo required")
	}
	return &service{repo: params.Repo}, nil
}

// List returns one catalog page. A full page carries the cursor pointing at
// the next one.
func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)

	var nextCursor *string
	if len(rows) > limit {
		last := rows[limit-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		nextCursor = &encoded
		rows = rows[:limit]
	}

	dtos := make([]DTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}

	return &ListResult{
		Products:   dtos,
		NextCursor: nextCursor,
	}, nil
}

// GetBySlug returns one product by its URL slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*DTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	product, err := s.repo.FindActiveBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	dto := FromModel(product)
	return &dto, nil
}
