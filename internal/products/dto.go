package products

import (
	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// DTO is the catalog representation returned to clients.
type DTO struct {
	ID                  uuid.UUID             `json:"id"`
	Slug                string                `json:"slug"`
	Name                string                `json:"name"`
	Description         *string               `json:"description,omitempty"`
	Category            enums.ProductCategory `json:"category"`
	CollectionHandle    *string               `json:"collection_handle,omitempty"`
	PriceCents          int                   `json:"price_cents"`
	CompareAtPriceCents *int                  `json:"compare_at_price_cents,omitempty"`
	Currency            enums.Currency        `json:"currency"`
	Features            []string              `json:"features"`
	InStock             bool                  `json:"in_stock"`
}

// FromModel maps a stored product onto the public DTO.
func FromModel(product *models.Product) DTO {
	if product == nil {
		return DTO{}
	}
	return DTO{
		ID:                  product.ID,
		Slug:                product.Slug,
		Name:                product.Name,
		Description:         product.Description,
		Category:            product.Category,
		CollectionHandle:    product.CollectionHandle,
		PriceCents:          product.PriceCents,
		CompareAtPriceCents: product.CompareAtPriceCents,
		Currency:            product.Currency,
		Features:            append([]string(nil), product.Features...),
		InStock:             product.StockQty > 0,
	}
}
