package products

import (
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the catalog endpoint.
type ListFilters struct {
	Category      *enums.ProductCategory `json:"category,omitempty"`
	Collection    *string                `json:"collection,omitempty"`
	PriceMinCents *int                   `json:"price_min_cents,omitempty"`
	PriceMaxCents *int                   `json:"price_max_cents,omitempty"`
	OnSale        *bool                  `json:"on_sale,omitempty"`
	Query         string                 `json:"q,omitempty"`
}

// ListInput captures the inputs needed to paginate and filter the catalog.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}
