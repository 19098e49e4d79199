package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
)

const bpsDenominator = 10000

// LineInput is one cart line fed into the calculator.
type LineInput struct {
	UnitPriceCents int
	Quantity       int
}

// Quote holds the derived totals for a cart. Totals are never persisted;
// they are recomputed from the lines on every read.
type Quote struct {
	SubtotalCents int `json:"subtotal_cents"`
	DiscountCents int `json:"discount_cents"`
	TotalCents    int `json:"total_cents"`
	ItemCount     int `json:"item_count"`
}

// Compute derives the quote for the provided lines. The discount rate is
// expressed in basis points and applied to the subtotal as a whole, rounded
// to the nearest cent exactly once.
func Compute(lines []LineInput, discountRateBps int) (Quote, error) {
	if discountRateBps < 0 || discountRateBps > bpsDenominator {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "discount rate out of range")
	}

	var quote Quote
	for _, line := range lines {
		if line.Quantity < 1 {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be at least 1")
		}
		if line.UnitPriceCents < 0 {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "line unit price cannot be negative")
		}
		quote.SubtotalCents += line.UnitPriceCents * line.Quantity
		quote.ItemCount += line.Quantity
	}

	if discountRateBps > 0 && quote.SubtotalCents > 0 {
		discount := decimal.NewFromInt(int64(quote.SubtotalCents)).
			Mul(decimal.NewFromInt(int64(discountRateBps))).
			Div(decimal.NewFromInt(bpsDenominator)).
			Round(0)
		quote.DiscountCents = int(discount.IntPart())
	}

	quote.TotalCents = quote.SubtotalCents - quote.DiscountCents
	return quote, nil
}

// ComputeForItems adapts stored cart items into calculator lines.
func ComputeForItems(items []models.CartItem, discountRateBps int) (Quote, error) {
	lines := make([]LineInput, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineInput{
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	return Compute(lines, discountRateBps)
}
