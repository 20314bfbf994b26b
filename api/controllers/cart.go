package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/api/validators"
	"github.com/novamart/storefront-backend/internal/cart"
	"github.com/novamart/storefront-backend/internal/pricing"
	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
)

// QuoteRequest carries cart lines and an optional promo code for pricing.
type QuoteRequest struct {
	Items     []QuoteItem `json:"items" validate:"dive"`
	PromoCode string      `json:"promo_code" validate:"omitempty,max=40"`
}

// QuoteItem is one line to price. The price is the client's display price;
// quoting is advisory and the commit path re-prices from the catalog.
type QuoteItem struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
}

// QuoteResponse echoes the normalized cart (duplicates merged, quantities
// clamped) alongside the rounded price breakdown.
type QuoteResponse struct {
	Items    []QuoteItem     `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// CartController prices carts without touching inventory.
type CartController struct {
	rules pricing.Rules
	logg  *logger.Logger
}

func NewCartController(rules pricing.Rules, logg *logger.Logger) *CartController {
	return &CartController{rules: rules, logg: logg}
}

// Quote handles POST /api/cart/quote.
func (c *CartController) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.logg, err)
		return
	}

	lines := make([]cart.Line, 0, len(req.Items))
	for _, item := range req.Items {
		// a negative unit price would drag the whole breakdown negative
		if item.Price.IsNegative() {
			responses.WriteError(w, r, c.logg,
				errors.New(errors.CodeValidation, "item prices must be non-negative"))
			return
		}
		lines = append(lines, cart.Line{
			ProductID: item.ProductID,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}

	normalized := cart.FromLines(lines, c.rules.MaxLineQuantity)
	totals := c.rules.Quote(normalized.PricingLines(), req.PromoCode).Round()

	echo := make([]QuoteItem, 0, len(normalized.Lines()))
	for _, line := range normalized.Lines() {
		echo = append(echo, QuoteItem{
			ProductID: line.ProductID,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	responses.WriteSuccess(w, QuoteResponse{
		Items:    echo,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Shipping: totals.Shipping,
		Discount: totals.Discount,
		Total:    totals.Total,
	})
}
