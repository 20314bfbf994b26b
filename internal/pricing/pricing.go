package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/pkg/config"
)

// Line is the minimal shape Quote needs: a unit price and a quantity.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals is the price breakdown derived from a cart. Values keep full
// precision; call Round before rendering.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Rules holds the pricing constants. The zero value is unusable; build one
// with DefaultRules or FromConfig.
type Rules struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	PromoCode             string
	PromoRate             decimal.Decimal
	PromoCap              decimal.Decimal
	MaxLineQuantity       int
}

// DefaultRules returns the storefront's published pricing behavior: 10% tax,
// free shipping at 100.00, 7.00 flat fee below it, and the SAVE10 promo
// worth 10% capped at 50.00.
func DefaultRules() Rules {
	return Rules{
		TaxRate:               decimal.RequireFromString("0.10"),
		FreeShippingThreshold: decimal.RequireFromString("100.00"),
		FlatShippingFee:       decimal.RequireFromString("7.00"),
		PromoCode:             "SAVE10",
		PromoRate:             decimal.RequireFromString("0.10"),
		PromoCap:              decimal.RequireFromString("50.00"),
		MaxLineQuantity:       99,
	}
}

// FromConfig maps the environment-provided pricing configuration onto Rules.
func FromConfig(cfg config.PricingConfig) Rules {
	rules := Rules{
		TaxRate:               cfg.TaxRate,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
		PromoCode:             strings.ToUpper(strings.TrimSpace(cfg.PromoCode)),
		PromoRate:             cfg.PromoRate,
		PromoCap:              cfg.PromoCap,
		MaxLineQuantity:       cfg.MaxLineQuantity,
	}
	if rules.MaxLineQuantity <= 0 {
		rules.MaxLineQuantity = DefaultRules().MaxLineQuantity
	}
	return rules
}

// Quote derives the price breakdown for the given lines and optional promo
// code. It is a pure function: no I/O, no mutation, deterministic for equal
// inputs. An empty cart yields all-zero totals with no shipping fee.
func (r Rules) Quote(lines []Line, promoCode string) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := subtotal.Mul(r.TaxRate)

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThan(r.FreeShippingThreshold) {
		shipping = r.FlatShippingFee
	}

	discount := decimal.Zero
	if r.promoMatches(promoCode) && subtotal.IsPositive() {
		discount = decimal.Min(subtotal.Mul(r.PromoRate), r.PromoCap)
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}
}

func (r Rules) promoMatches(code string) bool {
	if r.PromoCode == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(code), r.PromoCode)
}

// Round returns a copy with every field rounded to two decimal places for
// display. Internal computation stays unrounded so repeated re-quotes do not
// compound rounding error.
func (t Totals) Round() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Tax:      t.Tax.Round(2),
		Shipping: t.Shipping.Round(2),
		Discount: t.Discount.Round(2),
		Total:    t.Total.Round(2),
	}
}
