package validation

import (
	"fmt"
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// New returns a validator with the storefront's custom tags and struct rules.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterStructValidation(orderSnapshotStructValidation, OrderSnapshot{})
	mustRegister(v, "card_number", func(fl validatorv10.FieldLevel) bool {
		return len(CardDigits(fl.Field().String())) == 16
	})
	mustRegister(v, "expiry", func(fl validatorv10.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "digits", func(fl validatorv10.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "not_blank", func(fl validatorv10.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

func mustRegister(v *validatorv10.Validate, tag string, fn validatorv10.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// orderSnapshotStructValidation checks that Amount equals the line total in cents.
func orderSnapshotStructValidation(sl validatorv10.StructLevel) {
	snap := sl.Current().Interface().(OrderSnapshot)

	sum := decimal.Zero
	for _, l := range snap.Lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	if !sum.Round(2).Equal(decimal.NewFromFloat(snap.Amount).Round(2)) {
		sl.ReportError(snap.Amount, "amount", "Amount", "amount_match_lines",
			fmt.Sprintf("lines sum %s != amount %.2f", sum.StringFixed(2), snap.Amount))
	}
}
