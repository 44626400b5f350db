package service

import (
	"greengrocer/internal/model"

	"github.com/shopspring/decimal"
)

// fitsColumn rejects a value its numeric column would round or refuse, so
// the figure stored is the figure that was checked against stock.
func fitsColumn(field string, v decimal.Decimal, col model.Numeric) error {
	if !v.Equal(v.Truncate(col.Scale)) {
		return invalidf("%s must have at most %d decimal places", field, col.Scale)
	}
	limit := decimal.New(1, col.Precision-col.Scale)
	if v.Abs().GreaterThanOrEqual(limit) {
		return invalidf("%s must be less than %s", field, limit.String())
	}
	return nil
}
