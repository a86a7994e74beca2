package backend

import "github.com/shopspring/decimal"

func decimalParse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
