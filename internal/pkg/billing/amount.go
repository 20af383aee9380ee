package billing

import "github.com/shopspring/decimal"

// PriceAmount converts an amount in minor currency units to major units with
// two decimals, e.g. 10000 -> 100.00.
func PriceAmount(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
