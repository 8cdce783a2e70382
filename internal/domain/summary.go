package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AssetSummary overview line of one owned asset.
type AssetSummary struct {
	Symbol          string
	TotalInvested   decimal.Decimal
	Amount          decimal.Decimal
	AverageBuyPrice decimal.Decimal
	CurrentPrice    decimal.Decimal
	CurrentValue    decimal.Decimal
	YieldAbsolute   decimal.Decimal
	YieldPercent    decimal.Decimal
}

// FormatPercent renders a percentage with two decimals and a trailing percent sign.
func FormatPercent(p decimal.Decimal) string {
	return fmt.Sprintf("%s%%", p.StringFixed(2))
}
