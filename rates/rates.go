// Package rates polls spot prices for the configured currency symbols and
// keeps the latest quote per symbol available in memory and in the datastore.
package rates

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Rate is a spot price quote for a single symbol in the configured fiat
// currency.
type Rate struct {
	gorm.Model
	Symbol string          `json:"symbol" gorm:"uniqueIndex"`
	Price  decimal.Decimal `json:"price" gorm:"type:string"`
}

func (Rate) TableName() string {
	return "rates"
}
