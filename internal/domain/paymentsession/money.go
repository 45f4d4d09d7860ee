package paymentsession

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units (paise for INR).
type Money struct {
	amountMinor int64
	currency    string
}

func NewMoney(amountMinor int64, currency string) Money {
	return Money{
		amountMinor: amountMinor,
		currency:    currency,
	}
}

func (m Money) AmountMinor() int64 {
	return m.amountMinor
}

func (m Money) Currency() string {
	return m.currency
}

// Amount returns the value in major units without rounding.
func (m Money) Amount() decimal.Decimal {
	return decimal.New(m.amountMinor, -2)
}

// Decimal renders the amount with two fractional digits, e.g. "99.00".
func (m Money) Decimal() string {
	return m.Amount().StringFixed(2)
}

func (m Money) Equals(other Money) bool {
	return m.amountMinor == other.amountMinor && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amountMinor > 0
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal()), nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal(), m.currency)
}
