package valueobject

import "github.com/shopspring/decimal"

// PayStatus classifies how much of a target cost has been covered by payments
type PayStatus string

const (
	PayStatusUnpaid  PayStatus = "UNPAID"
	PayStatusPartial PayStatus = "PARTIAL"
	PayStatusPaid    PayStatus = "PAID"
)

// IsValid checks if the status is a valid PayStatus
func (s PayStatus) IsValid() bool {
	switch s {
	case PayStatusUnpaid, PayStatusPartial, PayStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PayStatus
func (s PayStatus) String() string {
	return string(s)
}

// ClassifyPayment classifies an accumulated payment against a target cost.
//
// Both operands are rounded to 2 decimal places before comparison so that
// float-derived noise (49.990000000002 vs 49.99) cannot demote a fully paid
// entity to PARTIAL. A target of zero or less can never be PAID: a zero-cost
// entity must not spuriously report itself as settled, although accumulated
// payments still distinguish UNPAID from PARTIAL.
func ClassifyPayment(accumulated, target decimal.Decimal) PayStatus {
	acc := accumulated.Round(2)
	tgt := target.Round(2)

	if tgt.IsPositive() && acc.GreaterThanOrEqual(tgt) {
		return PayStatusPaid
	}
	if acc.IsPositive() {
		return PayStatusPartial
	}
	return PayStatusUnpaid
}
