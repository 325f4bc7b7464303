package types

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Terminal reports whether no further transition can leave s. Refunds are
// the one exception: a confirmed payment is settled but may still move to
// refunded.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusConfirmed, PaymentStatusFailed, PaymentStatusExpired, PaymentStatusRefunded:
		return true
	}
	return false
}

// Open reports whether the payment still accepts a transaction submission.
func (s PaymentStatus) Open() bool {
	return s == PaymentStatusCreated || s == PaymentStatusPending
}
