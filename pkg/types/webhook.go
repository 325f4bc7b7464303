package types

type EventType string

const (
	EventPaymentCreated   EventType = "payment.created"
	EventPaymentSucceeded EventType = "payment.succeeded"
	EventPaymentConfirmed EventType = "payment.confirmed"
	EventPaymentFailed    EventType = "payment.failed"
	EventPaymentRefunded  EventType = "payment.refunded"
)

// legacyAliases lists additional wire types emitted alongside an event for
// subscribers still consuming the old names. payment.confirmed predates
// payment.succeeded and carries the same payload.
var legacyAliases = map[EventType][]EventType{
	EventPaymentSucceeded: {EventPaymentConfirmed},
}

// Emitted returns every wire event type produced for e, e itself first.
func (e EventType) Emitted() []EventType {
	return append([]EventType{e}, legacyAliases[e]...)
}

// KnownEvents lists every event type the gateway produces.
var KnownEvents = []EventType{
	EventPaymentCreated,
	EventPaymentSucceeded,
	EventPaymentConfirmed,
	EventPaymentFailed,
	EventPaymentRefunded,
}

func KnownEvent(s string) bool {
	for _, e := range KnownEvents {
		if string(e) == s {
			return true
		}
	}
	return false
}

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)
