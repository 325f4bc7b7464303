package webhook

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("webhook subscription not found")
	ErrUnknownEvent         = errors.New("unknown event type")
	ErrInvalidEndpoint      = errors.New("invalid endpoint url")
)
