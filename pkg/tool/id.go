package tool

import "github.com/google/uuid"

// GenerateUUIDV7 returns a time-ordered UUID. Payments, refunds, webhook
// events and trace IDs all use v7, so sorting by id matches creation order.
func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}
