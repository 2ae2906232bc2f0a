// Package mail defines the outbound email contract and its HTTP-API
// implementation.
package mail

import "context"

// Mailer sends plain-text email. Implementations must return an error on
// any delivery failure so callers can run compensating cleanup.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
