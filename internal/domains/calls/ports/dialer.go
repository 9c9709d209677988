package ports

import "context"

// Dialer asks the external voice service to place a call and returns its call sid.
type Dialer interface {
	TriggerCall(ctx context.Context, phone string) (string, error)
}
