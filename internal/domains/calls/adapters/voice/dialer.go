package voice

import (
	"context"

	voiceclient "github.com/Apurer/go-gin-storefront/internal/clients/http/voice"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/ports"
)

var _ ports.Dialer = (*Dialer)(nil)

// Dialer adapts the voice HTTP client to the calls dialer port.
type Dialer struct {
	client *voiceclient.Client
}

// NewDialer builds a dialer for the voice service at baseURL.
func NewDialer(baseURL string) (*Dialer, error) {
	client, err := voiceclient.NewClient(baseURL, nil)
	if err != nil {
		return nil, err
	}
	return &Dialer{client: client}, nil
}

func (d *Dialer) TriggerCall(ctx context.Context, phone string) (string, error) {
	return d.client.TriggerCall(ctx, phone)
}
