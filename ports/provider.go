package ports

import "context"

// ResponseProvider is the external capability that turns a prompt into a
// response. Synchronous call/response is the only assumed protocol; calls
// may fail and callers bound them with a context timeout.
type ResponseProvider interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc adapts a plain function to the ResponseProvider interface
type ProviderFunc func(ctx context.Context, prompt string) (string, error)

// Respond implements ResponseProvider
func (f ProviderFunc) Respond(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
