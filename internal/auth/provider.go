package auth

import "context"

// Provider authenticates the chat transport delivering events. Users are
// identified by the event payload itself; what needs verifying is that the
// caller is our transport and not an arbitrary client.
type Provider interface {
	ValidateSecretLocal(secret string) error
	ValidateSecretRemote(ctx context.Context, secret string) error
}
