package identity

import "context"

// Account is the signed-in user object the external identity provider
// supplies at the boundary.
type Account struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}

// Provider abstracts the identity backend. Exactly one implementation is
// selected at process start (real OAuth or the in-memory stub for offline
// development); call sites never branch on the mode.
type Provider interface {
	// LoginURL returns where the client should be sent to sign in.
	LoginURL(state string) (string, error)

	// Exchange trades an authorization code for the signed-in account.
	Exchange(ctx context.Context, code string) (*Account, error)
}
