package identity

import "context"

// StubProvider serves offline development: any code exchanges into the
// same demo account, no network involved.
type StubProvider struct {
	account Account
}

func NewStubProvider() *StubProvider {
	return &StubProvider{
		account: Account{
			UID:         "demo-user",
			DisplayName: "Demo User",
			Email:       "demo@example.com",
			PhotoURL:    "",
		},
	}
}

func (p *StubProvider) LoginURL(state string) (string, error) {
	return "/api/auth/stub/callback?code=demo&state=" + state, nil
}

func (p *StubProvider) Exchange(ctx context.Context, code string) (*Account, error) {
	account := p.account
	return &account, nil
}
