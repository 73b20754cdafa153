package client

import (
	"context"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

const loginDocument = `
mutation LoginAccount($input: LoginAccount!) {
	LoginAccount(account: $input) {
		id
		fullName
		email
		phone
		token
	}
}`

type loginResult struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Token    string `json:"token"`
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	FullName string `json:"fullName"        validate:"required"`
	Email    string `json:"email"           validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"        validate:"required,min=8"`
}

// Login exchanges credentials for a session. Credentials are validated
// before the request leaves the process. The token and profile snapshot are
// persisted before the session flips to logged in; a persistence failure
// fails the whole login.
func (g *Gateway) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	if err := checkInput(loginCredentials{Email: email, Password: password}); err != nil {
		return nil, err
	}

	var result loginResult
	err := g.query(ctx, "LoginAccount", loginDocument, map[string]any{
		"input": map[string]any{
			"email":    email,
			"password": password,
		},
	}, &result)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:       result.ID,
		FullName: result.FullName,
		Email:    result.Email,
		Phone:    result.Phone,
	}
	if err := g.session.SetSession(result.Token, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Logout invalidates the session: local state first, unconditionally, then
// a best-effort notification so the backend can revoke the token. A failed
// notification never reverses the local logout.
func (g *Gateway) Logout(ctx context.Context) {
	token := g.session.Token()
	g.session.Clear()
	if token == "" {
		return
	}

	if err := g.notifyLogout(ctx, token); err != nil {
		g.log.Warn().Err(err).Msg("logout notification failed")
	}
}

// notifyLogout posts the revocation with an explicit header: the session is
// already cleared, so the usual token attachment would send nothing.
func (g *Gateway) notifyLogout(ctx context.Context, token string) error {
	req, err := g.newAuthorizedRequest(ctx, "POST", "/auth/logout", token)
	if err != nil {
		return err
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Register creates a new account. It does not log in; callers follow up
// with Login.
func (g *Gateway) Register(ctx context.Context, input RegisterInput) error {
	if err := checkInput(input); err != nil {
		return err
	}
	return g.rest(ctx, "POST", "/auth/register", input, nil)
}

// Profile fetches the authenticated account and refreshes the cached snapshot.
func (g *Gateway) Profile(ctx context.Context) (*domain.Account, error) {
	var account domain.Account
	if err := g.rest(ctx, "GET", "/user/profile", nil, &account); err != nil {
		return nil, err
	}
	g.session.UpdateUser(&account)
	return &account, nil
}

// UpdateProfile edits the profile; empty fields are left unchanged.
func (g *Gateway) UpdateProfile(ctx context.Context, fullName, phone string) (*domain.Account, error) {
	body := map[string]string{
		"fullName": fullName,
		"phone":    phone,
	}
	var account domain.Account
	if err := g.rest(ctx, "PUT", "/user/profile", body, &account); err != nil {
		return nil, err
	}
	g.session.UpdateUser(&account)
	return &account, nil
}

// ChangePassword rotates the password after verifying the current one.
func (g *Gateway) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if err := checkInput(passwordChange{CurrentPassword: currentPassword, NewPassword: newPassword}); err != nil {
		return err
	}
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return g.rest(ctx, "POST", "/user/change-password", body, nil)
}

// DeleteAccount removes the account server-side and drops the local session.
func (g *Gateway) DeleteAccount(ctx context.Context) error {
	if err := g.rest(ctx, "DELETE", "/user/delete", nil, nil); err != nil {
		return err
	}
	g.session.Clear()
	return nil
}
