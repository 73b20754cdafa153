package ports

import (
	"context"
	"time"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// UpdateProfileInput carries partial profile updates. Empty fields are left unchanged.
type UpdateProfileInput struct {
	AccountID string
	FullName  string
	Phone     string
}

// AuthService defines account and credential use-cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login exchanges credentials for a signed bearer token and the account snapshot.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	// Logout revokes the token identified by jti until its natural expiry.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetProfile(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Account, error)
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, accountID string) error
}
