package api

import (
	"context"

	"github.com/timmyz/newlongfor/internal/client/models"
)

// Client is the REST contract of the check-in server as consumed by the
// console. All methods honor context cancellation. Implementations perform
// one attempt per call; resilience is the caller's concern.
type Client interface {
	ListUsers(ctx context.Context) ([]models.UserRecord, error)
	CreateUser(ctx context.Context, p models.UserPayload) (*models.UserRecord, error)
	UpdateUser(ctx context.Context, id int64, p models.UserPayload) (*models.UserRecord, error)
	DeleteUser(ctx context.Context, id int64) error
	GetSettings(ctx context.Context) (*models.SettingsRecord, error)
	SaveSettings(ctx context.Context, s models.SettingsRecord) error
	ChangePassword(ctx context.Context, req models.PasswordChangeRequest) (*PasswordChangeResult, error)
}

// PasswordChangeResult carries the server's verdict on a password change.
// A rejected current password or policy violation arrives as OK=false with
// a Message, not as an error: the caller surfaces the message as-is.
type PasswordChangeResult struct {
	OK      bool
	Message string
}
