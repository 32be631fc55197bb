package admin_list_users

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
)

type AdminService interface {
	ListUsers(ctx context.Context, search string) (*models.UserListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
