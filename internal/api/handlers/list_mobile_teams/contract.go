package list_mobile_teams

import (
	"context"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

type ResourceRegistry interface {
	ListMobileTeams(ctx context.Context) ([]*domain.MobileTeam, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
