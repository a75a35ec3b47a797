package registry

import (
	"context"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	ListWashBays(ctx context.Context, onlyActive bool) ([]*domain.WashBay, error)
	GetWashBayByID(ctx context.Context, id int64) (*domain.WashBay, error)
	ListMobileTeams(ctx context.Context, onlyActive bool) ([]*domain.MobileTeam, error)
	GetMobileTeamByID(ctx context.Context, id int64) (*domain.MobileTeam, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
