package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/internal/service/registry"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByResource(ctx context.Context, resourceType domain.ResourceType, resourceID int64, window domain.TimeWindow) ([]*domain.Booking, error)
	CountActiveByResourceOnDay(ctx context.Context, resourceType domain.ResourceType, resourceID int64, day time.Time) (int, error)
}

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	ListCandidates(ctx context.Context, query registry.CandidateQuery) ([]registry.Candidate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
