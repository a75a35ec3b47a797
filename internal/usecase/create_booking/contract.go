package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/internal/integrations/catalogservice"
	"github.com/m04kA/CWP-AllocationService/internal/integrations/garageservice"
	"github.com/m04kA/CWP-AllocationService/internal/service/registry"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByResource(ctx context.Context, resourceType domain.ResourceType, resourceID int64, window domain.TimeWindow) ([]*domain.Booking, error)
	CountActiveByResourceOnDay(ctx context.Context, resourceType domain.ResourceType, resourceID int64, day time.Time) (int, error)
}

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	ListCandidates(ctx context.Context, query registry.CandidateQuery) ([]registry.Candidate, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetServices(ctx context.Context, serviceIDs []int64) ([]*catalogservice.Service, error)
}

// GarageServiceClient интерфейс клиента для GarageService
type GarageServiceClient interface {
	GetVehicle(ctx context.Context, vehicleID int64) (*garageservice.Vehicle, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
