package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/internal/service/registry"
)

// UseCase use case проверки доступности ресурсов
// Read-only вариант подбора: возвращает все совместимые ресурсы с флагом
// занятости в запрошенном окне, без блокировок и без записи
type UseCase struct {
	bookingRepo BookingRepository
	registry    ResourceRegistry
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, resourceRegistry ResourceRegistry, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		registry:    resourceRegistry,
		logger:      logger,
	}
}

// Execute выполняет use case проверки доступности
// Результат носит информационный характер: между проверкой и созданием
// бронирования ресурс может быть занят другим клиентом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	window := domain.NewTimeWindow(req.ScheduledAt, req.DurationMinutes)

	candidates, err := uc.registry.ListCandidates(ctx, registry.CandidateQuery{
		BookingType:      req.BookingType,
		VehicleSize:      req.VehicleSize,
		CustomerLocation: req.CustomerLocation,
	})
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrNoCandidateResource):
			return nil, ErrNoCandidateResource
		case errors.Is(err, registry.ErrLocationRequired):
			return nil, ErrLocationRequired
		default:
			uc.logger.Error("CheckAvailability: failed to list candidates: %v", err)
			return nil, fmt.Errorf("%w: failed to list candidates: %v", ErrInternal, err)
		}
	}

	resources := make([]ResourceAvailability, 0, len(candidates))
	for _, candidate := range candidates {
		available, err := uc.isAvailable(ctx, candidate, window)
		if err != nil {
			return nil, err
		}
		resources = append(resources, ResourceAvailability{
			ResourceType: string(candidate.ResourceType),
			ResourceID:   candidate.ResourceID,
			Label:        candidate.Label,
			Available:    available,
		})
	}

	uc.logger.Info("CheckAvailability: type=%s, window=[%s, %s), candidates=%d",
		req.BookingType, window.Start.Format(domain.DateFormat), window.End.Format(domain.DateFormat), len(resources))

	return &Response{
		ScheduledAt: window.Start,
		WindowEnd:   window.End,
		Resources:   resources,
	}, nil
}

func (uc *UseCase) isAvailable(ctx context.Context, candidate registry.Candidate, window domain.TimeWindow) (bool, error) {
	conflicts, err := uc.bookingRepo.GetActiveByResource(ctx, candidate.ResourceType, candidate.ResourceID, window)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get active bookings for %s/%d: %v",
			candidate.ResourceType, candidate.ResourceID, err)
		return false, fmt.Errorf("%w: failed to check resource schedule: %v", ErrInternal, err)
	}
	if len(conflicts) > 0 {
		return false, nil
	}

	if candidate.DailyCapacity > 0 {
		count, err := uc.bookingRepo.CountActiveByResourceOnDay(ctx, candidate.ResourceType, candidate.ResourceID, window.Start)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to count daily bookings for %s/%d: %v",
				candidate.ResourceType, candidate.ResourceID, err)
			return false, fmt.Errorf("%w: failed to check daily capacity: %v", ErrInternal, err)
		}
		if count >= candidate.DailyCapacity {
			return false, nil
		}
	}

	return true, nil
}
