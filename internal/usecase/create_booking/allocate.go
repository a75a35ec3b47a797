package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	storage "github.com/m04kA/CWP-AllocationService/internal/infra/storage/booking"
	"github.com/m04kA/CWP-AllocationService/internal/service/registry"
)

// resourceKey идентифицирует ресурс в рамках одного запроса на создание
type resourceKey struct {
	resourceType domain.ResourceType
	resourceID   int64
}

// errLostRace сигнализирует о проигранной гонке за ресурс: после срабатывания
// exclusion constraint Postgres отвергает все последующие команды до конца
// транзакции, поэтому продолжать подбор внутри неё нельзя - транзакция
// откатывается и подбор перезапускается без проигранного ресурса
var errLostRace = errors.New("create_booking: lost race for resource")

// allocate подбирает первый подходящий ресурс и записывает бронирование
// Вызывается внутри транзакции: проверка занятости и вставка видят
// согласованный снимок. Ресурсы из lost пропускаются - гонка за них
// уже проиграна в предыдущих попытках
func (uc *UseCase) allocate(ctx context.Context, query registry.CandidateQuery, window domain.TimeWindow, booking *domain.Booking, lost map[resourceKey]struct{}) (*domain.Booking, error) {
	candidates, err := uc.registry.ListCandidates(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrNoCandidateResource):
			uc.logger.Warn("CreateBooking: no candidate resources for type=%s, size=%s", query.BookingType, query.VehicleSize)
			return nil, ErrNoCandidateResource
		case errors.Is(err, registry.ErrLocationRequired):
			return nil, ErrLocationRequired
		default:
			uc.logger.Error("CreateBooking: failed to list candidates: %v", err)
			return nil, fmt.Errorf("%w: failed to list candidates: %w", ErrInternal, err)
		}
	}

	for _, candidate := range candidates {
		if _, raceLost := lost[resourceKey{candidate.ResourceType, candidate.ResourceID}]; raceLost {
			continue
		}

		// Проверка пересечения с активными бронированиями ресурса
		conflicts, err := uc.bookingRepo.GetActiveByResource(ctx, candidate.ResourceType, candidate.ResourceID, window)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings for %s/%d: %v",
				candidate.ResourceType, candidate.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to check resource schedule: %w", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			continue
		}

		// Дневной лимит мобильных бригад
		if candidate.DailyCapacity > 0 {
			count, err := uc.bookingRepo.CountActiveByResourceOnDay(ctx, candidate.ResourceType, candidate.ResourceID, window.Start)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to count daily bookings for %s/%d: %v",
					candidate.ResourceType, candidate.ResourceID, err)
				return nil, fmt.Errorf("%w: failed to check daily capacity: %w", ErrInternal, err)
			}
			if count >= candidate.DailyCapacity {
				continue
			}
		}

		booking.ResourceType = candidate.ResourceType
		booking.ResourceID = &candidate.ResourceID

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			// Проиграли гонку за этот ресурс: транзакция уже отвергает
			// команды, исключаем ресурс и просим перезапуск подбора
			if errors.Is(err, storage.ErrResourceBusy) {
				uc.logger.Warn("CreateBooking: resource %s/%d taken concurrently, restarting allocation",
					candidate.ResourceType, candidate.ResourceID)
				lost[resourceKey{candidate.ResourceType, candidate.ResourceID}] = struct{}{}
				return nil, errLostRace
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		return created, nil
	}

	uc.logger.Warn("CreateBooking: all %d candidate resources are busy in window [%s, %s)",
		len(candidates), window.Start.Format(domain.DateFormat), window.End.Format(domain.DateFormat))
	return nil, ErrCapacityExhausted
}
