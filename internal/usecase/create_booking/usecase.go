package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	catalogClient "github.com/m04kA/CWP-AllocationService/internal/integrations/catalogservice"
	garageClient "github.com/m04kA/CWP-AllocationService/internal/integrations/garageservice"
	"github.com/m04kA/CWP-AllocationService/internal/service/registry"
)

// UseCase use case создания бронирования с назначением ресурса
// Вычисляет окно по длительностям услуг, подбирает первый свободный
// совместимый ресурс и атомарно записывает бронирование вместе с назначением
type UseCase struct {
	bookingRepo   BookingRepository
	registry      ResourceRegistry
	catalogClient CatalogServiceClient
	garageClient  GarageServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	autoConfirm   bool
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// autoConfirm определяет начальный статус бронирования (confirmed вместо
// pending); на подбор ресурса не влияет
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRegistry ResourceRegistry,
	catalogClient CatalogServiceClient,
	garageClient GarageServiceClient,
	txManager TransactionManager,
	autoConfirm bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		registry:      resourceRegistry,
		catalogClient: catalogClient,
		garageClient:  garageClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		autoConfirm:   autoConfirm,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Критическая секция "подобрать ресурс -> проверить занятость -> записать"
// выполняется в сериализуемой транзакции: из двух конкурирующих запросов
// на последний свободный ресурс побеждает ровно один, второй получает
// ErrCapacityExhausted. При неудаче бронирование не сохраняется вовсе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, vehicle=%d, type=%s, scheduledAt=%s, services=%v",
		req.CustomerID, req.VehicleID, req.BookingType, req.ScheduledAt.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем автомобиль и его класс размера
	vehicle, err := uc.garageClient.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, garageClient.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	vehicleSize := domain.VehicleSizeClass(vehicle.SizeClass)
	if !vehicleSize.IsValid() {
		uc.logger.Error("CreateBooking: garage returned unknown size class %q for vehicle id=%d",
			vehicle.SizeClass, req.VehicleID)
		return nil, fmt.Errorf("%w: unknown vehicle size class %q", ErrInternal, vehicle.SizeClass)
	}

	// 4. Получаем услуги из каталога
	services, err := uc.catalogClient.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: some of services %v not found", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get services %v: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	// 5. Вычисляем окно бронирования по суммарной длительности услуг
	window, err := domain.ComputeWindow(req.ScheduledAt, serviceDurations(services))
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to compute window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 6. Проверяем расписание до любых запросов к ресурсам (fail fast)
	if err := validateSchedule(window, now); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// 7. Начальный статус определяется политикой автоподтверждения
	initialStatus := domain.StatusPending
	if uc.autoConfirm {
		initialStatus = domain.StatusConfirmed
	}

	query := registry.CandidateQuery{
		BookingType:         req.BookingType,
		VehicleSize:         vehicleSize,
		RequiredEquipment:   requiredEquipment(services),
		CustomerLocation:    req.CustomerLocation,
		PreferredResourceID: preferredResourceID(req),
	}

	booking := &domain.Booking{
		CustomerID:       req.CustomerID,
		VehicleID:        req.VehicleID,
		VehicleSize:      vehicleSize,
		ServiceIDs:       req.ServiceIDs,
		BookingType:      req.BookingType,
		ScheduledAt:      window.Start,
		DurationMinutes:  window.DurationMinutes(),
		Status:           initialStatus,
		CustomerLocation: req.CustomerLocation,
		// Денормализация данных услуг и автомобиля
		ServiceNames:        serviceNames(services),
		TotalPrice:          totalPrice(services),
		VehicleBrand:        &vehicle.Brand,
		VehicleModel:        &vehicle.Model,
		VehicleLicensePlate: &vehicle.LicensePlate,
		Notes:               req.Notes,
	}

	// 8. Подбор ресурса и запись бронирования в сериализуемой транзакции
	// Проигранная гонка откатывает транзакцию целиком, подбор
	// перезапускается в новой транзакции без проигранных ресурсов.
	// Каждый перезапуск исключает минимум один ресурс, поэтому цикл
	// ограничен числом кандидатов
	var result *domain.Booking
	lost := make(map[resourceKey]struct{})
	for {
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			allocated, allocErr := uc.allocate(txCtx, query, window, booking, lost)
			if allocErr != nil {
				return allocErr
			}
			result = allocated
			return nil
		})
		if !errors.Is(err, errLostRace) {
			break
		}
	}

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, resource=%s/%d, window=[%s, %s)",
		result.ID, result.ResourceType, *result.ResourceID,
		window.Start.Format("15:04"), window.End.Format("15:04"))

	return toResponse(result, window), nil
}

// preferredResourceID извлекает явное предпочтение ресурса из запроса
func preferredResourceID(req *Request) *int64 {
	if req.WashBayID != nil {
		return req.WashBayID
	}
	return req.MobileTeamID
}

// toResponse конвертирует доменную модель в response
func toResponse(b *domain.Booking, window domain.TimeWindow) *Response {
	resp := &Response{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		VehicleID:           b.VehicleID,
		ServiceIDs:          b.ServiceIDs,
		BookingType:         string(b.BookingType),
		ScheduledAt:         b.ScheduledAt,
		WindowEnd:           window.End,
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		ServiceNames:        b.ServiceNames,
		TotalPrice:          b.TotalPrice,
		VehicleBrand:        b.VehicleBrand,
		VehicleModel:        b.VehicleModel,
		VehicleLicensePlate: b.VehicleLicensePlate,
		Notes:               b.Notes,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	switch b.ResourceType {
	case domain.ResourceTypeWashBay:
		resp.WashBayID = b.ResourceID
	case domain.ResourceTypeMobileTeam:
		resp.MobileTeamID = b.ResourceID
	}

	return resp
}
