package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/internal/infra/storage/booking"
	"github.com/m04kA/CWP-AllocationService/internal/integrations/catalogservice"
	"github.com/m04kA/CWP-AllocationService/internal/integrations/garageservice"
	"github.com/m04kA/CWP-AllocationService/internal/service/registry"
	"github.com/m04kA/CWP-AllocationService/pkg/ptr"
)

// Фейки для зависимостей use case

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

// fakeTxManager выполняет транзакции по одной, как сериализуемая изоляция
// onBegin вызывается в начале каждой транзакции - фейковый репозиторий
// сбрасывает в нем состояние "транзакция отвергает команды"
type fakeTxManager struct {
	mu      sync.Mutex
	calls   int
	onBegin func()
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.onBegin != nil {
		m.onBegin()
	}
	return fn(ctx)
}

func (m *fakeTxManager) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type fakeRegistry struct {
	mu         sync.Mutex
	candidates []registry.Candidate
	err        error
	lastQuery  registry.CandidateQuery
}

func (f *fakeRegistry) ListCandidates(_ context.Context, query registry.CandidateQuery) ([]registry.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

type fakeCatalog struct {
	services map[int64]*catalogservice.Service
}

func (f *fakeCatalog) GetServices(_ context.Context, serviceIDs []int64) ([]*catalogservice.Service, error) {
	result := make([]*catalogservice.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, ok := f.services[id]
		if !ok {
			return nil, catalogservice.ErrServiceNotFound
		}
		result = append(result, svc)
	}
	return result, nil
}

type fakeGarage struct {
	vehicles map[int64]*garageservice.Vehicle
}

func (f *fakeGarage) GetVehicle(_ context.Context, vehicleID int64) (*garageservice.Vehicle, error) {
	vehicle, ok := f.vehicles[vehicleID]
	if !ok {
		return nil, garageservice.ErrVehicleNotFound
	}
	return vehicle, nil
}

// errTxAborted повторяет поведение Postgres после первой ошибки внутри
// транзакции: все последующие команды отвергаются до конца транзакции
var errTxAborted = errors.New("current transaction is aborted, commands ignored until end of transaction block")

// fakeBookingRepo хранит бронирования в памяти и повторяет семантику
// реального репозитория: полуоткрытые окна, фильтр по активным статусам,
// отвержение команд после ошибки в транзакции
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64

	// resourceID -> сколько раз Create вернет ErrResourceBusy
	// (имитация проигранной гонки за ресурс)
	busyOnCreate map[int64]int

	// после ErrResourceBusy транзакция отвергает любые команды,
	// пока fakeTxManager не начнет новую
	aborted bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, busyOnCreate: map[int64]int{}}
}

func (f *fakeBookingRepo) resetTx() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aborted = false
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.aborted {
		return nil, errTxAborted
	}

	if b.ResourceID != nil && f.busyOnCreate[*b.ResourceID] > 0 {
		f.busyOnCreate[*b.ResourceID]--
		f.aborted = true
		return nil, booking.ErrResourceBusy
	}

	stored := *b
	stored.ID = f.nextID
	f.nextID++
	f.bookings = append(f.bookings, &stored)

	b.ID = stored.ID
	return b, nil
}

func (f *fakeBookingRepo) GetActiveByResource(_ context.Context, resourceType domain.ResourceType, resourceID int64, window domain.TimeWindow) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.aborted {
		return nil, errTxAborted
	}

	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ResourceType != resourceType || b.ResourceID == nil || *b.ResourceID != resourceID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Window().Overlaps(window) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) CountActiveByResourceOnDay(_ context.Context, resourceType domain.ResourceType, resourceID int64, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.aborted {
		return 0, errTxAborted
	}

	count := 0
	for _, b := range f.bookings {
		if b.ResourceType != resourceType || b.ResourceID == nil || *b.ResourceID != resourceID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Window().SameDay(day) {
			count++
		}
	}
	return count, nil
}

// Тестовое окружение

type testEnv struct {
	useCase   *UseCase
	repo      *fakeBookingRepo
	registry  *fakeRegistry
	txManager *fakeTxManager
	now       time.Time
}

func newTestEnv(t *testing.T, candidates []registry.Candidate, autoConfirm bool) *testEnv {
	t.Helper()

	price := 1500.0
	catalog := &fakeCatalog{services: map[int64]*catalogservice.Service{
		1: {ID: 1, Name: "Мойка кузова", DurationMinutes: 30, Price: &price},
		2: {ID: 2, Name: "Уборка салона", DurationMinutes: 15},
		3: {ID: 3, Name: "Керамика", DurationMinutes: 45, RequiredEquipment: []string{"ceramic_station"}},
	}}

	garage := &fakeGarage{vehicles: map[int64]*garageservice.Vehicle{
		10: {ID: 10, CustomerID: 100, Brand: "Toyota", Model: "Camry", LicensePlate: "А123БВ777", SizeClass: "standard"},
		11: {ID: 11, CustomerID: 100, Brand: "ГАЗ", Model: "Газель", LicensePlate: "В456ГД777", SizeClass: "oversized"},
		12: {ID: 12, CustomerID: 100, Brand: "UFO", Model: "X", LicensePlate: "Е789ЖЗ777", SizeClass: "hovercraft"},
	}}

	repo := newFakeBookingRepo()
	reg := &fakeRegistry{candidates: candidates}
	txMgr := &fakeTxManager{onBegin: repo.resetTx}
	now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)

	uc := NewUseCase(repo, reg, catalog, garage, txMgr, autoConfirm, fakeLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}

	return &testEnv{
		useCase:   uc,
		repo:      repo,
		registry:  reg,
		txManager: txMgr,
		now:       now,
	}
}

func bayCandidates(ids ...int64) []registry.Candidate {
	candidates := make([]registry.Candidate, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, registry.Candidate{
			ResourceType: domain.ResourceTypeWashBay,
			ResourceID:   id,
		})
	}
	return candidates
}

func stationaryRequest(scheduledAt time.Time) *Request {
	return &Request{
		CustomerID:  100,
		VehicleID:   10,
		ServiceIDs:  []int64{1, 2},
		BookingType: domain.BookingTypeStationary,
		ScheduledAt: scheduledAt,
	}
}

func TestExecute_AssignsFirstCandidate(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1, 2, 3), false)
	scheduledAt := env.now.Add(time.Hour)

	resp, err := env.useCase.Execute(context.Background(), stationaryRequest(scheduledAt))
	require.NoError(t, err)

	// Первый кандидат в порядке реестра, детерминированный выбор
	require.NotNil(t, resp.WashBayID)
	assert.Equal(t, int64(1), *resp.WashBayID)
	assert.Nil(t, resp.MobileTeamID)

	// Окно вычислено из суммы длительностей услуг: 30 + 15
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, scheduledAt, resp.ScheduledAt)
	assert.Equal(t, scheduledAt.Add(45*time.Minute), resp.WindowEnd)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, []string{"Мойка кузова", "Уборка салона"}, resp.ServiceNames)
	assert.Equal(t, 1500.0, resp.TotalPrice)
	assert.Equal(t, 1, env.txManager.callCount())
}

func TestExecute_AutoConfirm(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), true)

	resp, err := env.useCase.Execute(context.Background(), stationaryRequest(env.now.Add(time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_SkipsBusyCandidate(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1, 2), false)
	scheduledAt := env.now.Add(time.Hour)

	// Бокс 1 занят пересекающимся бронированием
	env.repo.bookings = append(env.repo.bookings, &domain.Booking{
		ID:              99,
		ResourceType:    domain.ResourceTypeWashBay,
		ResourceID:      ptr.Ptr(int64(1)),
		ScheduledAt:     scheduledAt.Add(-10 * time.Minute),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	})

	resp, err := env.useCase.Execute(context.Background(), stationaryRequest(scheduledAt))
	require.NoError(t, err)

	require.NotNil(t, resp.WashBayID)
	assert.Equal(t, int64(2), *resp.WashBayID)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)
	scheduledAt := env.now.Add(time.Hour)

	// Существующее бронирование заканчивается ровно в момент начала нового
	env.repo.bookings = append(env.repo.bookings, &domain.Booking{
		ID:              99,
		ResourceType:    domain.ResourceTypeWashBay,
		ResourceID:      ptr.Ptr(int64(1)),
		ScheduledAt:     scheduledAt.Add(-30 * time.Minute),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	})

	resp, err := env.useCase.Execute(context.Background(), stationaryRequest(scheduledAt))
	require.NoError(t, err)

	require.NotNil(t, resp.WashBayID)
	assert.Equal(t, int64(1), *resp.WashBayID)
}

func TestExecute_CancelledBookingFreesResource(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)
	scheduledAt := env.now.Add(time.Hour)

	// Отменённое бронирование на то же окно ресурс не держит
	env.repo.bookings = append(env.repo.bookings, &domain.Booking{
		ID:              99,
		ResourceType:    domain.ResourceTypeWashBay,
		ResourceID:      ptr.Ptr(int64(1)),
		ScheduledAt:     scheduledAt,
		DurationMinutes: 45,
		Status:          domain.StatusCancelledByUser,
	})

	resp, err := env.useCase.Execute(context.Background(), stationaryRequest(scheduledAt))
	require.NoError(t, err)

	require.NotNil(t, resp.WashBayID)
	assert.Equal(t, int64(1), *resp.WashBayID)
}

func TestExecute_CapacityExhausted(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1, 2), false)
	scheduledAt := env.now.Add(time.Hour)

	// Оба бокса заняты
	for _, id := range []int64{1, 2} {
		env.repo.bookings = append(env.repo.bookings, &domain.Booking{
			ResourceType:    domain.ResourceTypeWashBay,
			ResourceID:      ptr.Ptr(id),
			ScheduledAt:     scheduledAt,
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		})
	}

	_, err := env.useCase.Execute(context.Background(), stationaryRequest(scheduledAt))
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestExecute_NoCandidateResource(t *testing.T) {
	env := newTestEnv(t, nil, false)
	env.registry.err = registry.ErrNoCandidateResource

	_, err := env.useCase.Execute(context.Background(), stationaryRequest(env.now.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrNoCandidateResource)
}

func TestExecute_LostRaceFallsToNextCandidate(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1, 2), false)

	// Бокс 1 выглядит свободным, но вставка ловит exclusion constraint.
	// Фейковый репозиторий после этого отвергает команды до конца
	// транзакции, как настоящий Postgres - бокс 2 достижим только
	// из новой транзакции
	env.repo.busyOnCreate[1] = 1

	resp, err := env.useCase.Execute(context.Background(), stationaryRequest(env.now.Add(time.Hour)))
	require.NoError(t, err)

	require.NotNil(t, resp.WashBayID)
	assert.Equal(t, int64(2), *resp.WashBayID)

	// Проигранная гонка стоит отдельной транзакции
	assert.Equal(t, 2, env.txManager.callCount())
}

func TestExecute_LostRaceOnAllCandidates(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1, 2), false)
	env.repo.busyOnCreate[1] = 1
	env.repo.busyOnCreate[2] = 1

	_, err := env.useCase.Execute(context.Background(), stationaryRequest(env.now.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrCapacityExhausted)

	// Две проигранные гонки и финальная попытка без кандидатов
	assert.Equal(t, 3, env.txManager.callCount())
}

func TestExecute_ConcurrentRequestsRespectCapacity(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1, 2, 3), false)
	scheduledAt := env.now.Add(time.Hour)

	// Шесть одновременных запросов на одно окно при трёх боксах:
	// побеждают ровно три, каждый на своём боксе
	const requests = 6
	responses := make([]*Response, requests)
	errs := make([]error, requests)

	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			responses[i], errs[i] = env.useCase.Execute(context.Background(), stationaryRequest(scheduledAt))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	assigned := make(map[int64]bool)
	for i := 0; i < requests; i++ {
		if errs[i] != nil {
			assert.ErrorIs(t, errs[i], ErrCapacityExhausted)
			continue
		}
		succeeded++
		require.NotNil(t, responses[i].WashBayID)
		assert.False(t, assigned[*responses[i].WashBayID], "bay %d assigned twice", *responses[i].WashBayID)
		assigned[*responses[i].WashBayID] = true
	}

	assert.Equal(t, 3, succeeded)
	assert.Len(t, assigned, 3)
}

func TestExecute_MobileDailyCapacity(t *testing.T) {
	teamID := int64(5)
	env := newTestEnv(t, []registry.Candidate{
		{ResourceType: domain.ResourceTypeMobileTeam, ResourceID: teamID, DailyCapacity: 2},
	}, false)
	scheduledAt := env.now.Add(time.Hour)

	// Лимит бригады уже выбран двумя заказами в этот день
	for i := 0; i < 2; i++ {
		env.repo.bookings = append(env.repo.bookings, &domain.Booking{
			ResourceType:    domain.ResourceTypeMobileTeam,
			ResourceID:      ptr.Ptr(teamID),
			ScheduledAt:     scheduledAt.Add(time.Duration(2+i) * time.Hour),
			DurationMinutes: 45,
			Status:          domain.StatusConfirmed,
		})
	}

	req := stationaryRequest(scheduledAt)
	req.BookingType = domain.BookingTypeMobile
	req.CustomerLocation = &domain.GeoPoint{Latitude: 55.75, Longitude: 37.62}

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestExecute_MobileWithinDailyCapacity(t *testing.T) {
	teamID := int64(5)
	env := newTestEnv(t, []registry.Candidate{
		{ResourceType: domain.ResourceTypeMobileTeam, ResourceID: teamID, DailyCapacity: 2},
	}, false)
	scheduledAt := env.now.Add(time.Hour)

	env.repo.bookings = append(env.repo.bookings, &domain.Booking{
		ResourceType:    domain.ResourceTypeMobileTeam,
		ResourceID:      ptr.Ptr(teamID),
		ScheduledAt:     scheduledAt.Add(3 * time.Hour),
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	})

	req := stationaryRequest(scheduledAt)
	req.BookingType = domain.BookingTypeMobile
	req.CustomerLocation = &domain.GeoPoint{Latitude: 55.75, Longitude: 37.62}

	resp, err := env.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.MobileTeamID)
	assert.Equal(t, teamID, *resp.MobileTeamID)
}

func TestExecute_ScheduleInPast(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)

	_, err := env.useCase.Execute(context.Background(), stationaryRequest(env.now.Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// До транзакции дело не дошло
	assert.Equal(t, 0, env.txManager.callCount())
}

func TestExecute_MobileWithoutLocation(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)

	req := stationaryRequest(env.now.Add(time.Hour))
	req.BookingType = domain.BookingTypeMobile

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLocationRequired)
}

func TestExecute_VehicleNotFound(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)

	req := stationaryRequest(env.now.Add(time.Hour))
	req.VehicleID = 999

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)

	req := stationaryRequest(env.now.Add(time.Hour))
	req.ServiceIDs = []int64{1, 999}

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UnknownVehicleSizeClass(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)

	req := stationaryRequest(env.now.Add(time.Hour))
	req.VehicleID = 12 // size class "hovercraft"

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_EquipmentPassedToRegistry(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)

	req := stationaryRequest(env.now.Add(time.Hour))
	req.ServiceIDs = []int64{1, 3} // керамика требует ceramic_station

	_, err := env.useCase.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.SizeStandard, env.registry.lastQuery.VehicleSize)
	assert.Equal(t, []string{"ceramic_station"}, env.registry.lastQuery.RequiredEquipment)
}

func TestExecute_ValidationRejects(t *testing.T) {
	env := newTestEnv(t, bayCandidates(1), false)
	future := env.now.Add(time.Hour)

	tests := []struct {
		name   string
		mutate func(*Request)
		errIs  error
	}{
		{
			name:   "no services",
			mutate: func(r *Request) { r.ServiceIDs = nil },
			errIs:  ErrInvalidInput,
		},
		{
			name:   "non-positive customer",
			mutate: func(r *Request) { r.CustomerID = 0 },
			errIs:  ErrInvalidInput,
		},
		{
			name:   "unknown booking type",
			mutate: func(r *Request) { r.BookingType = "teleport" },
			errIs:  ErrInvalidInput,
		},
		{
			name:   "mobile team preference on stationary booking",
			mutate: func(r *Request) { id := int64(5); r.MobileTeamID = &id },
			errIs:  ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := stationaryRequest(future)
			tt.mutate(req)

			_, err := env.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}
