package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/internal/service/registry"
	"github.com/m04kA/CWP-AllocationService/pkg/ptr"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fakeRegistry struct {
	candidates []registry.Candidate
	err        error
}

func (f *fakeRegistry) ListCandidates(context.Context, registry.CandidateQuery) ([]registry.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByResource(_ context.Context, resourceType domain.ResourceType, resourceID int64, window domain.TimeWindow) ([]*domain.Booking, error) {
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
	count := 0
	for _, b := range f.bookings {
		if b.ResourceType != resourceType || b.ResourceID == nil || *b.ResourceID != resourceID {
			continue
		}
		if b.IsActive() && b.Window().SameDay(day) {
			count++
		}
	}
	return count, nil
}

func TestExecute_MarksBusyResources(t *testing.T) {
	scheduledAt := time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ResourceType:    domain.ResourceTypeWashBay,
			ResourceID:      ptr.Ptr(int64(1)),
			ScheduledAt:     scheduledAt.Add(15 * time.Minute),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}}

	reg := &fakeRegistry{candidates: []registry.Candidate{
		{ResourceType: domain.ResourceTypeWashBay, ResourceID: 1, Label: "bay #1"},
		{ResourceType: domain.ResourceTypeWashBay, ResourceID: 2, Label: "bay #2"},
	}}

	uc := NewUseCase(repo, reg, fakeLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingType:     domain.BookingTypeStationary,
		VehicleSize:     domain.SizeStandard,
		ScheduledAt:     scheduledAt,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, scheduledAt, resp.ScheduledAt)
	assert.Equal(t, scheduledAt.Add(30*time.Minute), resp.WindowEnd)

	require.Len(t, resp.Resources, 2)
	assert.False(t, resp.Resources[0].Available)
	assert.True(t, resp.Resources[1].Available)
}

func TestExecute_DailyCapacityMakesTeamUnavailable(t *testing.T) {
	scheduledAt := time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)

	teamID := int64(5)
	repo := &fakeBookingRepo{}
	for i := 0; i < 3; i++ {
		repo.bookings = append(repo.bookings, &domain.Booking{
			ResourceType:    domain.ResourceTypeMobileTeam,
			ResourceID:      ptr.Ptr(teamID),
			ScheduledAt:     scheduledAt.Add(time.Duration(2+i) * time.Hour),
			DurationMinutes: 45,
			Status:          domain.StatusConfirmed,
		})
	}

	reg := &fakeRegistry{candidates: []registry.Candidate{
		{ResourceType: domain.ResourceTypeMobileTeam, ResourceID: teamID, Label: "Бригада Центр", DailyCapacity: 3},
	}}

	uc := NewUseCase(repo, reg, fakeLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingType:      domain.BookingTypeMobile,
		VehicleSize:      domain.SizeStandard,
		ScheduledAt:      scheduledAt,
		DurationMinutes:  45,
		CustomerLocation: &domain.GeoPoint{Latitude: 55.75, Longitude: 37.62},
	})
	require.NoError(t, err)

	require.Len(t, resp.Resources, 1)
	assert.False(t, resp.Resources[0].Available)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeRegistry{}, fakeLogger{})
	scheduledAt := time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)

	t.Run("mobile without location", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			BookingType:     domain.BookingTypeMobile,
			VehicleSize:     domain.SizeStandard,
			ScheduledAt:     scheduledAt,
			DurationMinutes: 30,
		})
		assert.ErrorIs(t, err, ErrLocationRequired)
	})

	t.Run("duration out of range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			BookingType:     domain.BookingTypeStationary,
			VehicleSize:     domain.SizeStandard,
			ScheduledAt:     scheduledAt,
			DurationMinutes: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("unknown booking type", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			BookingType:     "teleport",
			VehicleSize:     domain.SizeStandard,
			ScheduledAt:     scheduledAt,
			DurationMinutes: 30,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no compatible resources", func(t *testing.T) {
		failing := NewUseCase(&fakeBookingRepo{}, &fakeRegistry{err: registry.ErrNoCandidateResource}, fakeLogger{})
		_, err := failing.Execute(context.Background(), &Request{
			BookingType:     domain.BookingTypeStationary,
			VehicleSize:     domain.SizeOversized,
			ScheduledAt:     scheduledAt,
			DurationMinutes: 30,
		})
		assert.ErrorIs(t, err, ErrNoCandidateResource)
	})
}
