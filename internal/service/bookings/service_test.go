package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	bookingRepo "github.com/m04kA/CWP-AllocationService/internal/infra/storage/booking"
	"github.com/m04kA/CWP-AllocationService/internal/service/bookings/models"
	"github.com/m04kA/CWP-AllocationService/pkg/ptr"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string

	updatedID     int64
	updatedStatus domain.BookingStatus
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status, from domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	// Условный UPDATE реального репозитория: строка в другом статусе
	// не затрагивается
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	f.updatedID = id
	f.updatedStatus = status
	b.Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusPending && b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrStatusConflict
	}
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	b.Status = status
	return nil
}

// staleReadRepo отдает чтению прежний статус, пока строка уже переведена
// конкурентом - моделирует гонку "прочитали - проверили - записали"
type staleReadRepo struct {
	*fakeRepo
	staleStatus domain.BookingStatus
}

func (f *staleReadRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := f.fakeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stale := *b
	stale.Status = f.staleStatus
	return &stale, nil
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CustomerID:      100,
		VehicleID:       10,
		VehicleSize:     domain.SizeStandard,
		ServiceIDs:      []int64{1},
		BookingType:     domain.BookingTypeStationary,
		ScheduledAt:     time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          status,
		ResourceType:    domain.ResourceTypeWashBay,
		ResourceID:      ptr.Ptr(int64(3)),
	}
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, fakeLogger{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "confirmed", resp.Status)
		require.NotNil(t, resp.WashBayID)
		assert.Equal(t, int64(3), *resp.WashBayID)
		assert.Nil(t, resp.MobileTeamID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("customer cancels own booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
		svc := NewService(repo, fakeLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			ActorID:            100,
			CancellationReason: "передумал",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelledByUser, repo.cancelledStatus)
		assert.Equal(t, "передумал", repo.cancelledReason)
	})

	t.Run("operator cancels booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, fakeLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: 555})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelledByCompany, repo.cancelledStatus)
	})

	t.Run("in_progress cannot be cancelled", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusInProgress))
		svc := NewService(repo, fakeLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: 100})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusCancelledByUser))
		svc := NewService(repo, fakeLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: 100})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, fakeLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: 100})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("concurrent start wins over cancellation", func(t *testing.T) {
		// Между чтением confirmed и отменой конкурент перевел мойку
		// в in_progress - начатая мойка отменяться не должна
		repo := &staleReadRepo{
			fakeRepo:    newFakeRepo(testBooking(1, domain.StatusInProgress)),
			staleStatus: domain.StatusConfirmed,
		}
		svc := NewService(repo, fakeLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: 100})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, domain.StatusInProgress, repo.bookings[1].Status)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("legal forward transition", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, fakeLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			ActorID: 555,
			Status:  "confirmed",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
	})

	t.Run("backward transition rejected", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusCompleted))
		svc := NewService(repo, fakeLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			ActorID: 555,
			Status:  "in_progress",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("skipping a step rejected", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, fakeLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			ActorID: 555,
			Status:  "completed",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancellation via status update rejected", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, fakeLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			ActorID: 555,
			Status:  "cancelled_by_user",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, fakeLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			ActorID: 555,
			Status:  "paused",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("concurrent cancellation wins over confirm", func(t *testing.T) {
		// Конкурент отменил бронирование между чтением pending и записью:
		// подтверждение не должно вернуть строку из отмены
		repo := &staleReadRepo{
			fakeRepo:    newFakeRepo(testBooking(1, domain.StatusCancelledByUser)),
			staleStatus: domain.StatusPending,
		}
		svc := NewService(repo, fakeLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			ActorID: 555,
			Status:  "confirmed",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, domain.StatusCancelledByUser, repo.bookings[1].Status)
	})
}

func TestService_GetCustomerBookings(t *testing.T) {
	confirmed := testBooking(1, domain.StatusConfirmed)
	completed := testBooking(2, domain.StatusCompleted)
	repo := newFakeRepo(confirmed, completed)
	svc := NewService(repo, fakeLogger{})

	t.Run("all bookings", func(t *testing.T) {
		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			CustomerID: 100,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		status := "completed"
		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			CustomerID: 100,
			Status:     &status,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(2), resp.Bookings[0].ID)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		status := "paused"
		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			CustomerID: 100,
			Status:     &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
