package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CWP-AllocationService/internal/api/middleware"
	"github.com/m04kA/CWP-AllocationService/internal/service/bookings/models"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (f *fakeService) GetByID(context.Context, int64) (*models.BookingResponse, error) {
	return f.resp, f.err
}

func doRequest(t *testing.T, service BookingService, bookingID int64, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(service, fakeLogger{})

	router := mux.NewRouter()
	router.Handle("/api/v1/bookings/{bookingId}", middleware.Auth(http.HandlerFunc(handler.Handle))).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+strconv.FormatInt(bookingID, 10), nil)
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandle_OwnerGetsBooking(t *testing.T) {
	service := &fakeService{resp: &models.BookingResponse{
		ID:         42,
		CustomerID: 100,
		Status:     "confirmed",
	}}

	recorder := doRequest(t, service, 42, 100)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":42`)
}

func TestHandle_ForeignBookingForbidden(t *testing.T) {
	// Чужое бронирование не отдается даже аутентифицированному пользователю
	service := &fakeService{resp: &models.BookingResponse{
		ID:         42,
		CustomerID: 100,
	}}

	recorder := doRequest(t, service, 42, 777)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
