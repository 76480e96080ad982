package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error

	bookingID int64
	req       *models.CancelBookingRequest
}

func (f *fakeService) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	f.bookingID = bookingID
	f.req = req
	return f.err
}

func doCancel(svc BookingService, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{}
		rec := doCancel(svc, "/api/v1/bookings/55/cancel", `{"userId": 10, "cancellationReason": "не смогу прийти"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(55), svc.bookingID)
		require.NotNil(t, svc.req)
		assert.Equal(t, int64(10), svc.req.UserID)
		assert.Equal(t, "не смогу прийти", svc.req.CancellationReason)
	})

	t.Run("bad booking id", func(t *testing.T) {
		rec := doCancel(&fakeService{}, "/api/v1/bookings/abc/cancel", `{"userId": 10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing user id", func(t *testing.T) {
		svc := &fakeService{}
		rec := doCancel(svc, "/api/v1/bookings/55/cancel", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.req)
	})

	t.Run("not found", func(t *testing.T) {
		rec := doCancel(&fakeService{err: bookings.ErrBookingNotFound}, "/api/v1/bookings/55/cancel", `{"userId": 10}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("foreign booking", func(t *testing.T) {
		rec := doCancel(&fakeService{err: bookings.ErrAccessDenied}, "/api/v1/bookings/55/cancel", `{"userId": 10}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("terminal status", func(t *testing.T) {
		rec := doCancel(&fakeService{err: bookings.ErrInvalidTransition}, "/api/v1/bookings/55/cancel", `{"userId": 10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
