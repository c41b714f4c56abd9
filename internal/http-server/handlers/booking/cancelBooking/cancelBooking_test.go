package cancelBooking

import (
	"courtBooker/internal/booking"
	"courtBooker/internal/http-server/handlers/booking/cancelBooking/mocks"
	"courtBooker/internal/http-server/middleware/auth"
	"courtBooker/internal/lib/logger/handlers/slogdiscard"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		bookingID      string
		mockSetup      func(m *mocks.BookingCanceller)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Success",
			bookingID: "42",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, int64(7), int64(42)).Return(int64(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","cancelled":1}`,
		},
		{
			name:      "Already cancelled",
			bookingID: "42",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, int64(7), int64(42)).Return(int64(0), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","cancelled":0}`,
		},
		{
			name:           "Invalid booking ID format",
			bookingID:      "abc",
			mockSetup:      func(m *mocks.BookingCanceller) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid booking id format"}`,
		},
		{
			name:           "Negative booking ID",
			bookingID:      "-3",
			mockSetup:      func(m *mocks.BookingCanceller) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid booking id format"}`,
		},
		{
			name:      "Someone else's booking",
			bookingID: "42",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, int64(7), int64(42)).
					Return(int64(0), fmt.Errorf("booking.Cancel: %w", booking.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:      "Internal server error",
			bookingID: "42",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, int64(7), int64(42)).Return(int64(0), errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to cancel booking"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			canceller := mocks.NewBookingCanceller(t)
			tc.mockSetup(canceller)

			router := chi.NewRouter()
			router.Delete("/bookings/{id}", New(logger, canceller))

			req, err := http.NewRequest(http.MethodDelete, "/bookings/"+tc.bookingID, nil)
			require.NoError(t, err)
			req = req.WithContext(auth.WithUserID(req.Context(), 7))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	canceller := mocks.NewBookingCanceller(t)
	handler := New(slogdiscard.NewDiscardLogger(), canceller)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "booking id is required")
}
