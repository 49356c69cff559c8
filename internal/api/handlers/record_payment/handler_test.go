package record_payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	finalizePayment "github.com/m04kA/SMC-SalonService/internal/usecase/finalize_payment"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *finalizePayment.Request) (*finalizePayment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*finalizePayment.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/payment", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/orders/{orderId}/payment", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_BookingWithEmptyBody(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &finalizePayment.Request{
		CallerID:   5,
		SourceType: domain.IncomeBooking,
		SourceID:   12,
	}).Return(&finalizePayment.Response{
		SourceType: domain.IncomeBooking,
		SourceID:   12,
		Amount:     decimal.NewFromInt(2000),
		PaidAt:     time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC),
	}, nil)

	rec := serve(NewHandler(uc, domain.IncomeBooking, "bookingId", nopLogger{}), "/bookings/12/payment", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "booking", body.SourceType)
	assert.True(t, decimal.NewFromInt(2000).Equal(body.Amount))
	assert.False(t, body.AlreadyProcessed)
	uc.AssertExpectations(t)
}

func TestHandle_OrderWithAmount(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *finalizePayment.Request) bool {
		return r.SourceType == domain.IncomeOrder && r.SourceID == 4 && r.Amount != nil && r.Amount.Equal(decimal.RequireFromString("99.50"))
	})).Return(&finalizePayment.Response{
		SourceType:       domain.IncomeOrder,
		SourceID:         4,
		Amount:           decimal.RequireFromString("99.50"),
		AlreadyProcessed: true,
	}, nil)

	rec := serve(NewHandler(uc, domain.IncomeOrder, "orderId", nopLogger{}), "/orders/4/payment", `{"amount":"99.50"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.AlreadyProcessed)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		ucErr      error
		wantStatus int
	}{
		{"bad id", "/bookings/abc/payment", "", nil, http.StatusBadRequest},
		{"malformed body", "/bookings/1/payment", `{"amount":`, nil, http.StatusBadRequest},
		{"not payable", "/bookings/1/payment", "", finalizePayment.ErrNotPayable, http.StatusConflict},
		{"not found", "/bookings/1/payment", "", finalizePayment.ErrSourceNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(NewHandler(uc, domain.IncomeBooking, "bookingId", nopLogger{}), tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
