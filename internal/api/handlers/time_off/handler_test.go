package time_off

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/timeoff"
	"github.com/m04kA/SMC-SalonService/internal/service/timeoff/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.TimeOffResponse)
	return resp, args.Error(1)
}

func (m *mockService) Approve(ctx context.Context, callerID, id int64) (*models.TimeOffResponse, error) {
	args := m.Called(ctx, callerID, id)
	resp, _ := args.Get(0).(*models.TimeOffResponse)
	return resp, args.Error(1)
}

func (m *mockService) Reject(ctx context.Context, callerID, id int64) (*models.TimeOffResponse, error) {
	args := m.Called(ctx, callerID, id)
	resp, _ := args.Get(0).(*models.TimeOffResponse)
	return resp, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, callerID, id int64) error {
	return m.Called(ctx, callerID, id).Error(0)
}

func (m *mockService) ListByStylist(ctx context.Context, callerID, stylistID int64) (*models.TimeOffListResponse, error) {
	args := m.Called(ctx, callerID, stylistID)
	resp, _ := args.Get(0).(*models.TimeOffListResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func router(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/time-off", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/time-off/{id}/approve", h.Approve).Methods(http.MethodPatch)
	r.HandleFunc("/time-off/{id}/reject", h.Reject).Methods(http.MethodPatch)
	r.HandleFunc("/time-off/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/stylists/{stylistId}/time-off", h.ListByStylist).Methods(http.MethodGet)
	return r
}

func do(h *Handler, method, path, body string, callerID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), callerID))
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *models.CreateTimeOffRequest) bool {
		return r.CallerID == 3 && r.StylistID == 3 && r.StartDate == "2026-11-02" && r.EndDate == "2026-11-04"
	})).Return(&models.TimeOffResponse{ID: 1, StylistID: 3, Status: "pending"}, nil)

	rec := do(NewHandler(svc, nopLogger{}), http.MethodPost, "/time-off",
		`{"stylistId":3,"startDate":"2026-11-02","endDate":"2026-11-04"}`, 3)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.TimeOffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body.Status)
	svc.AssertExpectations(t)
}

func TestApproveAndReject(t *testing.T) {
	svc := &mockService{}
	svc.On("Approve", mock.Anything, int64(1), int64(8)).Return(&models.TimeOffResponse{ID: 8, Status: "approved"}, nil)
	svc.On("Reject", mock.Anything, int64(1), int64(9)).Return(nil, timeoff.ErrNotPending)
	h := NewHandler(svc, nopLogger{})

	assert.Equal(t, http.StatusOK, do(h, http.MethodPatch, "/time-off/8/approve", "", 1).Code)
	assert.Equal(t, http.StatusConflict, do(h, http.MethodPatch, "/time-off/9/reject", "", 1).Code)
	svc.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	svc := &mockService{}
	svc.On("Delete", mock.Anything, int64(3), int64(5)).Return(nil)
	svc.On("Delete", mock.Anything, int64(3), int64(6)).Return(timeoff.ErrTimeOffNotFound)
	h := NewHandler(svc, nopLogger{})

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/time-off/5", "", 3).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/time-off/6", "", 3).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodDelete, "/time-off/0", "", 3).Code)
}

func TestListByStylist(t *testing.T) {
	svc := &mockService{}
	svc.On("ListByStylist", mock.Anything, int64(3), int64(3)).
		Return(&models.TimeOffListResponse{TimeOff: []models.TimeOffResponse{{ID: 1}, {ID: 2}}}, nil)

	rec := do(NewHandler(svc, nopLogger{}), http.MethodGet, "/stylists/3/time-off", "", 3)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.TimeOffListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.TimeOff, 2)
}
