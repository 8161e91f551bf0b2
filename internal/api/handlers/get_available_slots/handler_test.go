package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-WorkshopBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/logger"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

type useCaseStub struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *useCaseStub, target string, staff bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.OptionalStaff)
	r.HandleFunc("/dealerships/{dealershipId}/workshops/{workshopId}/available-slots",
		NewHandler(uc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if staff {
		req.Header.Set(middleware.HeaderStaffRole, "advisor")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const target = "/dealerships/1/workshops/10/available-slots?serviceId=5&date=2025-06-02"

func TestHandle_Slots(t *testing.T) {
	uc := &useCaseStub{resp: &getAvailableSlots.Response{
		Date:           "2025-06-02",
		AvailableSlots: []types.TimeString{"09:00", "09:30"},
		TotalSlots:     2,
	}}

	rec := serve(uc, target, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []any{"09:00", "09:30"}, body["available_slots"])
	assert.Equal(t, float64(2), body["total_slots"])
	assert.NotContains(t, body, "reason")
	assert.Equal(t, int64(10), uc.got.WorkshopID)
	assert.True(t, uc.got.IsPrivileged)
}

func TestHandle_EmptyWithReason(t *testing.T) {
	uc := &useCaseStub{resp: &getAvailableSlots.Response{
		Date:           "2025-06-02",
		AvailableSlots: []types.TimeString{},
		Reason:         domain.ReasonDayBlocked,
		Message:        domain.ReasonDayBlocked.Message(),
	}}

	rec := serve(uc, target, false)

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DAY_BLOCKED", body.Reason)
	assert.Empty(t, body.AvailableSlots)
	assert.Contains(t, rec.Body.String(), `"available_slots":[]`)
}

func TestHandle_BadQuery(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"без услуги", "/dealerships/1/workshops/10/available-slots?date=2025-06-02"},
		{"без даты", "/dealerships/1/workshops/10/available-slots?serviceId=5"},
		{"услуга не число", "/dealerships/1/workshops/10/available-slots?serviceId=x&date=2025-06-02"},
		{"мастерская не число", "/dealerships/1/workshops/w/available-slots?serviceId=5&date=2025-06-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseStub{}

			rec := serve(uc, tt.target, false)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"дата", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest, handlers.CodeInvalidInput, msgInvalidDate},
		{"идентификаторы", fmt.Errorf("%w: workshopID must be positive", getAvailableSlots.ErrInvalidInput),
			http.StatusBadRequest, handlers.CodeInvalidInput, msgInvalidInput},
		{"прошедшая дата", getAvailableSlots.ErrPastDate, http.StatusBadRequest, "PAST_DATE", msgPastDate},
		{"услуга", getAvailableSlots.ErrServiceNotFound, http.StatusNotFound, "SERVICE_NOT_FOUND", msgServiceNotFound},
		{"конфигурация", getAvailableSlots.ErrInvalidConfiguration, http.StatusInternalServerError, "INVALID_CONFIGURATION", msgInvalidConfig},
		{"внутренняя", getAvailableSlots.ErrInternal, http.StatusInternalServerError, handlers.CodeInternalError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&useCaseStub{err: tt.err}, target, false)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.ErrorCode)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}
