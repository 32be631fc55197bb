package admin_delete_reservation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ReDe-ReservationService/internal/service/admin"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/ReDe-ReservationService/pkg/logger"
	"github.com/m04kA/ReDe-ReservationService/pkg/ptr"
)

type mockService struct{ mock.Mock }

func (m *mockService) DeleteReservation(ctx context.Context, id int64) (*reservationModels.DeleteResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*reservationModels.DeleteResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("DeleteReservation", mock.Anything, int64(11)).
		Return(&reservationModels.DeleteResponse{Success: true, Deposit: ptr.Ptr(5)}, nil)
	svc.On("DeleteReservation", mock.Anything, int64(12)).Return(nil, admin.ErrReservationNotFound)
	svc.On("DeleteReservation", mock.Anything, int64(13)).Return(nil, errors.New("db down"))
	h := NewHandler(svc, logger.Nop())

	serve := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/reservations/"+id, nil)
		req = mux.SetURLVars(req, map[string]string{"reservationId": id})
		rec := httptest.NewRecorder()
		h.Handle(rec, req)
		return rec
	}

	rec := serve("11")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"deposit":5}`, rec.Body.String())

	rec = serve("12")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), msgNotFound)

	assert.Equal(t, http.StatusInternalServerError, serve("13").Code)
	assert.Equal(t, http.StatusBadRequest, serve("0").Code)
	assert.Equal(t, http.StatusBadRequest, serve("abc").Code)

	svc.AssertExpectations(t)
}
