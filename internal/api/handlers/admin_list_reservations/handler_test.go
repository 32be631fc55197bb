package admin_list_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ReDe-ReservationService/internal/service/admin"
	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/ReDe-ReservationService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) ListReservations(ctx context.Context, req *models.ListReservationsRequest) (*reservationModels.ReservationListResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*reservationModels.ReservationListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("ListReservations", mock.Anything, &models.ListReservationsRequest{
		Facility: "padel",
		From:     "2026-05-01",
		Search:   "1234",
	}).Return(&reservationModels.ReservationListResponse{Reservations: []reservationModels.ReservationResponse{}}, nil)
	svc.On("ListReservations", mock.Anything, &models.ListReservationsRequest{Facility: "golf"}).Return(nil, admin.ErrInvalidInput)

	h := NewHandler(svc, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations?facility=padel&from=2026-05-01&search=1234", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reservations":[]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations?facility=golf", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
