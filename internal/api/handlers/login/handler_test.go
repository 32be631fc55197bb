package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ReDe-ReservationService/internal/service/auth"
	"github.com/m04kA/ReDe-ReservationService/internal/service/auth/models"
	"github.com/m04kA/ReDe-ReservationService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc *mockService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("Login", mock.Anything, &models.LoginRequest{DNI: "12345678A", Password: "secreto123"}).
		Return(&models.LoginResponse{Token: "jwt", TokenType: "Bearer", User: models.UserResponse{ID: 7}}, nil)
	svc.On("Login", mock.Anything, &models.LoginRequest{DNI: "12345678A", Password: "otra"}).
		Return(nil, auth.ErrInvalidCredentials)

	rec := serve(svc, `{"dni":"12345678A","password":"secreto123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"jwt"`)

	rec = serve(svc, `{"dni":"12345678A","password":"otra"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidCredentials)

	rec = serve(svc, `{"dni":"12345678A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
