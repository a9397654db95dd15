package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AadiZee/car-system-api/internal/domain"
	"github.com/AadiZee/car-system-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, req domain.RegisterRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockUserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}
func (m *mockUserService) UpdateEmail(ctx context.Context, req domain.UpdateEmailRequest) (*domain.User, string, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}
func (m *mockUserService) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockUserService) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) MessageEnvelope {
	t.Helper()
	var env MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func TestRegister_Success(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Register", mock.Anything, domain.RegisterRequest{Email: "alice@example.com"}).Return(nil)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).Register(rr, postJSON("/api/users/register", `{"email":"alice@example.com"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Registered Successfully! Check email for password!", decodeEnvelope(t, rr).Message)
	svc.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := &mockUserService{}

	rr := httptest.NewRecorder()
	NewUserHandler(svc).Register(rr, postJSON("/api/users/register", `{"email":"not-an-email"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_MalformedBody(t *testing.T) {
	rr := httptest.NewRecorder()
	NewUserHandler(&mockUserService{}).Register(rr, postJSON("/api/users/register", `{broken`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid request body", decodeEnvelope(t, rr).Error)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Register", mock.Anything, mock.Anything).
		Return(fmt.Errorf("email already registered: %w", domain.ErrConflict))

	rr := httptest.NewRecorder()
	NewUserHandler(svc).Register(rr, postJSON("/api/users/register", `{"email":"alice@example.com"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_UnexpectedErrorIsOpaque500(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Register", mock.Anything, mock.Anything).Return(errors.New("dynamodb: connection reset"))

	rr := httptest.NewRecorder()
	NewUserHandler(svc).Register(rr, postJSON("/api/users/register", `{"email":"alice@example.com"}`))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	// Store internals never leak into responses.
	assert.Equal(t, "internal error", decodeEnvelope(t, rr).Error)
}

func TestLogin_SetsCookieAndReturnsPublicUser(t *testing.T) {
	u := &domain.User{UserID: "u1", Email: "alice@example.com", PasswordHash: "secret-hash"}
	svc := &mockUserService{}
	svc.On("Login", mock.Anything, domain.LoginRequest{Email: "alice@example.com", Password: "pw"}).
		Return(u, "signed-token", nil)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).Login(rr, postJSON("/api/users/login", `{"email":"alice@example.com","password":"pw"}`))

	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenHeader, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// The password hash must never appear in the response body.
	assert.NotContains(t, rr.Body.String(), "secret-hash")
	var pub domain.PublicUser
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&pub))
	assert.Equal(t, "u1", pub.ID)
	assert.Equal(t, "alice@example.com", pub.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, "", domain.ErrUnauthorized)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).Login(rr, postJSON("/api/users/login", `{"email":"alice@example.com","password":"wrong"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
}

func TestUpdateEmail_RotatesCookie(t *testing.T) {
	moved := &domain.User{UserID: "u1", Email: "new@example.com"}
	svc := &mockUserService{}
	svc.On("UpdateEmail", mock.Anything, domain.UpdateEmailRequest{
		Email:    "alice@example.com",
		NewEmail: "new@example.com",
	}).Return(moved, "fresh-token", nil)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).UpdateEmail(rr, postJSON("/api/users/update_email",
		`{"email":"alice@example.com","newemail":"new@example.com"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "fresh-token", cookies[0].Value)
}

func TestUpdatePassword_UnknownEmailIs404(t *testing.T) {
	svc := &mockUserService{}
	svc.On("UpdatePassword", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).UpdatePassword(rr, postJSON("/api/users/update_password",
		`{"email":"ghost@example.com","newpassword":"long-enough-pw"}`))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdatePassword_TooShort(t *testing.T) {
	svc := &mockUserService{}

	rr := httptest.NewRecorder()
	NewUserHandler(svc).UpdatePassword(rr, postJSON("/api/users/update_password",
		`{"email":"alice@example.com","newpassword":"short"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Delete", mock.Anything, "alice@example.com").Return(nil)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).Delete(rr, postJSON("/api/users/delete", `{"email":"alice@example.com"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "User deleted successfully", decodeEnvelope(t, rr).Message)
}

func TestIsAuth_NoIdentity(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/isauth", nil)
	NewUserHandler(&mockUserService{}).IsAuth(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "user not logged in", decodeEnvelope(t, rr).Error)
}

func TestIsAuth_WithIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/isauth", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(),
		&domain.User{UserID: "u1", Email: "alice@example.com"}))

	rr := httptest.NewRecorder()
	NewUserHandler(&mockUserService{}).IsAuth(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var pub domain.PublicUser
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&pub))
	assert.Equal(t, "u1", pub.ID)
}
