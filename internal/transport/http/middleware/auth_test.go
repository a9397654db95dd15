package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AadiZee/car-system-api/internal/config"
	"github.com/AadiZee/car-system-api/internal/domain"
	jwtinfra "github.com/AadiZee/car-system-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct{ mock.Mock }

func (m *mockResolver) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{JWTSecret: "test-secret", JWTExpiry: 24 * time.Hour})
	require.NoError(t, err)
	return p
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestResolve_NoToken_ContinuesAnonymous(t *testing.T) {
	p := newTestProvider(t)
	users := &mockResolver{}

	var sawIdentity bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawIdentity = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Resolve(p, users)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, sawIdentity)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestResolve_BadToken_HardFails(t *testing.T) {
	p := newTestProvider(t)
	users := &mockResolver{}

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, "not-a-real-token")
	rr := httptest.NewRecorder()
	Resolve(p, users)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, nextCalled)
}

func TestResolve_ExpiredToken_HardFails(t *testing.T) {
	expired, err := jwtinfra.NewProvider(&config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Hour})
	require.NoError(t, err)
	token, err := expired.Issue(&domain.User{UserID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	p := newTestProvider(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, token)
	rr := httptest.NewRecorder()
	Resolve(p, &mockResolver{})(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestResolve_ValidToken_AttachesIdentity(t *testing.T) {
	p := newTestProvider(t)
	u := &domain.User{UserID: "u1", Email: "alice@example.com"}
	token, err := p.Issue(u)
	require.NoError(t, err)

	users := &mockResolver{}
	users.On("GetByID", mock.Anything, "u1").Return(u, nil)

	var got *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, token)
	rr := httptest.NewRecorder()
	Resolve(p, users)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	users.AssertExpectations(t)
}

func TestResolve_ValidToken_DeletedUser_ContinuesAnonymous(t *testing.T) {
	p := newTestProvider(t)
	token, err := p.Issue(&domain.User{UserID: "ghost", Email: "ghost@example.com"})
	require.NoError(t, err)

	users := &mockResolver{}
	users.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	var sawIdentity bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawIdentity = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, token)
	rr := httptest.NewRecorder()
	Resolve(p, users)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, sawIdentity)
}

func TestRequireAuth_NoIdentity(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, nextCalled)
}

func TestRequireAuth_WithIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &domain.User{UserID: "u1"}))
	rr := httptest.NewRecorder()
	RequireAuth(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
