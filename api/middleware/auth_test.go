package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/campuscloset/campuscloset-backend/pkg/auth"
	"github.com/campuscloset/campuscloset-backend/pkg/config"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
)

type fakeIdentityLoader struct {
	identities map[uuid.UUID]Identity
}

func (f *fakeIdentityLoader) LoadIdentity(_ context.Context, userID uuid.UUID) (Identity, error) {
	identity, ok := f.identities[userID]
	if !ok {
		return Identity{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return identity, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "campuscloset", ExpirationMinutes: 30}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "abc123@columbia.edu",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthenticated_InjectsIdentity(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	loader := &fakeIdentityLoader{identities: map[uuid.UUID]Identity{
		userID: {UserID: userID, Email: "abc123@columbia.edu", VerificationStatus: enums.VerificationStatusApproved},
	}}

	var seen Identity
	handler := Authenticated(cfg, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, userID))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.UserID != userID {
		t.Fatalf("expected identity user %s, got %s", userID, seen.UserID)
	}
	if seen.Email != "abc123@columbia.edu" {
		t.Fatalf("unexpected email %s", seen.Email)
	}
}

func TestAuthenticated_MissingToken(t *testing.T) {
	handler := Authenticated(testJWTConfig(), &fakeIdentityLoader{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticated_GarbageToken(t *testing.T) {
	handler := Authenticated(testJWTConfig(), &fakeIdentityLoader{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticated_DeletedUserBecomesUnauthorized(t *testing.T) {
	cfg := testJWTConfig()
	handler := Authenticated(cfg, &fakeIdentityLoader{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, uuid.New()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireVerified(t *testing.T) {
	cases := []struct {
		name     string
		status   enums.VerificationStatus
		expected int
	}{
		{"approved passes", enums.VerificationStatusApproved, http.StatusOK},
		{"pending blocked", enums.VerificationStatusPending, http.StatusForbidden},
		{"rejected blocked", enums.VerificationStatusRejected, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireVerified(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			identity := Identity{UserID: uuid.New(), VerificationStatus: tc.status}
			req := httptest.NewRequest(http.MethodPost, "/api/items", nil)
			req = req.WithContext(WithIdentity(req.Context(), identity))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, rec.Code)
			}
		})
	}
}

func TestRequireVerified_NoIdentity(t *testing.T) {
	handler := RequireVerified(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
