package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/internal/auth"
	"github.com/campuscloset/campuscloset-backend/internal/items"
	"github.com/campuscloset/campuscloset-backend/internal/rentals"
	"github.com/campuscloset/campuscloset-backend/internal/reviews"
	"github.com/campuscloset/campuscloset-backend/internal/saved"
	"github.com/campuscloset/campuscloset-backend/internal/users"
	"github.com/campuscloset/campuscloset-backend/pkg/config"
	"github.com/campuscloset/campuscloset-backend/pkg/db"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	"github.com/campuscloset/campuscloset-backend/pkg/logger"
	"github.com/campuscloset/campuscloset-backend/pkg/metrics"
)

var routerTestDDL = []string{`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  full_name TEXT NOT NULL,
  phone_number TEXT,
  whatsapp TEXT,
  graduation_year INTEGER,
  instagram_handle TEXT,
  verification_status TEXT NOT NULL DEFAULT 'pending',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS email_tokens (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  token TEXT NOT NULL UNIQUE,
  expires_at DATETIME NOT NULL,
  used_at DATETIME,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  lender_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  size TEXT NOT NULL,
  rental_price_per_week NUMERIC NOT NULL,
  pickup_location TEXT NOT NULL,
  must_return_washed BOOLEAN NOT NULL DEFAULT 0,
  payment_method TEXT NOT NULL DEFAULT 'either',
  zelle_info TEXT,
  contact_preferences TEXT NOT NULL DEFAULT '[]',
  status TEXT NOT NULL DEFAULT 'available',
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS item_photos (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  photo_url TEXT NOT NULL,
  photo_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS saved_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, item_id)
);`, `
CREATE TABLE IF NOT EXISTS rentals (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  renter_id TEXT NOT NULL,
  lender_id TEXT NOT NULL,
  rental_start_date DATETIME,
  rental_end_date DATETIME,
  actual_return_date DATETIME,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  rental_id TEXT NOT NULL,
  reviewer_id TEXT NOT NULL,
  reviewee_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  review_text TEXT,
  created_at DATETIME,
  UNIQUE (rental_id, reviewer_id)
);`}

func routerTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:  "test",
			Port: "0",
		},
		Campus: config.CampusConfig{EmailDomain: "columbia.edu"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "campuscloset-test",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
			MinLength:        6,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range routerTestDDL {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	cfg := routerTestConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	client := db.NewWithConn(conn)

	usersRepo := users.NewRepository(conn)
	itemsRepo := items.NewRepository(conn)
	rentalsRepo := rentals.NewRepository(conn)

	registerSvc, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             client,
		PasswordConfig: cfg.Password,
		CampusConfig:   cfg.Campus,
		JWTConfig:      cfg.JWT,
	})
	require.NoError(t, err)
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:  usersRepo,
		DB:        client,
		JWTConfig: cfg.JWT,
	})
	require.NoError(t, err)
	usersSvc, err := users.NewService(usersRepo)
	require.NoError(t, err)
	itemsSvc, err := items.NewService(itemsRepo)
	require.NoError(t, err)
	savedSvc, err := saved.NewService(saved.NewRepository(conn), itemsRepo)
	require.NoError(t, err)
	rentalsSvc, err := rentals.NewService(rentals.ServiceParams{DB: client, RentalsRepo: rentalsRepo})
	require.NoError(t, err)
	reviewsSvc, err := reviews.NewService(reviews.ServiceParams{
		DB:          client,
		ReviewsRepo: reviews.NewRepository(conn),
		RentalsRepo: rentalsRepo,
	})
	require.NoError(t, err)

	router := NewRouter(RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              client,
		HTTPMetrics:     metrics.NewHTTPMetrics(),
		IdentityLoader:  NewIdentityLoader(usersRepo),
		RegisterService: registerSvc,
		AuthService:     authSvc,
		UsersService:    usersSvc,
		ItemsService:    itemsSvc,
		SavedService:    savedSvc,
		RentalsService:  rentalsSvc,
		ReviewsService:  reviewsSvc,
	})
	return router, conn
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

// registerUser runs the register endpoint and returns the token and user id.
func registerUser(t *testing.T, router http.Handler, email string) (string, uuid.UUID) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     email,
		"password":  "sixchars",
		"full_name": "Router Test",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	decodeData(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken, resp.User.ID
}

func approveUser(t *testing.T, conn *gorm.DB, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, conn.Table("users").
		Where("id = ?", userID).
		Update("verification_status", enums.VerificationStatusApproved).Error)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-CampusCloset-Env"))

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/items", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	router, _ := newTestRouter(t)
	email := fmt.Sprintf("%s@columbia.edu", uuid.NewString())

	token, userID := registerUser(t, router, email)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var profile struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	}
	decodeData(t, rec, &profile)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, email, profile.Email)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "sixchars",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/verify-student", "", map[string]any{
		"token": "not-a-real-token",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestRouter_ProfileUpdateAndPublicView(t *testing.T) {
	router, _ := newTestRouter(t)

	ownerEmail := fmt.Sprintf("%s@columbia.edu", uuid.NewString())
	ownerToken, ownerID := registerUser(t, router, ownerEmail)

	viewerEmail := fmt.Sprintf("%s@columbia.edu", uuid.NewString())
	viewerToken, _ := registerUser(t, router, viewerEmail)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users/profile", ownerToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPut, "/api/v1/users/profile", ownerToken, map[string]any{
		"instagram_handle": "@campus.fits",
		"whatsapp":         "+1 212 555 0188",
		"graduation_year":  2027,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/"+ownerID.String(), viewerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var public struct {
		ID              uuid.UUID `json:"id"`
		Email           string    `json:"email"`
		InstagramHandle *string   `json:"instagram_handle"`
		Whatsapp        *string   `json:"whatsapp"`
		GraduationYear  *int      `json:"graduation_year"`
	}
	decodeData(t, rec, &public)
	assert.Equal(t, ownerID, public.ID)
	assert.Empty(t, public.Email)
	require.NotNil(t, public.InstagramHandle)
	assert.Equal(t, "@campus.fits", *public.InstagramHandle)
	require.NotNil(t, public.Whatsapp)
	assert.Equal(t, "+1 212 555 0188", *public.Whatsapp)
	require.NotNil(t, public.GraduationYear)
	assert.Equal(t, 2027, *public.GraduationYear)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/"+uuid.NewString(), viewerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_VerificationGate(t *testing.T) {
	router, conn := newTestRouter(t)
	email := fmt.Sprintf("%s@columbia.edu", uuid.NewString())
	token, userID := registerUser(t, router, email)

	body := map[string]any{
		"title":                 "Corduroy jacket",
		"category":              "outerwear",
		"size":                  "M",
		"rental_price_per_week": "10.00",
		"pickup_location":       "Broadway Hall desk",
		"contact_preferences":   []string{"phone"},
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/items", token, body)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// marketplace views are gated too, not just mutations
	for _, path := range []string{
		"/api/v1/items/my-items",
		"/api/v1/items/saved",
		"/api/v1/rentals/my-rentals",
		"/api/v1/rentals/my-lent-items",
	} {
		rec = doJSON(t, router, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	approveUser(t, conn, userID)

	for _, path := range []string{
		"/api/v1/items/my-items",
		"/api/v1/items/saved",
		"/api/v1/rentals/my-rentals",
		"/api/v1/rentals/my-lent-items",
	} {
		rec = doJSON(t, router, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/items", token, body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestRouter_RentalLifecycleOverHTTP(t *testing.T) {
	router, conn := newTestRouter(t)

	lenderEmail := fmt.Sprintf("%s@columbia.edu", uuid.NewString())
	lenderToken, lenderID := registerUser(t, router, lenderEmail)
	approveUser(t, conn, lenderID)

	renterEmail := fmt.Sprintf("%s@columbia.edu", uuid.NewString())
	_, renterID := registerUser(t, router, renterEmail)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/items", lenderToken, map[string]any{
		"title":                 "Sequin dress",
		"category":              "dresses",
		"size":                  "S",
		"rental_price_per_week": "15.50",
		"pickup_location":       "Lerner Hall lobby",
		"contact_preferences":   []string{"instagram"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, rec, &created)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/rentals/mark-rented", lenderToken, map[string]any{
		"item_id":   created.ID,
		"renter_id": renterID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var rental struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}
	decodeData(t, rec, &rental)
	assert.Equal(t, "active", rental.Status)

	// second mark-rented on the same item loses the race
	rec = doJSON(t, router, http.MethodPost, "/api/v1/rentals/mark-rented", lenderToken, map[string]any{
		"item_id":   created.ID,
		"renter_id": renterID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/rentals/mark-returned", lenderToken, map[string]any{
		"rental_id": rental.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var returned struct {
		Status           string  `json:"status"`
		ActualReturnDate *string `json:"actual_return_date"`
	}
	decodeData(t, rec, &returned)
	assert.Equal(t, "completed", returned.Status)
	assert.NotNil(t, returned.ActualReturnDate)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/rentals/%s/review", rental.ID), lenderToken, map[string]any{
		"rating": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/rentals/my-lent-items", lenderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lent []struct {
		ID         uuid.UUID `json:"id"`
		RenterName string    `json:"renter_name"`
	}
	decodeData(t, rec, &lent)
	require.Len(t, lent, 1)
	assert.Equal(t, rental.ID, lent[0].ID)
	assert.Equal(t, "Router Test", lent[0].RenterName)
}

func TestRouter_SaveAndFeed(t *testing.T) {
	router, conn := newTestRouter(t)

	lenderEmail := fmt.Sprintf("%s@columbia.edu", uuid.NewString())
	lenderToken, lenderID := registerUser(t, router, lenderEmail)
	approveUser(t, conn, lenderID)

	browserEmail := fmt.Sprintf("%s@columbia.edu", uuid.NewString())
	browserToken, browserID := registerUser(t, router, browserEmail)
	approveUser(t, conn, browserID)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/items", lenderToken, map[string]any{
		"title":                 "Platform boots",
		"category":              "shoes",
		"size":                  "38",
		"rental_price_per_week": "9.00",
		"pickup_location":       "Carman front desk",
		"contact_preferences":   []string{"phone"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, rec, &created)

	feedIDs := func(token string) []uuid.UUID {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/items", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var feed []struct {
			ID uuid.UUID `json:"id"`
		}
		decodeData(t, rec, &feed)
		ids := make([]uuid.UUID, 0, len(feed))
		for _, f := range feed {
			ids = append(ids, f.ID)
		}
		return ids
	}

	assert.Contains(t, feedIDs(browserToken), created.ID)
	assert.NotContains(t, feedIDs(lenderToken), created.ID)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/items/%s/save", created.ID), browserToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// saved items drop out of the feed
	assert.NotContains(t, feedIDs(browserToken), created.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/items/saved", browserToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var savedList []struct {
		Item struct {
			ID uuid.UUID `json:"id"`
		} `json:"item"`
	}
	decodeData(t, rec, &savedList)
	require.Len(t, savedList, 1)
	assert.Equal(t, created.ID, savedList[0].Item.ID)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/items/%s/unsave", created.ID), browserToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, feedIDs(browserToken), created.ID)
}
