package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/internal/users"
	"github.com/campuscloset/campuscloset-backend/pkg/config"
	"github.com/campuscloset/campuscloset-backend/pkg/db"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
	"github.com/campuscloset/campuscloset-backend/pkg/security"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
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
);`
	emailTokens := `
CREATE TABLE IF NOT EXISTS email_tokens (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  token TEXT NOT NULL UNIQUE,
  expires_at DATETIME NOT NULL,
  used_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(usersTable).Error)
	require.NoError(t, conn.Exec(emailTokens).Error)

	return conn
}

func testAuthConfig() (config.JWTConfig, config.PasswordConfig, config.CampusConfig) {
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "campuscloset", ExpirationMinutes: 60}
	passwordCfg := config.PasswordConfig{MinLength: 6}
	campusCfg := config.CampusConfig{EmailDomain: "columbia.edu"}
	return jwtCfg, passwordCfg, campusCfg
}

func newRegisterServiceForTest(t *testing.T, conn *gorm.DB) RegisterService {
	t.Helper()
	jwtCfg, passwordCfg, campusCfg := testAuthConfig()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             db.NewWithConn(conn),
		PasswordConfig: passwordCfg,
		CampusConfig:   campusCfg,
		JWTConfig:      jwtCfg,
	})
	require.NoError(t, err)
	return svc
}

func newAuthServiceForTest(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	jwtCfg, _, _ := testAuthConfig()
	svc, err := NewService(ServiceParams{
		UserRepo:  users.NewRepository(conn),
		DB:        db.NewWithConn(conn),
		JWTConfig: jwtCfg,
	})
	require.NoError(t, err)
	return svc
}

func TestRegister_Success(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterServiceForTest(t, conn)

	email := uuid.NewString() + "@columbia.edu"
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "secret1",
		FullName: "Jordan Lee",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, email, resp.User.Email)
	assert.Equal(t, enums.VerificationStatusPending, resp.User.VerificationStatus)

	var tokenCount int64
	require.NoError(t, conn.Table("email_tokens").Where("user_id = ?", resp.User.ID).Count(&tokenCount).Error)
	assert.Equal(t, int64(1), tokenCount)
}

func TestRegister_NormalizesEmailCase(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterServiceForTest(t, conn)

	local := uuid.NewString()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    local + "@Columbia.EDU",
		Password: "secret1",
		FullName: "Jordan Lee",
	})
	require.NoError(t, err)
	assert.Equal(t, local+"@columbia.edu", resp.User.Email)
}

func TestRegister_RejectsNonCampusEmail(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterServiceForTest(t, conn)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "someone@gmail.com",
		Password: "secret1",
		FullName: "Jordan Lee",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, typed.Message(), "@columbia.edu")
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterServiceForTest(t, conn)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    uuid.NewString() + "@columbia.edu",
		Password: "abc",
		FullName: "Jordan Lee",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterServiceForTest(t, conn)

	email := uuid.NewString() + "@columbia.edu"
	req := RegisterRequest{Email: email, Password: "secret1", FullName: "Jordan Lee"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestLogin_SuccessAndRecordsLastLogin(t *testing.T) {
	conn := setupAuthTestDB(t)
	regSvc := newRegisterServiceForTest(t, conn)
	svc := newAuthServiceForTest(t, conn)

	email := uuid.NewString() + "@columbia.edu"
	_, err := regSvc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "secret1",
		FullName: "Jordan Lee",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: email, Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.WithinDuration(t, time.Now().UTC(), *resp.User.LastLoginAt, 5*time.Second)
}

func TestLogin_WrongPassword(t *testing.T) {
	conn := setupAuthTestDB(t)
	regSvc := newRegisterServiceForTest(t, conn)
	svc := newAuthServiceForTest(t, conn)

	email := uuid.NewString() + "@columbia.edu"
	_, err := regSvc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "secret1",
		FullName: "Jordan Lee",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: email, Password: "wrong"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, invalidCredentialsMessage, typed.Message())
}

func TestLogin_UnknownEmail(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newAuthServiceForTest(t, conn)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    uuid.NewString() + "@columbia.edu",
		Password: "secret1",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestVerifyStudent_ApprovesUser(t *testing.T) {
	conn := setupAuthTestDB(t)
	regSvc := newRegisterServiceForTest(t, conn)
	svc := newAuthServiceForTest(t, conn)

	email := uuid.NewString() + "@columbia.edu"
	resp, err := regSvc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "secret1",
		FullName: "Jordan Lee",
	})
	require.NoError(t, err)

	var tokens []string
	require.NoError(t, conn.Table("email_tokens").
		Where("user_id = ?", resp.User.ID).
		Pluck("token", &tokens).Error)
	require.Len(t, tokens, 1)

	verified, err := svc.VerifyStudent(context.Background(), VerifyStudentRequest{Token: tokens[0]})
	require.NoError(t, err)
	assert.Equal(t, enums.VerificationStatusApproved, verified.VerificationStatus)

	// second redemption must fail
	_, err = svc.VerifyStudent(context.Background(), VerifyStudentRequest{Token: tokens[0]})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestVerifyStudent_ExpiredToken(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newAuthServiceForTest(t, conn)

	userRepo := users.NewRepository(conn)
	hash, err := security.HashPassword("secret1", config.PasswordConfig{})
	require.NoError(t, err)
	user, err := userRepo.Create(context.Background(), users.CreateUserDTO{
		Email:        uuid.NewString() + "@columbia.edu",
		PasswordHash: hash,
		FullName:     "Jordan Lee",
	})
	require.NoError(t, err)

	tokenRepo := NewTokenRepository(conn)
	token := uuid.NewString()
	_, err = tokenRepo.Create(context.Background(), user.ID, token, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	_, err = svc.VerifyStudent(context.Background(), VerifyStudentRequest{Token: token})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestVerifyStudent_UnknownToken(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newAuthServiceForTest(t, conn)

	_, err := svc.VerifyStudent(context.Background(), VerifyStudentRequest{Token: uuid.NewString()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
