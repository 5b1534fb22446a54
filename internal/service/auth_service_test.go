package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AchintyaNigam/my-rail/internal/records"
)

// --- Mock UserDirectory ---

type mockUsers struct {
	findFn   func(ctx context.Context, email string) ([]records.UserRecord, error)
	createFn func(ctx context.Context, rec records.SignupRecord) error
}

func (m *mockUsers) FindUsersByEmail(ctx context.Context, email string) ([]records.UserRecord, error) {
	return m.findFn(ctx, email)
}
func (m *mockUsers) CreateUser(ctx context.Context, rec records.SignupRecord) error {
	return m.createFn(ctx, rec)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func usersWith(list ...records.UserRecord) *mockUsers {
	return &mockUsers{
		findFn: func(ctx context.Context, email string) ([]records.UserRecord, error) { return list, nil },
	}
}

func TestLogin_Success(t *testing.T) {
	users := usersWith(records.UserRecord{ID: "u1", FullName: "Asha Rao", Email: "asha@example.com", Password: hashed(t, "secret")})
	svc := NewAuthService(users, "test-secret", time.Hour, quietLogger())

	token, user, err := svc.Login(context.Background(), "asha@example.com", "secret")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u1", user.ID)
	assert.Empty(t, user.Password)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "Asha Rao", claims.Name)
}

func TestLogin_FirstMatchWins(t *testing.T) {
	users := usersWith(
		records.UserRecord{ID: "u1", Email: "a@example.com", Password: hashed(t, "first")},
		records.UserRecord{ID: "u2", Email: "a@example.com", Password: hashed(t, "second")},
	)
	svc := NewAuthService(users, "s", time.Hour, quietLogger())

	_, _, err := svc.Login(context.Background(), "a@example.com", "second")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, user, err := svc.Login(context.Background(), "a@example.com", "first")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestLogin_Rejections(t *testing.T) {
	cases := map[string]struct {
		users    *mockUsers
		email    string
		password string
		want     error
	}{
		"empty fields":   {usersWith(), "", "x", ErrMissingCredentials},
		"blank password": {usersWith(), "a@example.com", "  ", ErrMissingCredentials},
		"no account":     {usersWith(), "a@example.com", "x", ErrInvalidCredentials},
		"no stored hash": {usersWith(records.UserRecord{Email: "a@example.com"}), "a@example.com", "x", ErrInvalidCredentials},
		"plaintext record": {
			usersWith(records.UserRecord{Email: "a@example.com", Password: "x"}), "a@example.com", "x", ErrInvalidCredentials,
		},
		"lookup error": {
			&mockUsers{findFn: func(ctx context.Context, email string) ([]records.UserRecord, error) {
				return nil, errors.New("connection refused")
			}},
			"a@example.com", "x", ErrLoginFailed,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewAuthService(tc.users, "s", time.Hour, quietLogger())
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	users := usersWith(records.UserRecord{ID: "u1", Email: "a@example.com", Password: hashed(t, "pw")})
	svc := NewAuthService(users, "secret-a", time.Hour, quietLogger())
	token, _, err := svc.Login(context.Background(), "a@example.com", "pw")
	require.NoError(t, err)

	other := NewAuthService(users, "secret-b", time.Hour, quietLogger())
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	users := usersWith(records.UserRecord{ID: "u1", Email: "a@example.com", Password: hashed(t, "pw")})
	svc := &authService{users: users, secret: []byte("s"), ttl: time.Minute, log: quietLogger(), now: time.Now}
	token, _, err := svc.Login(context.Background(), "a@example.com", "pw")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignup_Success(t *testing.T) {
	var stored records.SignupRecord
	users := &mockUsers{
		createFn: func(ctx context.Context, rec records.SignupRecord) error { stored = rec; return nil },
	}
	svc := NewAuthService(users, "s", time.Hour, quietLogger())

	err := svc.Signup(context.Background(), Signup{
		FullName: "Asha Rao", Email: " asha@example.com ", Phone: "9999999999",
		Password: "secret", ConfirmPassword: "secret", AgreeToTerms: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", stored.Email)
	assert.NotEqual(t, "secret", stored.Password)
	assert.Equal(t, stored.Password, stored.ConfirmPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
}

func TestSignup_Rejections(t *testing.T) {
	users := &mockUsers{
		createFn: func(ctx context.Context, rec records.SignupRecord) error {
			t.Fatal("record service must not be called")
			return nil
		},
	}
	svc := NewAuthService(users, "s", time.Hour, quietLogger())

	err := svc.Signup(context.Background(), Signup{Password: "a", ConfirmPassword: "a"})
	assert.ErrorIs(t, err, ErrTermsNotAccepted)

	err = svc.Signup(context.Background(), Signup{Password: "a", ConfirmPassword: "b", AgreeToTerms: true})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestSignup_RecordServiceError(t *testing.T) {
	users := &mockUsers{
		createFn: func(ctx context.Context, rec records.SignupRecord) error {
			return &records.StatusError{Code: 400, Body: "email taken"}
		},
	}
	svc := NewAuthService(users, "s", time.Hour, quietLogger())

	err := svc.Signup(context.Background(), Signup{Email: "a@example.com", Password: "a", ConfirmPassword: "a", AgreeToTerms: true})

	assert.ErrorIs(t, err, ErrSignupFailed)
}
