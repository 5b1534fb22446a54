package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/AchintyaNigam/my-rail/internal/records"
)

var (
	ErrMissingCredentials = errors.New("please fill in all fields")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLoginFailed        = errors.New("login failed")
	ErrTermsNotAccepted   = errors.New("you must agree to the Terms of Service and Privacy Policy")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrSignupFailed       = errors.New("signup failed")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type UserDirectory interface {
	FindUsersByEmail(ctx context.Context, email string) ([]records.UserRecord, error)
	CreateUser(ctx context.Context, rec records.SignupRecord) error
}

type Signup struct {
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	AgreeToTerms    bool
}

type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *records.UserRecord, error)
	Signup(ctx context.Context, in Signup) error
	VerifyToken(token string) (*Claims, error)
}

type authService struct {
	users  UserDirectory
	secret []byte
	ttl    time.Duration
	log    *logrus.Logger
	now    func() time.Time
}

func NewAuthService(users UserDirectory, secret string, ttl time.Duration, log *logrus.Logger) AuthService {
	return &authService{users: users, secret: []byte(secret), ttl: ttl, log: log, now: time.Now}
}

// Login checks password against the first account registered under email.
func (s *authService) Login(ctx context.Context, email, password string) (string, *records.UserRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", nil, ErrMissingCredentials
	}

	users, err := s.users.FindUsersByEmail(ctx, email)
	if err != nil {
		s.log.WithError(err).Error("user lookup failed")
		return "", nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	if len(users) == 0 || users[0].Password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:  user.FullName,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	user.Password = ""
	return signed, &user, nil
}

func (s *authService) Signup(ctx context.Context, in Signup) error {
	if !in.AgreeToTerms {
		return ErrTermsNotAccepted
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// confirmPassword carries the hash too so the plain password is never stored.
	if err := s.users.CreateUser(ctx, records.SignupRecord{
		FullName:        in.FullName,
		Email:           strings.TrimSpace(in.Email),
		Phone:           in.Phone,
		Password:        string(hash),
		ConfirmPassword: string(hash),
	}); err != nil {
		s.log.WithError(err).Error("signup rejected by record service")
		return fmt.Errorf("%w: %v", ErrSignupFailed, err)
	}
	return nil
}

func (s *authService) VerifyToken(raw string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &claims, nil
}
