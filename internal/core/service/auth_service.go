package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/offerhub/offers-api/internal/core/domain"
	"github.com/offerhub/offers-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// tokenUser is the "user" claim. Admin is only set on tokens minted by
// LoginAsAdmin.
type tokenUser struct {
	ID    string `json:"id"`
	Admin bool   `json:"admin,omitempty"`
}

type tokenClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo       ports.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	log        zerolog.Logger
	now        func() time.Time
}

// AuthOptions tunes token lifetime and hashing cost. Zero values fall back to
// the defaults (1h, bcrypt.DefaultCost).
type AuthOptions struct {
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   opts.TokenTTL,
		bcryptCost: opts.BcryptCost,
		log:        log,
		now:        time.Now,
	}
}

// Register creates a regular (non-admin) account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, email, password, confirmPassword string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	if password != confirmPassword {
		return "", fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	created, err := s.createUser(ctx, email, password, false)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return s.generateToken(created, false)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.generateToken(user, false)
}

// LoginAsAdmin is Login restricted to admin accounts; the token carries the
// admin claim.
func (s *AuthService) LoginAsAdmin(ctx context.Context, email, password string) (string, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	if !user.IsAdmin {
		return "", domain.ErrNotAdmin
	}
	return s.generateToken(user, true)
}

// Verify checks signature and expiry, then re-resolves the user so deleted
// accounts and admin demotions take effect immediately.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.User.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.User.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{ID: user.ID, IsAdmin: user.IsAdmin}, nil
}

// CreateAdmin makes sure an admin account exists for email. An existing
// account is returned untouched.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin {
			s.log.Warn().Str("user_id", existing.ID).Msg("bootstrap admin email belongs to a regular user")
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	created, err := s.createUser(ctx, email, password, true)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Msg("admin account created")
	return created, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, email, password string, admin bool) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      admin,
		CreatedAt:    s.now().UTC(),
	})
}

func (s *AuthService) generateToken(user *domain.User, admin bool) (string, error) {
	now := s.now()
	claims := tokenClaims{
		User: tokenUser{ID: user.ID, Admin: admin},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
