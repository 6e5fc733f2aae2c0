package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/offerhub/offers-api/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by email
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.Email] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, "secret", AuthOptions{TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost}, zerolog.Nop())
}

func parseClaims(t *testing.T, token string) *tokenClaims {
	t.Helper()
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	token, err := svc.Register(context.Background(), "Alice@Example.com ", "pass123", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored, ok := repo.users["alice@example.com"]
	if !ok {
		t.Fatalf("expected user stored under normalized email")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.IsAdmin {
		t.Fatalf("registered users must not be admin")
	}

	claims := parseClaims(t, token)
	if claims.User.ID != stored.ID {
		t.Fatalf("token bound to %q, want %q", claims.User.ID, stored.ID)
	}
	if claims.User.Admin {
		t.Fatalf("register token must not carry the admin claim")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Sub(claims.IssuedAt.Time) != time.Hour {
		t.Fatalf("expected a one hour token, got %+v", claims.RegisteredClaims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "", "pass", "pass"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass", "other"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for mismatched passwords, got %v", err)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	long := strings.Repeat("a", 73)

	_, err := svc.Register(context.Background(), "bob@example.com", long, long)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for a 73 byte password, got %v", err)
	}
	if _, err := repo.FindByEmail(context.Background(), "bob@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("no user should be stored, got %v", err)
	}

	exact := strings.Repeat("a", 72)
	if _, err := svc.Register(context.Background(), "bob@example.com", exact, exact); err != nil {
		t.Fatalf("a 72 byte password must be accepted, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "bob@example.com", "pass", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass2", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "bob@example.com", "pass", "pass")
	if err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims := parseClaims(t, token)
	if claims.User.ID != repo.users["carol@example.com"].ID {
		t.Fatalf("unexpected user id claim: %q", claims.User.ID)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass", "goodpass")
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_LoginAsAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.CreateAdmin(context.Background(), "root@example.com", "rootpass"); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	_, _ = svc.Register(context.Background(), "user@example.com", "userpass", "userpass")

	token, err := svc.LoginAsAdmin(context.Background(), "root@example.com", "rootpass")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if !parseClaims(t, token).User.Admin {
		t.Fatalf("expected admin claim on admin token")
	}

	if _, err := svc.LoginAsAdmin(context.Background(), "user@example.com", "userpass"); err != domain.ErrNotAdmin {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if _, err := svc.LoginAsAdmin(context.Background(), "root@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CreateAdmin_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	first, err := svc.CreateAdmin(context.Background(), "root@example.com", "rootpass")
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	second, err := svc.CreateAdmin(context.Background(), "root@example.com", "different")
	if err != nil {
		t.Fatalf("second create admin failed: %v", err)
	}
	if first.ID != second.ID || len(repo.users) != 1 {
		t.Fatalf("expected the existing admin to be reused")
	}
}

func TestAuthService_Verify(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	token, err := svc.Register(context.Background(), "erin@example.com", "pw", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	id, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id.ID != repo.users["erin@example.com"].ID || id.IsAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}

	// Admin flag is read from the store, not the token.
	repo.users["erin@example.com"].IsAdmin = true
	id, err = svc.Verify(context.Background(), token)
	if err != nil || !id.IsAdmin {
		t.Fatalf("expected store admin flag to win, got %+v, %v", id, err)
	}
}

func TestAuthService_Verify_Rejects(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	token, _ := svc.Register(context.Background(), "frank@example.com", "pw", "pw")

	if _, err := svc.Verify(context.Background(), "not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	other := NewAuthService(repo, "other-secret", AuthOptions{BcryptCost: bcrypt.MinCost}, zerolog.Nop())
	if _, err := other.Verify(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Verify(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	svc.now = time.Now

	delete(repo.users, "frank@example.com")
	if _, err := svc.Verify(context.Background(), token); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for deleted user, got %v", err)
	}
}

func TestAuthService_Verify_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user": map[string]any{"id": "user-1"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(context.Background(), raw); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}
