package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

type memUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (m *memUserRepo) Init(ctx context.Context) error { return nil }
func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return fmt.Errorf("insert user: %w", repository.ErrDuplicate)
	}
	copied := *user
	m.byID[user.ID] = &copied
	m.byEmail[user.Email] = &copied
	return nil
}
func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := m.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}
func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := m.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}
func (m *memUserRepo) Delete(ctx context.Context, id string) error {
	user, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byEmail, user.Email)
	return nil
}

type memSessionRepo struct {
	sessions map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*domain.Session{}}
}

func (m *memSessionRepo) Init(ctx context.Context) error { return nil }
func (m *memSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}
func (m *memSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	if session, ok := m.sessions[id]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}
func (m *memSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}
func (m *memSessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	for id, session := range m.sessions {
		if !session.ExpiresAt.After(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func newTestAuthService() (AuthService, *memUserRepo, *memSessionRepo) {
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	return NewAuthService(users, sessions, "test-secret", time.Hour), users, sessions
}

func TestAuthService_SignUpValidation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name, userName, email, password string
	}{
		{"missing name", "", "a@example.com", "password1"},
		{"missing email", "Ada", "", "password1"},
		{"malformed email", "Ada", "not-an-email", "password1"},
		{"short password", "Ada", "a@example.com", "short"},
	}
	for _, tc := range cases {
		if _, _, err := svc.SignUp(ctx, tc.userName, tc.email, tc.password); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: error = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestAuthService_SignUpIssuesWorkingToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	user, token, err := svc.SignUp(ctx, "Ada", "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.PasswordHash != "" {
		t.Errorf("password hash leaked out of the service")
	}
	if token == "" {
		t.Fatalf("no token issued")
	}

	resolved, session, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved == nil || session == nil {
		t.Fatalf("fresh token did not resolve")
	}
	if resolved.ID != user.ID {
		t.Errorf("token resolved to user %q, want %q", resolved.ID, user.ID)
	}
	if session.UserID != user.ID {
		t.Errorf("session user %q, want %q", session.UserID, user.ID)
	}
}

func TestAuthService_SignUpDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "Ada", "ada@example.com", "password1"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, _, err := svc.SignUp(ctx, "Impostor", "ada@example.com", "password2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate sign up error = %v, want ErrEmailTaken", err)
	}
}

func TestAuthService_SignIn(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "Ada", "ada@example.com", "password1"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	user, token, err := svc.SignIn(ctx, "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.Email != "ada@example.com" || token == "" {
		t.Errorf("sign in returned user %q token %q", user.Email, token)
	}

	// wrong password and unknown account are indistinguishable
	if _, _, err := svc.SignIn(ctx, "ada@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_ResolveInvalidTokens(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	for _, token := range []string{"", "   ", "garbage", "a.b.c"} {
		user, session, err := svc.Resolve(ctx, token)
		if err != nil {
			t.Errorf("token %q: unexpected error %v", token, err)
		}
		if user != nil || session != nil {
			t.Errorf("token %q resolved to an identity", token)
		}
	}
}

func TestAuthService_ResolveRejectsForeignSignature(t *testing.T) {
	svc, users, sessions := newTestAuthService()
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "Ada", "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	other := NewAuthService(users, sessions, "different-secret", time.Hour)
	user, session, err := other.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != nil || session != nil {
		t.Errorf("token signed with another secret resolved to an identity")
	}
}

func TestAuthService_SignOutRevokesToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "Ada", "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	_, session, err := svc.Resolve(ctx, token)
	if err != nil || session == nil {
		t.Fatalf("resolve: session=%v err=%v", session, err)
	}

	if err := svc.SignOut(ctx, session.ID); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	// signing out twice is harmless
	if err := svc.SignOut(ctx, session.ID); err != nil {
		t.Fatalf("second sign out: %v", err)
	}

	user, resolved, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve after sign out: %v", err)
	}
	if user != nil || resolved != nil {
		t.Errorf("token still resolves after sign out")
	}
}

func TestAuthService_ExpiredSessionIsAnonymous(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "Ada", "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	// backdate the session row; the token itself is still within its window
	for _, session := range sessions.sessions {
		session.ExpiresAt = time.Now().Add(-time.Minute)
	}

	user, session, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != nil || session != nil {
		t.Errorf("expired session resolved to an identity")
	}
	if len(sessions.sessions) != 0 {
		t.Errorf("expired session row not reaped on resolve")
	}
}
