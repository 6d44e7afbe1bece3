package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/ryanj77/ResturauntBackend/internal/store"
	"github.com/ryanj77/ResturauntBackend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  []types.User
	nextID int
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, user)
	return user, nil
}

type fakeTokenIssuer struct {
	lastExtended bool
	issued       int
}

func (f *fakeTokenIssuer) Issue(user types.User, extended bool) (string, error) {
	f.lastExtended = extended
	f.issued++
	return fmt.Sprintf("token-for-%s", user.Username), nil
}

type recordingPublisher struct {
	channels []string
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	p.channels = append(p.channels, channel)
	return "msg-1", nil
}

func newTestAuthService(repo *fakeUserRepo) (*AuthService, *fakeTokenIssuer, *recordingPublisher) {
	issuer := &fakeTokenIssuer{}
	publisher := &recordingPublisher{}
	return NewAuthService(NewUserService(repo), issuer, publisher), issuer, publisher
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, email, password string) types.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := repo.Create(context.Background(), types.User{
		Username:     username,
		Email:        email,
		Role:         "user",
		PasswordHash: string(hash),
	})
	require.NoError(t, err)
	return user
}

func TestRegister_CreatesUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _, publisher := newTestAuthService(repo)

	err := svc.Register(context.Background(), Registration{
		Username: "alice",
		Email:    "a@example.com",
		Password: "Secur3Pass",
		Role:     "admin",
	})
	require.NoError(t, err)

	created, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", created.Email)
	assert.Equal(t, "admin", created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Secur3Pass")))
	assert.Equal(t, []string{"auth.user.registered"}, publisher.channels)
}

func TestRegister_DefaultsRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _, _ := newTestAuthService(repo)

	err := svc.Register(context.Background(), Registration{
		Username: "bob",
		Email:    "b@example.com",
		Password: "Secur3Pass",
	})
	require.NoError(t, err)

	created, err := repo.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, DefaultRole, created.Role)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "alice", "a@example.com", "Secur3Pass")
	svc, _, publisher := newTestAuthService(repo)

	// Duplicate username wins even when the password is weak: the checks
	// run in a fixed order and the first failure is the one reported.
	err := svc.Register(context.Background(), Registration{
		Username: "alice",
		Email:    "other@example.com",
		Password: "weak",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Len(t, repo.users, 1)
	assert.Empty(t, publisher.channels)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "alice", "a@example.com", "Secur3Pass")
	svc, _, _ := newTestAuthService(repo)

	err := svc.Register(context.Background(), Registration{
		Username: "alice2",
		Email:    "a@example.com",
		Password: "Secur3Pass",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Len(t, repo.users, 1)
}

func TestRegister_WeakPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _, publisher := newTestAuthService(repo)

	err := svc.Register(context.Background(), Registration{
		Username: "alice",
		Email:    "a@example.com",
		Password: "weak",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, repo.users, "no record may be created on a weak password")
	assert.Empty(t, publisher.channels)
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "alice", "a@example.com", "Secur3Pass")
	svc, issuer, publisher := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "alice", "Secur3Pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.False(t, issuer.lastExtended, "login always issues standard-lifetime tokens")
	assert.Equal(t, []string{"auth.user.logged_in"}, publisher.channels)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "alice", "a@example.com", "Secur3Pass")
	svc, issuer, _ := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "alice", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, issuer.issued, "no token may be issued on failed verification")
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _, _ := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "nobody", "Secur3Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WithoutPublisher(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "alice", "a@example.com", "Secur3Pass")
	svc := NewAuthService(NewUserService(repo), &fakeTokenIssuer{}, nil)

	result, err := svc.Login(context.Background(), "alice", "Secur3Pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}
