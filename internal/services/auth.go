package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ryanj77/ResturauntBackend/internal/store"
	"github.com/ryanj77/ResturauntBackend/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultRole is assigned when a registration omits the role field.
	DefaultRole = "user"

	// Channels carrying account events published after successful
	// operations. The worker command consumes them.
	ChannelUserRegistered = "auth.user.registered"
	ChannelUserLoggedIn   = "auth.user.logged_in"
)

// TokenIssuer produces a signed session token for an authenticated user.
// The extended flag selects a longer-lived token class; its semantics belong
// to the issuer.
type TokenIssuer interface {
	Issue(user types.User, extended bool) (string, error)
}

// EventPublisher delivers account events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// LoginResult is returned to the caller after a successful login. It is
// constructed only once credential verification has succeeded.
type LoginResult struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Registration is the candidate account submitted to Register. The plaintext
// password is hashed before it reaches the store and is never persisted.
type Registration struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService implements credential verification, session token issuance,
// and account registration on top of the user store.
type AuthService struct {
	users  *UserService
	tokens TokenIssuer
	events EventPublisher
}

// NewAuthService constructs an AuthService. The events publisher may be nil,
// in which case account events are not emitted.
func NewAuthService(users *UserService, tokens TokenIssuer, events EventPublisher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		events: events,
	}
}

// Authenticate verifies a username/password pair against the stored
// credential. An unknown username and a wrong password are indistinguishable
// to the caller: both yield ErrInvalidCredentials. Store failures other than
// absence propagate unchanged.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the credential and issues a session token for the
// matched account. Tokens are always standard-lifetime: the issuer supports
// an extended class but no entry point opts into it yet.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.tokens.Issue(user, false)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.publishEvent(ctx, ChannelUserLoggedIn, user)

	return LoginResult{Token: token, User: user}, nil
}

// Register creates a new account. The checks run in a fixed order: duplicate
// username, duplicate email, then password strength; the first failure wins
// and nothing is created. The existence checks are not transactional with
// the insert, so a concurrent duplicate surfaces as a creation error from
// the store's unique constraints.
func (s *AuthService) Register(ctx context.Context, reg Registration) error {
	if _, err := s.users.GetByUsername(ctx, reg.Username); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, reg.Email); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup email: %w", err)
	}

	if !CheckPasswordStrength(reg.Password) {
		return ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	role := reg.Role
	if role == "" {
		role = DefaultRole
	}

	user, err := s.users.Create(ctx, types.User{
		Username:     reg.Username,
		Email:        reg.Email,
		Role:         role,
		PasswordHash: string(hashed),
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	s.publishEvent(ctx, ChannelUserRegistered, user)
	return nil
}

// AccountEvent is the payload published to the broker for account activity.
type AccountEvent struct {
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishEvent emits an account event on a best-effort basis. Publishing
// never affects the outcome of the auth operation it follows.
func (s *AuthService) publishEvent(ctx context.Context, channel string, user types.User) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(AccountEvent{
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return
	}

	_, _ = s.events.Publish(ctx, channel, payload, map[string]string{
		"content-type": "application/json",
	})
}
