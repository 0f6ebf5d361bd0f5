package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/utils"
)

// dummyHash is compared against when a login email is unknown.
var dummyHash = func() string {
	hash, err := utils.HashPassword("not a real account password")
	if err != nil {
		panic(err)
	}
	return hash
}()

type AuthService struct {
	users  database.UserStore
	tokens *utils.TokenService
	seeder *Seeder
}

func NewAuthService(users database.UserStore, tokens *utils.TokenService, seeder *Seeder) *AuthService {
	return &AuthService{users: users, tokens: tokens, seeder: seeder}
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := s.seeder.Ensure(ctx); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Same bcrypt cost as a real check so response time does not
			// reveal which emails have accounts.
			utils.VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, expiresAt, err := s.tokens.Issue(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate validates a bearer token and resolves its user. Every failure
// that is the caller's fault collapses to ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *utils.Claims, error) {
	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, utils.ErrTokenInvalid) || errors.Is(err, utils.ErrTokenExpired) || errors.Is(err, utils.ErrTokenRevoked) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("resolve token user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, ErrUnauthenticated
	}
	return user, claims, nil
}

// Logout revokes the token behind claims. It reports false when tokens
// cannot be revoked server side and the client just has to drop it.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) (bool, error) {
	return s.tokens.Revoke(ctx, claims)
}

func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, claims *utils.Claims, current, next string) error {
	if !utils.VerifyPassword(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if !utils.ValidPasswordLength(next) {
		return ErrInvalidPassword
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if _, err := s.tokens.Revoke(ctx, claims); err != nil {
		slog.Warn("password changed but token revocation failed", "user", user.ID.Hex(), "error", err)
	}
	return nil
}

// CreateUser opens an account for another admin or editor.
func (s *AuthService) CreateUser(ctx context.Context, email, password, name string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleEditor
	}
	if role != models.RoleAdmin && role != models.RoleEditor {
		return nil, ErrInvalidRole
	}
	if !utils.ValidPasswordLength(password) {
		return nil, ErrInvalidPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:        utils.NormalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	inserted, err := s.users.InsertIfAbsent(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if !inserted {
		return nil, ErrEmailTaken
	}
	return user, nil
}
