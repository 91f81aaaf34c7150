package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/media-discovery/internal/auth"
	"github.com/spec-kit/media-discovery/internal/config"
	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/events"
	"github.com/spec-kit/media-discovery/internal/repository"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

const uniqueViolation = "23505"

// TokenIssuer signs tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (domain.IssuedToken, error)
}

// UserService coordinates signup, signin and account maintenance.
type UserService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	dispatcher events.Dispatcher
	bcryptCost int
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     TokenIssuer
	Dispatcher events.Dispatcher
}

// SignupInput describes a new account.
type SignupInput struct {
	Username    string
	Password    string
	DisplayName string
}

// AuthResult pairs an account with a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token domain.IssuedToken
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Signup creates an account and signs the caller in.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewBadRequest("username already used")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		DisplayName:  input.DisplayName,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewBadRequest("username already used")
		}
		return nil, apperrors.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, events.EventUserSignedUp, user.ID, user.ID, nil)
	return &AuthResult{User: user, Token: token}, nil
}

// Signin checks credentials and issues a token.
func (s *UserService) Signin(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("User not exist")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, apperrors.NewBadRequest("Wrong password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// UpdatePassword replaces the caller's password after checking the current one.
func (s *UserService) UpdatePassword(ctx context.Context, identity domain.Identity, current, next string) error {
	user, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized()
		}
		return apperrors.NewInternalError(err)
	}
	if !auth.PasswordMatches(user.PasswordHash, current) {
		return apperrors.NewBadRequest("Wrong password")
	}

	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized()
		}
		return apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, events.EventPasswordUpdated, user.ID, user.ID, nil)
	return nil
}

// Info loads the caller's account.
func (s *UserService) Info(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
