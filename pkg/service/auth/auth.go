// Package auth provides login and token issuance. Authentication is
// strategy-based: the web API uses JWT, the CLI uses a plain password
// check.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/domain/user"
	"github.com/granafacil/financeiro/pkg/repository"
	"github.com/granafacil/financeiro/pkg/utils"
)

type contextKey string

const tokenContextKey contextKey = "token"

// Strategy abstracts how credentials are verified and how an authenticated
// session is represented.
type Strategy interface {
	Login(ctx context.Context, email, password string) (*user.User, error)
	GenerateToken(u *user.User) (string, error)
	GetCurrentUserID(ctx context.Context) (uuid.UUID, error)
}

// Service provides authentication operations over a Strategy.
type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

// New creates an auth Service with the given strategy.
func New(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{strategy: strategy, logger: logger}
}

// NewJWT creates an auth Service backed by the JWT strategy.
func NewJWT(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return New(&JWTStrategy{uow: uow, cfg: cfg, logger: logger}, logger)
}

// NewBasic creates an auth Service backed by the password-only strategy,
// for CLI use.
func NewBasic(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return New(&BasicStrategy{uow: uow}, logger)
}

// Login verifies the credentials and returns the authenticated user.
func (s *Service) Login(ctx context.Context, email, password string) (u *user.User, err error) {
	u, err = s.strategy.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email)
		return
	}
	s.logger.Info("login successful", "user_id", u.ID)
	return
}

// GenerateToken issues a session token for the user.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	return s.strategy.GenerateToken(u)
}

// GetCurrentUserID extracts the authenticated user's ID from a verified
// token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	return s.strategy.GetCurrentUserID(context.WithValue(context.TODO(), tokenContextKey, token))
}

// JWTStrategy verifies credentials against the user store and issues HS256
// tokens.
type JWTStrategy struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// Constant-cost comparison target for unknown emails, so login timing does
// not reveal whether an address is registered.
const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

func (s *JWTStrategy) Login(ctx context.Context, email, password string) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)
		if err != nil {
			utils.CheckPasswordHash(password, dummyHash)
			return user.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.Password) {
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

func (s *JWTStrategy) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *JWTStrategy) GetCurrentUserID(ctx context.Context) (uuid.UUID, error) {
	token, ok := ctx.Value(tokenContextKey).(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return uuid.Parse(raw)
}

// BasicStrategy verifies credentials without issuing tokens.
type BasicStrategy struct {
	uow repository.UnitOfWork
}

func (s *BasicStrategy) Login(ctx context.Context, email, password string) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)
		if err != nil {
			utils.CheckPasswordHash(password, dummyHash)
			return user.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.Password) {
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

func (s *BasicStrategy) GenerateToken(u *user.User) (string, error) {
	return "", nil
}

func (s *BasicStrategy) GetCurrentUserID(ctx context.Context) (uuid.UUID, error) {
	return uuid.Nil, user.ErrUserUnauthorized
}
