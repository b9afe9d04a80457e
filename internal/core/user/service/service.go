package userapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	userEntity "yatube/internal/core/user"
	userPort "yatube/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "yatube"
	tokenLifetime = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserService is the identity provider: it registers users, issues tokens
// and resolves a token back to a user ID.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
	}
}

// LoginUser checks the password and returns a signed JWT.
func (s *UserService) LoginUser(ctx context.Context, username string, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		config.Logger.Info("Login for unknown user", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		config.Logger.Info("Login with wrong password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenLifetime)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    tokenIssuer,
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// ParseToken returns the user ID a valid token was issued for.
func (s *UserService) ParseToken(tokenStr string) (uuid.UUID, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// RegisterUser creates a user with a bcrypt-hashed password.
func (s *UserService) RegisterUser(ctx context.Context, username, password string) (*userPort.UserDTO, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", apperr.ErrInvalidRequest)
	}

	existing, err := s.UserRepository.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		Username: username,
		Password: string(hashed),
	})
	if err != nil {
		return nil, err
	}

	config.Logger.Info("User registered", zap.String("username", u.Username), zap.String("id", u.ID.String()))
	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
	}, nil
}

// GetByUsername resolves a username, returning apperr.ErrNotFound if unknown.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	return s.UserRepository.FindByUsername(ctx, username)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error) {
	return s.UserRepository.FindByID(ctx, id)
}
