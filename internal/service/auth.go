package service

import (
	"context"
	"fmt"
	"time"

	"dental-academy-store/internal/model"
	"dental-academy-store/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

type AuthService interface {
	// Login checks the mock credential and returns a signed bearer token.
	// Passwords are compared as stored; this is demo auth, not security.
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	// ParseToken validates a bearer token and returns the subject user id.
	ParseToken(tokenString string) (string, error)
}

type authServiceImpl struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByID(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrForbidden)
	}
	if user.Password != password {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrForbidden)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, user, nil
}

func (s *authServiceImpl) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", ErrForbidden)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrForbidden)
	}

	return sub, nil
}
