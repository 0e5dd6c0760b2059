package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/awoyaledolapo/clytix-1/internal/models"
	"github.com/awoyaledolapo/clytix-1/internal/repository"
	"github.com/awoyaledolapo/clytix-1/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const sessionTTL = 24 * time.Hour

type AuthService struct {
	users         repository.UserStore
	sessionSecret string
}

func NewAuthService(users repository.UserStore, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

func (a *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") || name == "" || len(password) < 6 {
		return nil, errors.New("invalid input")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return a.users.Create(ctx, email, name, hash)
}

func (a *AuthService) Login(ctx context.Context, email, password string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Email, sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
