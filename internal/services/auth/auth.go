// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/autopuzzle/dealership-crm/internal/lib/jwt"
	"github.com/autopuzzle/dealership-crm/internal/lib/password"
	"github.com/autopuzzle/dealership-crm/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию и авторизацию пользователей.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной
// ролью "customer". Администраторы и эксперты заводятся миграцией.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (int, error) {
	hashed, err := password.Hash(req.Password)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         models.RoleCustomer,
		Phone:        req.Phone,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT с именем и ролью.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.Verify(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}
