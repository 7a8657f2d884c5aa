package models

import "time"

// Роли пользователей системы. Календарь встреч доступен только
// администраторам и экспертам.
const (
	RoleAdmin    = "admin"
	RoleExpert   = "expert"
	RoleCustomer = "customer"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта
	PasswordHash string    // Хэш пароля
	Role         string    // Роль: admin, expert или customer
	Phone        string    // Мобильный телефон
	CreatedAt    time.Time // Дата регистрации
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Password string `json:"password" validate:"required,min=8"`    // Пароль
	Phone    string `json:"phone" validate:"omitempty"`            // Мобильный телефон
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
}
