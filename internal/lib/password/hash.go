// Package password отвечает за хеширование паролей пользователей.
// Хеши считаются через bcrypt со стандартной стоимостью.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash возвращает bcrypt-хэш пароля для хранения в базе.
func Hash(raw string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сверяет сохранённый хэш с введённым паролем.
// Возвращает nil при совпадении.
func Verify(storedHash, raw string) error {
	const op = "password.Verify"
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
