package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckSecret сравнивает пароль с настройкой: bcrypt-хеш, если значение начинается с "$2", иначе открытый текст.
func CheckSecret(given, configured string) bool {
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2") {
		return CheckPasswordHash(given, configured)
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(configured)) == 1
}
