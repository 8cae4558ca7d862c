package util

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// ValidatePassword 密碼最小長度檢查
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 6 characters long")
	}
	return nil
}

// HashPassword 使用bcrypt雜湊密碼
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 比對密碼與bcrypt雜湊
func CheckPassword(password string, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
