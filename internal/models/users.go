package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// GmailSuffix — допускаются только адреса gmail
const GmailSuffix = "@gmail.com"

// User — продавец
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Password            string    `json:"password"`                 // как ввели, либо bcrypt-хэш
	PasswordHashed      bool      `json:"passwordHashed,omitempty"` // Password — bcrypt-хэш
	BusinessName        string    `json:"businessName"`
	BusinessDescription string    `json:"businessDescription,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsGmail проверяет, что адрес вида name@gmail.com
func IsGmail(email string) bool {
	email = NormalizeEmail(email)
	return len(email) > len(GmailSuffix) && strings.HasSuffix(email, GmailSuffix) &&
		strings.Count(email, "@") == 1
}

// HashPassword превращает обычный пароль в безопасный хэш
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword проверяет пароль на совпадение с хэшем
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
