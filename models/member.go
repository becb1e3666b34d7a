package models

import (
	"strings"
	"time"
	"unicode"
)

type Member struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"not null"`
	LastName     string    `json:"last_name" gorm:"not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"index"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DeriveUsername builds the club username: first initial + last name, lowercased.
// "Kevin Lamb" -> "klamb".
func DeriveUsername(firstName, lastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	var b strings.Builder
	for _, r := range first {
		b.WriteRune(unicode.ToLower(r))
		break
	}
	for _, r := range last {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
