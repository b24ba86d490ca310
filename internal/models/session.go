package models

import "time"

// User описывает владельца аккаунта в удалённом API
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Credentials содержит данные для входа или регистрации
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Session связывает сессию дашборда с токеном удалённого API.
// Нулевой ExpiresAt означает сессию без срока действия.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	APIToken  string    `json:"api_token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired сообщает, истёк ли срок действия сессии к моменту now
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
