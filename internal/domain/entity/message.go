package entity

import "time"

// Message chat tarixidagi bitta xabar
type Message struct {
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"` // "user" yoki "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatContext foydalanuvchining so'nggi xabarlari
type ChatContext struct {
	UserID   int64     `json:"user_id"`
	Messages []Message `json:"messages"`
	LastUsed time.Time `json:"last_used"`
}

// RequestLog bitta so'rov va uning natijasi haqida yozuv.
// Sborkaning o'zi saqlanmaydi, faqat nima so'ralgani va nima
// qaytarilgani.
type RequestLog struct {
	ID        string    `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	Total     float64   `json:"total,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
