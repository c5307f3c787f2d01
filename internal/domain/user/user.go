package user

import "time"

// User: гость, вошедший по имени. Живёт столько же, сколько его сессия.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
