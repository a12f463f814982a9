package entity

import "time"

type Operator struct {
	ID         string    `db:"id"`
	Email      string    `db:"email"`
	Username   string    `db:"username"`
	APIKeyHash string    `db:"api_key_hash"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type OperatorLoginData struct {
	ID       string
	Username string
	Email    string
}
