package entities

import "time"

type User struct {
	ID           uint64    `db:"id"`
	Login        string    `db:"login"`
	Fio          string    `db:"fio"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Profile      string    `db:"profile"`
	CreatedAt    time.Time `db:"created_at"`
}
