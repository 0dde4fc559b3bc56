package entity

type User struct {
	Base
	Email        string  `db:"email"`
	DisplayName  *string `db:"display_name"`
	PasswordHash string  `db:"password"`
	IsActive     bool    `db:"is_active"`
}
