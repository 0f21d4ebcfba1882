package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID       int64  `db:"id"`
	HashID   string `db:"hash_id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	PassHash string `db:"pass_hash"`
	IsActive int16  `db:"is_active"`
}

// Claims defines the structure of the JWT claims. The registered Subject
// carries the username; SubID is the user's stable hash id; Session ties the
// token to one server-side session row so logout can revoke it.
type Claims struct {
	SubID   string `json:"sub_id"`
	Session string `json:"session"`
	jwt.RegisteredClaims
}
