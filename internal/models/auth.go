package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in access tokens issued by the campus SSO.
const (
	RoleAdmin     = "admin"
	RoleScheduler = "scheduler"
	RoleTeacher   = "teacher"
)

// JWTClaims is the access-token payload. Tokens are issued by the campus SSO;
// this API only verifies them.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
