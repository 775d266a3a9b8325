package model

import "github.com/golang-jwt/jwt/v5"

// CounsellorClaims are JWT claims for counsellors watching the alert feed
type CounsellorClaims struct {
	CounsellorID string `json:"counsellorId"`
	Username     string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for counsellor login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token        string `json:"token"`
	CounsellorID string `json:"counsellorId"`
}
