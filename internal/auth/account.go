// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package auth implements identity and session management for the back office.

Accounts are provisioned by administrators; there is no self-service
registration. The package covers credential verification, JWT issuance,
refresh-token rotation, and password recovery.

# Architecture

  - Service: Orchestrates business logic (Login, Refresh, account lifecycle).
  - Repository: Abstracted interfaces for Postgres (Accounts, Sessions) and Redis (Reset tokens).
  - Security: Bcrypt password hashing and RSA-signed JWTs.
*/
package auth

import (
	"time"

	"github.com/prefabrica/prefabrica/internal/platform/sec"
)

// # Domain Entities

// Account represents a back-office operator of the Prefabrica platform.
type Account struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldRole            = "role"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldAccount         = "account"
	FieldMessage         = "message"
)
