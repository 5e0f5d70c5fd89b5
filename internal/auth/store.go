// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # Account Data Access

// AccountRepository defines the data access contract for back-office accounts.
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Account: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Account, error)

	/*
		List returns all accounts ordered by creation time, newest first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Account: Page of accounts
		  - int: Total account count
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Account, int, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: Constraint violations or connectivity errors
	*/
	Create(context context.Context, account *Account) error

	/*
		Update persists mutable profile fields of an account.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: Update failures
	*/
	Update(context context.Context, account *Account) error

	/*
		UpdatePassword replaces the stored password hash.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - newHash: string

		Returns:
		  - error: Execution errors
	*/
	UpdatePassword(context context.Context, accountID, newHash string) error

	/*
		SetRole changes the authorization level of an account.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - role: string

		Returns:
		  - error: Execution errors
	*/
	SetRole(context context.Context, accountID, role string) error

	/*
		SetActive toggles whether an account may authenticate.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - active: bool

		Returns:
		  - error: Execution errors
	*/
	SetActive(context context.Context, accountID string, active bool) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh sessions.
type SessionRepository interface {

	// Create persists a new session record.
	Create(context context.Context, session *Session) error

	// FindByTokenHash resolves an active, unexpired session by token hash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke marks a single session as revoked.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll marks every active session of an account as revoked.
	RevokeAll(context context.Context, accountID string) error

	// RevokeOthers revokes all sessions of an account except the given one.
	RevokeOthers(context context.Context, accountID, currentSessionID string) error

	// DeleteExpired permanently removes sessions past their expiration.
	DeleteExpired(context context.Context) error
}

// # Reset Token Data Access

// ResetTokenRepository defines the contract for short-lived password reset tokens.
type ResetTokenRepository interface {

	// Set stores a reset token with its associated accountID and TTL.
	Set(context context.Context, token, accountID string, ttl time.Duration) error

	// Get resolves a token back to the accountID it was issued for.
	Get(context context.Context, token string) (string, error)

	// Delete removes a used or invalidated token.
	Delete(context context.Context, token string) error
}
