// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prefabrica/prefabrica/internal/platform/apperr"
)

const accountColumns = "id, username, email, passwordhash, displayname, role, isactive, createdat, updatedat"

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
Create persists a new account record into the users.account table.

Parameters:
  - context: context.Context
  - account: *Account (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	const query = `
			id, username, email, passwordhash, displayname, role, isactive, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.DisplayName,
		account.Role,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves an account record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		FROM users.account
		WHERE email = $1 AND deletedat IS NULL`

	return repository.findOne(context, query, email, "Account not found with this email")
}

/*
FindByUsername retrieves an account record by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*Account, error) {
	const query = `
		FROM users.account
		WHERE username = $1 AND deletedat IS NULL`

	return repository.findOne(context, query, username, "Account not found with this username")
}

/*
FindByID retrieves an account record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Account: Hydrated account entity
  - error: Not found or execution errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	const query = `
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	return repository.findOne(context, query, id, "Account not found")
}

// findOne runs a single-row account lookup with a caller-supplied not-found message.
func (repository *PostgresAccountRepository) findOne(context context.Context, query, argument, notFoundMessage string) (*Account, error) {
	account := &Account{}
	err := repository.pool.QueryRow(context, query, argument).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.DisplayName,
		&account.Role,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(notFoundMessage)
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return account, nil
}

/*
List returns a page of accounts ordered by creation time, newest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Account: Page of accounts
  - int: Total account count
  - error: Database retrieval failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, limit, offset int) ([]*Account, int, error) {
	const query = `
		FROM users.account
		WHERE deletedat IS NULL
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	var total int
	for rows.Next() {
		account := &Account{}
		if err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.Email,
			&account.PasswordHash,
			&account.DisplayName,
			&account.Role,
			&account.IsActive,
			&account.CreatedAt,
			&account.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, total, rows.Err()
}

/*
Update persists changes to an account's mutable profile fields.

Parameters:
  - context: context.Context
  - account: *Account

Returns:
  - error: Update failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, account *Account) error {
	const query = `
		SET username = $2, displayname = $3, updatedat = $4
		WHERE id = $1 AND deletedat IS NULL`

	account.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		account.ID,
		account.Username,
		account.DisplayName,
		account.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific account.

Parameters:
  - context: context.Context
  - accountID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, accountID, newHash string) error {
	const query = `
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query, accountID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
SetRole changes the authorization level of an account.

Parameters:
  - context: context.Context
  - accountID: string
  - role: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) SetRole(context context.Context, accountID, role string) error {
	query := "UPDATE users.account SET role = $2, updatedat = $3 WHERE id = $1 AND deletedat IS NULL"
	_, err := repository.pool.Exec(context, query, accountID, role, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_set_role_failed: %w", err)
	}
	return nil
}

/*
SetActive toggles whether an account may authenticate.

Parameters:
  - context: context.Context
  - accountID: string
  - active: bool

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) SetActive(context context.Context, accountID string, active bool) error {
	const query = "UPDATE users.account SET isactive = $2, updatedat = $3 WHERE id = $1 AND deletedat IS NULL"
	_, err := repository.pool.Exec(context, query, accountID, active, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_set_active_failed: %w", err)
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create persists a new session record into the users.session table.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
			id, accountid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.AccountID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash retrieves an active session by its unique token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	const query = `
		FROM users.session
		WHERE tokenhash = $1 AND isrevoked = FALSE AND expiresat > NOW()`

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.AccountID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session not found or expired")
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, nil
}

// Revoke marks a specific session as revoked.
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := "UPDATE users.session SET isrevoked = TRUE WHERE id = $1"
	_, err := repository.pool.Exec(context, query, sessionID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}
	return nil
}

// RevokeAll marks all active sessions for an account as revoked.
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, accountID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE accountid = $1 AND isrevoked = FALSE"
	_, err := repository.pool.Exec(context, query, accountID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_all_failed: %w", err)
	}
	return nil
}

// RevokeOthers marks all active sessions for an account as revoked, except for one.
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, accountID, currentSessionID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE accountid = $1 AND id != $2 AND isrevoked = FALSE"
	_, err := repository.pool.Exec(context, query, accountID, currentSessionID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_others_failed: %w", err)
	}
	return nil
}

// DeleteExpired permanently removes all sessions that have passed their expiration.
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) error {
	const query = "DELETE FROM users.session WHERE expiresat <= NOW()"
	_, err := repository.pool.Exec(context, query)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}
	return nil
}
