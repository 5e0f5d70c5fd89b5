// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/prefabrica/prefabrica/internal/platform/apperr"
	"github.com/prefabrica/prefabrica/internal/platform/sec"
	"github.com/prefabrica/prefabrica/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	//
	// # Parameters
	//   - accountID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(accountID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements authentication and account lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed by the security team.
type Service struct {
	accountRepository    AccountRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		accountRepository:    accountRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
	}
}

// # Account Provisioning

// CreateAccountInput holds the data an administrator supplies to provision
// a new back-office account.
type CreateAccountInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Role        sec.UserRole
}

/*
CreateAccount validates, hashes, and persists a new back-office account.

Description: Provisioning is admin-driven; there is no self-service
registration path into this system.

Parameters:
  - context: context.Context
  - input: CreateAccountInput

Returns:
  - *Account: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) CreateAccount(context context.Context, input CreateAccountInput) (*Account, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.accountRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.accountRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	role := input.Role
	if role == "" {
		role = sec.RoleViewer
	}

	// Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         role,
		IsActive:     true,
	}

	if err := service.accountRepository.Create(context, account); err != nil {
		return nil, fmt.Errorf("auth_service_create_account_failed: %w", err)
	}

	return account, nil
}

/*
ListAccounts returns a page of back-office accounts.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Account: Page of accounts
  - int: Total account count
  - err: Storage errors
*/
func (service *Service) ListAccounts(context context.Context, limit, offset int) ([]*Account, int, error) {
	return service.accountRepository.List(context, limit, offset)
}

/*
SetAccountRole changes an account's authorization level.

Description: Session tokens already issued keep their embedded role until
expiry; the short access-token TTL bounds the staleness window.

Parameters:
  - context: context.Context
  - accountID: string
  - role: sec.UserRole

Returns:
  - err: Validation or storage errors
*/
func (service *Service) SetAccountRole(context context.Context, accountID string, role sec.UserRole) error {
	if role != sec.RoleAdmin && role != sec.RoleEditor && role != sec.RoleViewer {
		return apperr.ValidationError("Unknown role: " + string(role))
	}
	return service.accountRepository.SetRole(context, accountID, string(role))
}

/*
DeactivateAccount blocks an account from authenticating and revokes all of
its active sessions.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - err: Storage errors
*/
func (service *Service) DeactivateAccount(context context.Context, accountID string) error {
	if err := service.accountRepository.SetActive(context, accountID, false); err != nil {
		return err
	}
	return service.sessionRepository.RevokeAll(context, accountID)
}

/*
ReactivateAccount re-enables a deactivated account.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - err: Storage errors
*/
func (service *Service) ReactivateAccount(context context.Context, accountID string) error {
	return service.accountRepository.SetActive(context, accountID, true)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Can be Username or Email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Account               *Account
}

/*
Login validates credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and initializes a new session with rotated security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	var account *Account
	var err error
	// Flexible login: look up by Email or Username
	account, err = service.accountRepository.FindByEmail(context, input.Login)
	if err != nil {
		account, err = service.accountRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the account does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !account.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	// bcrypt comparison is constant-time, preventing timing attacks
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(context, account, input.UserAgent, input.IPAddress)
}

/*
Logout permanently revokes the account's active session.

Description: Ensures that a tracked refresh token can never be used again.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// Session already gone or invalid: logout is idempotent.
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {

	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// Token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: Revoke the old session to prevent replay attacks
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	account, err := service.accountRepository.FindByID(context, session.AccountID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found or suspended")
	}

	if !account.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	return service.establishSession(context, account, userAgent, ipAddress)
}

// establishSession issues a fresh access/refresh token pair and persists the
// tracking session.
func (service *Service) establishSession(context context.Context, account *Account, userAgent, ipAddress string) (*LoginSession, error) {

	accessToken, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Username, string(account.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		AccountID: account.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		Account:               account,
	}, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Discovery token
  - err: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent enumeration.
	account, err := service.accountRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, account.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the DB,
and revokes all active sessions for security cleanup.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	accountID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.accountRepository.UpdatePassword(context, accountID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security Cleanup: Revoke EVERY active session for this account
	_ = service.sessionRepository.RevokeAll(context, accountID)

	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}

/*
ChangePassword allows an authenticated account to update its credentials.

Description: Verifies the current password and then revokes all OTHER refresh
sessions to ensure high security across devices.

Parameters:
  - context: context.Context
  - accountID: string
  - currentPassword: string
  - newPassword: string
  - currentRefreshToken: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, accountID, currentPassword, newPassword, currentRefreshToken string) error {

	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.accountRepository.UpdatePassword(context, accountID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Security Side Effect: Revoke all other sessions to force re-login on other devices
	tokenHash := sec.HashToken(currentRefreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err == nil {
		_ = service.sessionRepository.RevokeOthers(context, accountID, session.ID)
	}

	return nil
}
