// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefabrica/prefabrica/internal/auth"
	"github.com/prefabrica/prefabrica/internal/platform/apperr"
	"github.com/prefabrica/prefabrica/internal/platform/sec"
)

// fakeAccountRepo is an in-memory [auth.AccountRepository].
type fakeAccountRepo struct {
	accounts map[string]*auth.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*auth.Account{}}
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.Account, error) {
	if account, ok := f.accounts[id]; ok {
		return account, nil
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*auth.Account, error) {
	for _, account := range f.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepo) List(_ context.Context, _, _ int) ([]*auth.Account, int, error) {
	out := make([]*auth.Account, 0, len(f.accounts))
	for _, account := range f.accounts {
		out = append(out, account)
	}
	return out, len(out), nil
}

func (f *fakeAccountRepo) Create(_ context.Context, account *auth.Account) error {
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *auth.Account) error {
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) UpdatePassword(_ context.Context, accountID, newHash string) error {
	account, ok := f.accounts[accountID]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.PasswordHash = newHash
	return nil
}

func (f *fakeAccountRepo) SetRole(_ context.Context, accountID, role string) error {
	account, ok := f.accounts[accountID]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.Role = sec.UserRole(role)
	return nil
}

func (f *fakeAccountRepo) SetActive(_ context.Context, accountID string, active bool) error {
	account, ok := f.accounts[accountID]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.IsActive = active
	return nil
}

// fakeSessionRepo is an in-memory [auth.SessionRepository].
type fakeSessionRepo struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*auth.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	for _, session := range f.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessionRepo) Revoke(_ context.Context, sessionID string) error {
	if session, ok := f.sessions[sessionID]; ok {
		session.IsRevoked = true
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAll(_ context.Context, accountID string) error {
	for _, session := range f.sessions {
		if session.AccountID == accountID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepo) RevokeOthers(_ context.Context, accountID, currentSessionID string) error {
	for _, session := range f.sessions {
		if session.AccountID == accountID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) error { return nil }

func (f *fakeSessionRepo) active(accountID string) int {
	n := 0
	for _, session := range f.sessions {
		if session.AccountID == accountID && !session.IsRevoked {
			n++
		}
	}
	return n
}

// fakeResetRepo is an in-memory [auth.ResetTokenRepository].
type fakeResetRepo struct {
	tokens map[string]string
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]string{}}
}

func (f *fakeResetRepo) Set(_ context.Context, token, accountID string, _ time.Duration) error {
	f.tokens[token] = accountID
	return nil
}

func (f *fakeResetRepo) Get(_ context.Context, token string) (string, error) {
	accountID, ok := f.tokens[token]
	if !ok {
		return "", apperr.Unauthorized("Invalid or expired reset token")
	}
	return accountID, nil
}

func (f *fakeResetRepo) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

// fakeTokenProvider returns a fixed access token.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(_, _, _ string, _ time.Duration) (string, error) {
	return "signed.jwt.token", nil
}

// testHarness bundles the fakes behind one auth service.
type testHarness struct {
	service  *auth.Service
	accounts *fakeAccountRepo
	sessions *fakeSessionRepo
	resets   *fakeResetRepo
}

func newHarness() *testHarness {
	accounts := newFakeAccountRepo()
	sessions := newFakeSessionRepo()
	resets := newFakeResetRepo()
	return &testHarness{
		service:  auth.NewService(accounts, sessions, resets, fakeTokenProvider{}),
		accounts: accounts,
		sessions: sessions,
		resets:   resets,
	}
}

// seedAccount provisions an active account with a known password.
func (h *testHarness) seedAccount(t *testing.T, username, email, password string) *auth.Account {
	t.Helper()
	account, err := h.service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return account
}

/*
TestCreateAccount_DefaultsToViewer provisions without a role and expects
the least-privileged default.
*/
func TestCreateAccount_DefaultsToViewer(t *testing.T) {
	h := newHarness()

	account := h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	assert.Equal(t, sec.RoleViewer, account.Role)
	assert.True(t, account.IsActive)
	assert.NotEqual(t, "hunter2hunter2", account.PasswordHash)
}

/*
TestCreateAccount_RejectsDuplicates refuses reuse of email or username.
*/
func TestCreateAccount_RejectsDuplicates(t *testing.T) {
	h := newHarness()
	h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	_, err := h.service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Username: "someone-else",
		Email:    "editor1@prefabrica.cl",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = h.service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Username: "editor1",
		Email:    "other@prefabrica.cl",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestLogin_ByUsernameOrEmail accepts either identifier and issues a token pair.
*/
func TestLogin_ByUsernameOrEmail(t *testing.T) {
	h := newHarness()
	h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	for _, login := range []string{"editor1", "editor1@prefabrica.cl"} {
		session, err := h.service.Login(context.Background(), auth.LoginInput{
			Login:    login,
			Password: "hunter2hunter2",
		})
		require.NoError(t, err, "login %q", login)
		assert.Equal(t, "signed.jwt.token", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
	}
}

/*
TestLogin_Failures covers wrong password, unknown identity, and the
deactivated-account gate. All collapse into Unauthorized.
*/
func TestLogin_Failures(t *testing.T) {
	h := newHarness()
	account := h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	_, err := h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "ghost", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.NoError(t, h.service.DeactivateAccount(context.Background(), account.ID))
	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestRefreshSession_RotatesToken exchanges a refresh token for a new pair
and verifies the old token is burned.
*/
func TestRefreshSession_RotatesToken(t *testing.T) {
	h := newHarness()
	h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	first, err := h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)

	second, err := h.service.RefreshSession(context.Background(), first.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replaying the rotated-out token must fail.
	_, err = h.service.RefreshSession(context.Background(), first.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestLogout_IsIdempotent revokes the session and tolerates repeat calls
with stale tokens.
*/
func TestLogout_IsIdempotent(t *testing.T) {
	h := newHarness()
	account := h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	session, err := h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.Equal(t, 1, h.sessions.active(account.ID))

	require.NoError(t, h.service.Logout(context.Background(), session.RefreshToken))
	assert.Equal(t, 0, h.sessions.active(account.ID))

	require.NoError(t, h.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, h.service.Logout(context.Background(), "never-issued"))
}

/*
TestSetAccountRole validates the role enum and persists the change.
*/
func TestSetAccountRole(t *testing.T) {
	h := newHarness()
	account := h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	require.NoError(t, h.service.SetAccountRole(context.Background(), account.ID, sec.RoleEditor))
	assert.Equal(t, sec.RoleEditor, h.accounts.accounts[account.ID].Role)

	err := h.service.SetAccountRole(context.Background(), account.ID, "superuser")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestDeactivateAccount_RevokesSessions blocks the account and burns every
active session in one operation.
*/
func TestDeactivateAccount_RevokesSessions(t *testing.T) {
	h := newHarness()
	account := h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	_, err := h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)
	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.Equal(t, 2, h.sessions.active(account.ID))

	require.NoError(t, h.service.DeactivateAccount(context.Background(), account.ID))

	assert.False(t, h.accounts.accounts[account.ID].IsActive)
	assert.Equal(t, 0, h.sessions.active(account.ID))

	// Reactivation restores login without resurrecting old sessions.
	require.NoError(t, h.service.ReactivateAccount(context.Background(), account.ID))
	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.sessions.active(account.ID))
}

/*
TestPasswordReset_FullFlow walks request, reset, and session cleanup, and
checks the anti-enumeration behavior for unknown emails.
*/
func TestPasswordReset_FullFlow(t *testing.T) {
	h := newHarness()
	account := h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	_, err := h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)

	// Unknown email: silent success, no token issued.
	token, err := h.service.RequestPasswordReset(context.Background(), "ghost@prefabrica.cl")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = h.service.RequestPasswordReset(context.Background(), "editor1@prefabrica.cl")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, h.service.ResetPassword(context.Background(), token, "new-password-123"))

	// Old password dead, new password works, sessions revoked, token burned.
	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.Error(t, err)
	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "new-password-123"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.sessions.active(account.ID))

	err = h.service.ResetPassword(context.Background(), token, "another-password")
	require.Error(t, err)
}

/*
TestChangePassword verifies the current password, applies the new hash, and
revokes every session except the caller's own.
*/
func TestChangePassword(t *testing.T) {
	h := newHarness()
	account := h.seedAccount(t, "editor1", "editor1@prefabrica.cl", "hunter2hunter2")

	current, err := h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)
	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "hunter2hunter2"})
	require.NoError(t, err)

	err = h.service.ChangePassword(context.Background(), account.ID, "wrong", "new-password-123", current.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.NoError(t, h.service.ChangePassword(context.Background(), account.ID, "hunter2hunter2", "new-password-123", current.RefreshToken))

	// Only the caller's session survives.
	assert.Equal(t, 1, h.sessions.active(account.ID))

	_, err = h.service.Login(context.Background(), auth.LoginInput{Login: "editor1", Password: "new-password-123"})
	require.NoError(t, err)
}
