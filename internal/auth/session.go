// Package auth validates credentials against a fixed set and manages the
// persisted session of the signed-in user.
package auth

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/sumith1510/commodities-manager/internal/models"
	"github.com/sumith1510/commodities-manager/internal/storage"
)

// sessionKey names the persisted session record.
const sessionKey = "cm_user_v1"

// ErrInvalidCredentials is returned by Login when no credential matches.
var ErrInvalidCredentials = errors.New("invalid username or password")

// DefaultCredentials returns the compiled-in demo credential set, with
// plaintext secrets for use with PlainVerifier.
func DefaultCredentials() []models.Credential {
	return []models.Credential{
		{Username: "manager", Secret: "manager123", Role: models.RoleManager, Name: "A. Manager"},
		{Username: "store", Secret: "store123", Role: models.RoleStoreKeeper, Name: "S. Keeper"},
	}
}

// SessionManager authenticates users against a fixed credential set and
// owns the current session, persisting it across restarts.
type SessionManager struct {
	creds    []models.Credential
	verifier Verifier
	store    *storage.Store
	log      *zap.Logger
	current  *models.Session
}

// NewSessionManager constructs a SessionManager over the given credential
// set, secret verifier, and record store.
func NewSessionManager(creds []models.Credential, verifier Verifier, store *storage.Store, log *zap.Logger) *SessionManager {
	return &SessionManager{creds: creds, verifier: verifier, store: store, log: log}
}

// Login scans the credential set for a username match and verifies the
// password. On success it builds a session with the secret stripped,
// persists it, sets it as current, and returns it. Any mismatch fails
// with ErrInvalidCredentials.
func (m *SessionManager) Login(username, password string) (models.Session, error) {
	cred := m.lookup(username)
	if cred == nil || !m.verifier.Verify(cred.Secret, password) {
		return models.Session{}, ErrInvalidCredentials
	}

	session := models.Session{Username: cred.Username, Role: cred.Role, Name: cred.Name}
	m.persist(session)
	m.current = &session
	m.log.Info("user logged in",
		zap.String("username", session.Username), zap.String("role", string(session.Role)))
	return session, nil
}

// Logout removes the persisted session record and clears the current
// session. Logging out while signed out is a no-op.
func (m *SessionManager) Logout() {
	if err := m.store.Remove(sessionKey); err != nil {
		m.log.Warn("failed to remove session record", zap.Error(err))
	}
	m.current = nil
}

// Restore reads the persisted session record, if any, and re-verifies it
// against the credential set: the stored username must name a known
// credential, and the role and display name are re-derived from that
// credential rather than trusted from storage. Returns nil when no valid
// session can be restored.
func (m *SessionManager) Restore() *models.Session {
	data, ok := m.store.Read(sessionKey)
	if !ok {
		return nil
	}

	var stored models.Session
	if err := json.Unmarshal(data, &stored); err != nil {
		m.log.Warn("session record corrupt, ignoring", zap.Error(err))
		return nil
	}

	cred := m.lookup(stored.Username)
	if cred == nil {
		m.log.Warn("session record names unknown user, ignoring",
			zap.String("username", stored.Username))
		return nil
	}

	session := models.Session{Username: cred.Username, Role: cred.Role, Name: cred.Name}
	if session != stored {
		m.persist(session)
	}
	m.current = &session
	return &session
}

// Current returns the current session, or nil when signed out.
func (m *SessionManager) Current() *models.Session {
	return m.current
}

func (m *SessionManager) lookup(username string) *models.Credential {
	for i := range m.creds {
		if m.creds[i].Username == username {
			return &m.creds[i]
		}
	}
	return nil
}

func (m *SessionManager) persist(session models.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		m.log.Warn("failed to encode session", zap.Error(err))
		return
	}
	if err := m.store.Write(sessionKey, data); err != nil {
		m.log.Warn("failed to persist session", zap.Error(err))
	}
}
