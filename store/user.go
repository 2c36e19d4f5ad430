package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"house-portal/api"
	"house-portal/models"
)

// UserStore holds the login session. Unlike the HouseStore, every remote
// failure here is surfaced to the caller as a descriptive error: a failed
// login must be visible, a failed listing fetch must not.
type UserStore struct {
	mu sync.Mutex

	api     UserAPI
	persist SessionPersistence
	logger  *slog.Logger

	user    *models.User
	token   string
	loading bool
}

func NewUserStore(api UserAPI, persist SessionPersistence, logger *slog.Logger) *UserStore {
	return &UserStore{
		api:     api,
		persist: persist,
		logger:  logger,
	}
}

// Login authenticates against the user service and persists the session.
// The returned error prefers the server-supplied message when the remote
// rejected the attempt.
func (s *UserStore) Login(ctx context.Context, username, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, user, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.logger.Warn("login failed", "username", username, "cause", err)
		return errors.New(userMessage(err, "login failed"))
	}
	if token == "" || user == nil {
		return errors.New("login failed")
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	s.saveSession()
	return nil
}

// Logout clears the in-memory session and the persisted blob.
func (s *UserStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.persist.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted session", "cause", err)
	}
}

// CheckAuth rehydrates the session from persistence on startup. Absent,
// corrupt or partial blobs are treated as "not logged in" and cleared.
func (s *UserStore) CheckAuth() {
	data, err := s.persist.Load()
	if err != nil {
		s.logger.Warn("failed to load persisted session", "cause", err)
		return
	}
	if data == nil {
		return
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" || sess.User == nil {
		s.logger.Warn("discarding corrupt persisted session", "cause", err)
		if err := s.persist.Clear(); err != nil {
			s.logger.Warn("failed to clear persisted session", "cause", err)
		}
		return
	}

	s.mu.Lock()
	s.token = sess.Token
	s.user = sess.User
	s.mu.Unlock()
}

// UpdateProfile sends a partial profile change to the user service and
// merges the result into the session. Failures are surfaced.
func (s *UserStore) UpdateProfile(ctx context.Context, patch models.UpdateProfileRequest) error {
	s.mu.Lock()
	token, user := s.token, s.user
	s.mu.Unlock()
	if token == "" || user == nil {
		return ErrNotLoggedIn
	}

	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.api.UpdateUser(ctx, token, user.ID, patch)
	if err != nil {
		s.logger.Warn("profile update failed", "user_id", user.ID, "cause", err)
		return errors.New(userMessage(err, "profile update failed"))
	}

	s.mu.Lock()
	if updated != nil {
		merged := *s.user
		if updated.Email != "" {
			merged.Email = updated.Email
		}
		if updated.Name != "" {
			merged.Name = updated.Name
		}
		if updated.Role != "" {
			merged.Role = updated.Role
		}
		s.user = &merged
	}
	s.mu.Unlock()

	s.saveSession()
	return nil
}

// ChangePassword sets a new password for the logged-in user. Failures are
// surfaced.
func (s *UserStore) ChangePassword(ctx context.Context, newPassword string) error {
	s.mu.Lock()
	token, user := s.token, s.user
	s.mu.Unlock()
	if token == "" || user == nil {
		return ErrNotLoggedIn
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.ChangePassword(ctx, token, user.ID, newPassword); err != nil {
		s.logger.Warn("password change failed", "user_id", user.ID, "cause", err)
		return errors.New(userMessage(err, "password change failed"))
	}
	return nil
}

// IsLoggedIn reports whether both a token and a user record are present.
func (s *UserStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

func (s *UserStore) UserInfo() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

func (s *UserStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *UserStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *UserStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *UserStore) saveSession() {
	s.mu.Lock()
	sess := models.Session{Token: s.token, User: s.user}
	s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		s.logger.Warn("failed to serialize session", "cause", err)
		return
	}
	if err := s.persist.Save(data); err != nil {
		s.logger.Warn("failed to persist session", "cause", err)
	}
}

// userMessage extracts the server's error message for display, falling
// back to a generic one.
func userMessage(err error, fallback string) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s: request timed out", fallback)
	}
	return fallback
}
