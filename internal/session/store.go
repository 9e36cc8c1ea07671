// Package session holds the authentication credential and current-user
// identity. It is the only client state that survives restarts: the
// grant is mirrored to disk on login and rehydrated at construction.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"ticked/internal/api"
	"ticked/internal/model"
)

var (
	ErrInvalidEmail     = errors.New("invalid email")
	ErrNotAuthenticated = errors.New("not authenticated")
)

const grantKey = "session"

// grant is the persisted shape of an authenticated session.
type grant struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type Store struct {
	api  *api.Client
	disk *diskv.Diskv

	mu      sync.RWMutex
	token   string
	user    *model.User
	loading bool
	err     error
}

// New builds the store and rehydrates any persisted grant from dataDir.
// A corrupt or missing grant file just means a logged-out start.
func New(client *api.Client, dataDir string) *Store {
	s := &Store{
		api: client,
		disk: diskv.New(diskv.Options{
			BasePath:     dataDir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	raw, err := s.disk.Read(grantKey)
	if err != nil {
		return
	}
	var g grant
	if err := json.Unmarshal(raw, &g); err != nil || g.Token == "" {
		return
	}
	s.token = g.Token
	s.user = &g.User
}

// Token returns the session credential, empty when logged out. It is
// shaped to serve as the API client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Login exchanges credentials for a session grant. The store only
// changes on success.
func (s *Store) Login(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		s.recordErr(err)
		return err
	}

	s.setLoading(true)
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return err
	}
	return s.accept(resp)
}

func (s *Store) Register(ctx context.Context, email, password, name string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		s.recordErr(err)
		return err
	}

	s.setLoading(true)
	resp, err := s.api.Register(ctx, email, password, name)
	if err != nil {
		s.fail(err)
		return err
	}
	return s.accept(resp)
}

// Logout clears session state client-side only. There is no server
// call; subscriptions keyed on the credential must react to the cleared
// token.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.err = nil
	s.mu.Unlock()
	_ = s.disk.Erase(grantKey)
}

// DeleteAccount requests permanent server-side removal, then clears
// session state.
func (s *Store) DeleteAccount(ctx context.Context) error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	s.setLoading(true)
	if err := s.api.DeleteAccount(ctx); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.Logout()
	return nil
}

func (s *Store) accept(resp api.AuthResponse) error {
	s.mu.Lock()
	s.token = resp.AccessToken
	u := resp.User
	s.user = &u
	s.loading = false
	s.err = nil
	s.mu.Unlock()

	raw, err := json.Marshal(grant{Token: resp.AccessToken, User: resp.User})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.disk.Write(grantKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.err = nil
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = err
	s.mu.Unlock()
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
