// Package session holds the CLI's signed-in state. There is one Session per
// process; views subscribe to it instead of re-reading the file.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".reef"
	fileName = "session.yaml"
)

type EventKind int

const (
	EventSignedIn EventKind = iota
	EventProfileLoaded
	EventSignedOut
)

func (k EventKind) String() string {
	switch k {
	case EventSignedIn:
		return "signed_in"
	case EventProfileLoaded:
		return "profile_loaded"
	case EventSignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the state changed and was saved.
type Event struct {
	Kind  EventKind
	State State
}

// Profile is the part of the user profile the CLI keeps between runs.
type Profile struct {
	UserID      int64  `yaml:"user_id"`
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	ReefID      int64  `yaml:"reef_id,omitempty"`
	ReefName    string `yaml:"reef_name,omitempty"`
	PartnerName string `yaml:"partner_name,omitempty"`
}

// State is what gets persisted.
type State struct {
	APIURL    string    `yaml:"api_url,omitempty"`
	Token     string    `yaml:"token,omitempty"`
	ExpiresAt time.Time `yaml:"expires_at,omitempty"`
	Profile   *Profile  `yaml:"profile,omitempty"`
}

// SignedIn reports whether the state holds an unexpired token.
func (s State) SignedIn() bool {
	return s.Token != "" && (s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt))
}

type Session struct {
	mu     sync.Mutex
	path   string
	state  State
	subs   map[int]func(Event)
	nextID int
}

// DefaultPath is ~/.reef/session.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the session file at path. A missing file is an empty session.
func Load(path string) (*Session, error) {
	s := &Session{path: path, subs: make(map[int]func(Event))}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	return s, nil
}

// Subscribe registers fn for every later change. The returned func unsubscribes.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.SignedIn() {
		return ""
	}
	return s.state.Token
}

func (s *Session) SignIn(apiURL, token string, expiresAt time.Time) error {
	return s.update(EventSignedIn, func(st *State) {
		*st = State{APIURL: apiURL, Token: token, ExpiresAt: expiresAt}
	})
}

func (s *Session) SetProfile(p Profile) error {
	return s.update(EventProfileLoaded, func(st *State) {
		st.Profile = &p
	})
}

// SignOut forgets the token and profile but keeps the API URL.
func (s *Session) SignOut() error {
	return s.update(EventSignedOut, func(st *State) {
		*st = State{APIURL: st.APIURL}
	})
}

func (s *Session) update(kind EventKind, mutate func(*State)) error {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	err := s.save()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, fn := range subs {
		fn(Event{Kind: kind, State: snapshot})
	}
	return nil
}

// save writes the state with owner-only permissions; it carries a bearer token.
func (s *Session) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := yaml.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
