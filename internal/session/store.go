package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/peopleops/hrctl/internal/routes"
)

// Sentinel errors
var (
	// ErrNoSession is returned when no session record is stored.
	ErrNoSession = errors.New("no session")
)

const sessionFile = "session.json"

// User is the profile snapshot persisted alongside the token.
type User struct {
	ID                int64       `json:"id"`
	Email             string      `json:"email"`
	Role              routes.Role `json:"role"`
	FirstName         string      `json:"firstName"`
	LastName          string      `json:"lastName"`
	ProfilePictureURL string      `json:"profilePictureUrl,omitempty"`
	DepartmentID      int64       `json:"departmentId,omitempty"`
	Position          string      `json:"position,omitempty"`
}

// Record is the persisted credential record. It exists in storage iff the
// client considers itself authenticated; it is never stored partially.
type Record struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// valid reports whether the record holds both halves of the session.
func (r *Record) valid() bool {
	return r.Token != "" && r.User.Email != ""
}

// Store persists the session record on the local filesystem.
type Store struct {
	baseDir string
}

// NewStore creates a session store rooted at baseDir.
// If baseDir is empty, uses ~/.hrctl/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".hrctl")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session store initialized")

	return &Store{baseDir: baseDir}, nil
}

// Save overwrites the persisted record as a single atomic write.
func (s *Store) Save(rec *Record) error {
	if rec == nil || !rec.valid() {
		return errors.New("refusing to persist a partial session record")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(s.baseDir, sessionFile)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session: %w", err)
	}

	log.Debug().Str("email", rec.User.Email).Str("role", string(rec.User.Role)).Msg("session saved")

	return nil
}

// Read returns the persisted record, or ErrNoSession when absent. A stored
// payload that cannot be parsed, or that holds only half of the record, is
// purged as a side effect and reported as absent.
func (s *Store) Read() (*Record, error) {
	path := filepath.Join(s.baseDir, sessionFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Warn().Err(err).Msg("stored session is corrupt, purging")
		s.purge()
		return nil, ErrNoSession
	}

	if !rec.valid() {
		log.Warn().Msg("stored session is incomplete, purging")
		s.purge()
		return nil, ErrNoSession
	}

	return &rec, nil
}

// Clear removes the persisted record. Clearing an empty store is not an
// error.
func (s *Store) Clear() error {
	path := filepath.Join(s.baseDir, sessionFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	log.Debug().Msg("session cleared")

	return nil
}

func (s *Store) purge() {
	if err := s.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to purge corrupt session")
	}
}
