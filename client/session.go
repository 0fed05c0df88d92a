package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
)

// Session is the logged in user, kept between runs
type Session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// SessionPath returns where the session file lives
func SessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "forum", "session.json"), nil
}

// LoadSession reads the session at path, a missing file
// returns an empty session
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, errors.Wrap(err, "error reading session")
	}

	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		return Session{}, errors.Wrap(err, "error unmarshalling session")
	}

	return session, nil
}

// Save writes the session at path
func (s Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "error creating session dir")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshalling session")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o600), "error writing session")
}

// ClearSession removes the session file
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error removing session")
	}
	return nil
}

// Apply makes c act as the session user
func (s Session) Apply(c *Client) {
	c.UserID = s.User.Id
	c.Token = s.Token
}

// Language is the preferred language of the user, "en" when unset
func (s Session) Language() string {
	if s.User.PreferredLanguage == "" {
		return "en"
	}
	return s.User.PreferredLanguage
}
