package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ---- config/token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
}

var errLoginRequired = errors.New("no valid token (run `ft login <user-id>`)")

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "flighttracker")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "flighttracker")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

// sharePath holds the share token of the guest session opened with `ft open`.
func sharePath() string { return filepath.Join(cfgDir(), "share_token") }

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func saveToken(tf tokenFile) error { return writeJSON(tokenPath(), tf) }

func loadToken(now time.Time) (tokenFile, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tokenFile{}, errLoginRequired
		}
		return tokenFile{}, err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return tokenFile{}, err
	}
	if tf.AccessToken == "" || now.After(tf.ExpiresAt) {
		return tokenFile{}, errLoginRequired
	}
	return tf, nil
}

func saveShare(token string) error {
	if err := os.MkdirAll(cfgDir(), 0o700); err != nil {
		return err
	}
	return os.WriteFile(sharePath(), []byte(token), 0o600)
}

// loadShare returns "" when no guest session is open.
func loadShare() (string, error) {
	b, err := os.ReadFile(sharePath())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// clearShare reports whether a guest session was open.
func clearShare() (bool, error) {
	err := os.Remove(sharePath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
