package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func withTmpConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "flighttracker")
}

func Test_cfgDir_And_Paths(t *testing.T) {
	base := withTmpConfig(t)
	if got := cfgDir(); got != base {
		t.Fatalf("cfgDir=%q, want %q", got, base)
	}
	if !strings.HasPrefix(tokenPath(), base) || !strings.HasSuffix(tokenPath(), "token.json") {
		t.Fatalf("tokenPath unexpected: %s", tokenPath())
	}
	if !strings.HasPrefix(sharePath(), base) {
		t.Fatalf("sharePath unexpected: %s", sharePath())
	}
}

func Test_token_SaveLoad(t *testing.T) {
	_ = withTmpConfig(t)
	now := time.Now()

	if _, err := loadToken(now); !errors.Is(err, errLoginRequired) {
		t.Fatalf("want errLoginRequired when token file missing, got %v", err)
	}
	if err := saveToken(tokenFile{AccessToken: "tok", ExpiresAt: now.Add(time.Minute), UserID: "42"}); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	tf, err := loadToken(now)
	if err != nil || tf.AccessToken != "tok" || tf.UserID != "42" {
		t.Fatalf("loadToken: %+v err=%v", tf, err)
	}
	if _, err := loadToken(now.Add(2 * time.Minute)); !errors.Is(err, errLoginRequired) {
		t.Fatalf("want errLoginRequired for expired token, got %v", err)
	}

	st, err := os.Stat(tokenPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("token file mode %v", st.Mode().Perm())
	}
}

func Test_token_Corrupt(t *testing.T) {
	_ = withTmpConfig(t)
	_ = os.MkdirAll(cfgDir(), 0o700)
	_ = os.WriteFile(tokenPath(), []byte("{"), 0o600)
	if _, err := loadToken(time.Now()); err == nil || errors.Is(err, errLoginRequired) {
		t.Fatalf("corrupt file must surface a decode error, got %v", err)
	}
}

func Test_share_SaveLoadClear(t *testing.T) {
	_ = withTmpConfig(t)

	if tok, err := loadShare(); err != nil || tok != "" {
		t.Fatalf("no share expected: %q %v", tok, err)
	}
	if was, err := clearShare(); err != nil || was {
		t.Fatalf("clear without share: %v %v", was, err)
	}
	if err := saveShare("abc"); err != nil {
		t.Fatalf("saveShare: %v", err)
	}
	if tok, err := loadShare(); err != nil || tok != "abc" {
		t.Fatalf("loadShare: %q %v", tok, err)
	}
	if was, err := clearShare(); err != nil || !was {
		t.Fatalf("clearShare: %v %v", was, err)
	}
	if tok, _ := loadShare(); tok != "" {
		t.Fatalf("share survived clear: %q", tok)
	}
}
