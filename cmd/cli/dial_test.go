package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func Test_bearerCreds_Metadata(t *testing.T) {
	t.Parallel()

	b := bearerCreds{token: "T", secure: true}
	md, err := b.GetRequestMetadata(context.Background())
	if err != nil {
		t.Fatalf("GetRequestMetadata: %v", err)
	}
	if md["authorization"] != "Bearer T" {
		t.Fatalf("auth header mismatch: %v", md)
	}
	if !b.RequireTransportSecurity() {
		t.Fatalf("bearerCreds over TLS must require transport security")
	}
	if (bearerCreds{token: "T"}).RequireTransportSecurity() {
		t.Fatalf("plaintext dev mode must not require transport security")
	}
}

func Test_shareCreds_Metadata(t *testing.T) {
	t.Parallel()

	md, err := shareCreds{token: "S"}.GetRequestMetadata(context.Background())
	if err != nil {
		t.Fatalf("GetRequestMetadata: %v", err)
	}
	if md[shareTokenHeader] != "S" || len(md) != 1 {
		t.Fatalf("share header mismatch: %v", md)
	}
}

func Test_transport_Credentials(t *testing.T) {
	t.Parallel()

	for name, tr := range map[string]transport{
		"plaintext": {plaintext: true},
		"insecure":  {insecure: true},
		"system":    {},
	} {
		creds, err := tr.credentials()
		if err != nil || creds == nil {
			t.Fatalf("%s: %v %v", name, creds, err)
		}
	}
	plain, _ := transport{plaintext: true}.credentials()
	if p := plain.Info().SecurityProtocol; p != "insecure" {
		t.Fatalf("plaintext protocol: %q", p)
	}

	tmp := filepath.Join(t.TempDir(), "bad.pem")
	_ = os.WriteFile(tmp, []byte("not pem"), 0o600)
	creds, err := transport{caPath: tmp}.credentials()
	if err == nil || creds != nil {
		t.Fatalf("bad CA should error, got creds=%v err=%v", creds, err)
	}
	if _, err := (transport{caPath: filepath.Join(t.TempDir(), "missing.pem")}).credentials(); err == nil {
		t.Fatalf("missing CA should error")
	}
}
