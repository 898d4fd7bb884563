package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigs(t *testing.T, public, private []byte) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "public.yaml"), public, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "private.yaml"), private, 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMustLoad(t *testing.T) {
	public := []byte("addr: ':9090'\nbase_url: 'http://localhost:9090'\nmongo:\n  uri: 'mongodb://localhost:27017'\n  dbname: 'userauth'\ntoken_max_age_seconds: 60\n")
	private := []byte("jwt_key: 'jk'\nsecret_key: 'sk'\nsecurity_password_salt: 'salt'\n")
	dir := writeConfigs(t, public, private)

	cfg := MustLoad(dir)

	if cfg.Public.Addr != ":9090" {
		t.Errorf("addr: got %q", cfg.Public.Addr)
	}
	if cfg.Public.Mongo.Dbname != "userauth" {
		t.Errorf("dbname: got %q", cfg.Public.Mongo.Dbname)
	}
	if cfg.JwtKey() != "jk" || cfg.SecretKey() != "sk" || cfg.PasswordSalt() != "salt" {
		t.Error("private accessors returned wrong values")
	}
	if cfg.TokenMaxAge() != time.Minute {
		t.Errorf("token max age: got %s", cfg.TokenMaxAge())
	}
}

func TestMustLoad_Defaults(t *testing.T) {
	dir := writeConfigs(t, []byte("addr: ':8080'\n"), []byte("jwt_key: 'k'\n"))

	cfg := MustLoad(dir)

	if cfg.TokenMaxAge() != time.Hour {
		t.Errorf("default token max age: got %s", cfg.TokenMaxAge())
	}
	if cfg.SessionTTL() != 24*time.Hour {
		t.Errorf("default session ttl: got %s", cfg.SessionTTL())
	}
	if cfg.Public.LogLevel != "info" {
		t.Errorf("default log level: got %q", cfg.Public.LogLevel)
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	dir := t.TempDir() // no yaml files inside

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing config file, got none")
		}
	}()

	_ = MustLoad(dir)
}
