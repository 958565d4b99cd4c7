package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/internal/auth"
	"gatekeeper/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BASIC_USER", "BASIC_PASS", "VERCEL", "GATEKEEPER_TRUSTED", "GATEKEEPER_MATCHER",
		"PORT", "SITE_DRIVER", "SITE_ROOT", "FTP_HOST", "FTP_PORT", "FTP_USERNAME",
		"FTP_PASSWORD", "FTP_KNOWN_HOSTS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg := config.LoadConfig()
	assert.False(t, cfg.Trusted)
	assert.Equal(t, []string{"/"}, cfg.Matcher)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, config.DriverLocal, cfg.SiteDriver)
	assert.Equal(t, "public", cfg.SiteRoot)
	assert.Equal(t, "22", cfg.FTPPort)
	assert.Equal(t, auth.Expected{}, cfg.Expected())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigTrusted(t *testing.T) {
	tests := []struct {
		vercel, override string
		want             bool
	}{
		{"1", "", true},
		{"0", "", false},
		{"true", "", false},
		{"", "true", true},
		{"1", "false", false},
		{"1", "not-a-bool", true},
	}
	for _, tc := range tests {
		clearEnv(t)
		t.Setenv("VERCEL", tc.vercel)
		t.Setenv("GATEKEEPER_TRUSTED", tc.override)

		assert.Equal(t, tc.want, config.LoadConfig().Trusted, "VERCEL=%q GATEKEEPER_TRUSTED=%q", tc.vercel, tc.override)
	}
}

func TestLoadConfigFromDotenv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "BASIC_USER=alice\nBASIC_PASS=s3:cret\nVERCEL=1\nGATEKEEPER_MATCHER=/, /docs/:path* ,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// godotenv.Load does not override variables that are already set, even
	// when empty, so apply the file explicitly.
	env, err := godotenv.Read(path)
	require.NoError(t, err)
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg := config.LoadConfig()
	assert.Equal(t, auth.Expected{User: "alice", Password: "s3:cret"}, cfg.Expected())
	assert.True(t, cfg.Trusted)
	assert.Equal(t, []string{"/", "/docs/:path*"}, cfg.Matcher)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{SiteDriver: config.DriverSFTP}
	assert.Error(t, cfg.Validate())

	cfg.FTPHost, cfg.FTPUsername = "storage.example.com", "u1"
	assert.NoError(t, cfg.Validate())

	cfg = &config.Config{SiteDriver: config.DriverLocal}
	assert.Error(t, cfg.Validate())

	cfg = &config.Config{SiteDriver: "s3"}
	assert.Error(t, cfg.Validate())
}
