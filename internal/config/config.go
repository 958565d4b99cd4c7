package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gatekeeper/internal/auth"
)

const (
	DriverLocal = "local"
	DriverSFTP  = "sftp"
)

type Config struct {
	BasicUser string
	BasicPass string
	Trusted   bool     // VERCEL=1, or GATEKEEPER_TRUSTED when set
	Matcher   []string // Paths the gate guards; from GATEKEEPER_MATCHER (comma-sep)
	Port      string

	SiteDriver    string
	SiteRoot      string
	FTPHost       string
	FTPPort       string
	FTPUsername   string
	FTPPassword   string
	FTPKnownHosts string // Optional path to known_hosts for SSH host key verification
}

func LoadConfig() *Config {
	trusted := os.Getenv("VERCEL") == "1"
	if s := os.Getenv("GATEKEEPER_TRUSTED"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			trusted = v
		}
	}
	matcher := []string{"/"}
	if s := os.Getenv("GATEKEEPER_MATCHER"); s != "" {
		matcher = splitList(s)
	}
	return &Config{
		BasicUser:     os.Getenv("BASIC_USER"),
		BasicPass:     os.Getenv("BASIC_PASS"),
		Trusted:       trusted,
		Matcher:       matcher,
		Port:          getenv("PORT", "5000"),
		SiteDriver:    getenv("SITE_DRIVER", DriverLocal),
		SiteRoot:      getenv("SITE_ROOT", "public"),
		FTPHost:       os.Getenv("FTP_HOST"),
		FTPPort:       getenv("FTP_PORT", "22"),
		FTPUsername:   os.Getenv("FTP_USERNAME"),
		FTPPassword:   os.Getenv("FTP_PASSWORD"),
		FTPKnownHosts: os.Getenv("FTP_KNOWN_HOSTS"),
	}
}

// Expected returns the credentials the gate accepts.
func (c *Config) Expected() auth.Expected {
	return auth.Expected{User: c.BasicUser, Password: c.BasicPass}
}

// Validate reports settings the server cannot start without. Missing basic
// auth credentials are allowed: the gate then denies every request.
func (c *Config) Validate() error {
	switch c.SiteDriver {
	case DriverLocal:
		if c.SiteRoot == "" {
			return errors.New("SITE_ROOT must be set for the local driver")
		}
	case DriverSFTP:
		if c.FTPHost == "" || c.FTPUsername == "" {
			return errors.New("FTP_HOST and FTP_USERNAME must be set for the sftp driver")
		}
	default:
		return fmt.Errorf("unknown SITE_DRIVER %q", c.SiteDriver)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
