package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"gatekeeper/internal/auth"
	"gatekeeper/internal/config"
	"gatekeeper/internal/driver/local"
	"gatekeeper/internal/driver/sftp"
	"gatekeeper/internal/web"
)

// Gatekeeper: static site behind a single HTTP Basic Auth credential
func main() {
	log.Println("Starting Gatekeeper...")

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env loaded: %v", err)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.BasicUser == "" || cfg.BasicPass == "" {
		log.Println("BASIC_USER/BASIC_PASS not set, every guarded request will be denied")
	}
	if !cfg.Trusted {
		log.Println("Untrusted environment, every guarded request will be denied")
	}

	var driver web.StorageDriver
	switch cfg.SiteDriver {
	case config.DriverSFTP:
		log.Printf("Connecting to SFTP: host=%s port=%s user=%s", cfg.FTPHost, cfg.FTPPort, cfg.FTPUsername)
		d, err := sftp.NewDriverWithConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to SFTP: %v", err)
		}
		defer d.Close()
		log.Println("SFTP connection established successfully")
		driver = d
	default:
		driver = local.NewDriver(cfg.SiteRoot)
	}
	log.Printf("Serving site from %s:%s", driver.Name(), cfg.SiteRoot)

	gate := auth.NewGate(cfg.Expected(), cfg.Trusted)
	handler := auth.Middleware(gate, auth.NewMatcher(cfg.Matcher...), web.NewSiteHandler(driver))

	log.Printf("Listening on :%s (guarding %v)", cfg.Port, cfg.Matcher)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
