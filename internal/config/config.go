package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Config holds the settings of both commands. ServicePrincipal is the
// caller used for background calls that need the admin role, such as
// polling domain registrations; those stay off while it is empty.
type Config struct {
	ListenAddr             string
	BackendRPCURL          string
	AssetBaseURL           string
	IdentityHeader         string
	ServicePrincipal       string
	BnRegistrationURL      string
	BnRegistrationMock     bool
	PrizesRefreshInterval  time.Duration
	ExtractionPollInterval time.Duration
	DomainPollInterval     time.Duration
	CORSOrigins            []string
	SandboxListenAddr      string
	SandboxSelfPrincipal   string
	SandboxAdminPrincipal  string
	SandboxSeedDefaults    bool
}

func Default() Config {
	return Config{
		ListenAddr:             ":8080",
		BackendRPCURL:          "http://localhost:4943/rpc",
		AssetBaseURL:           "http://localhost:4943",
		IdentityHeader:         "X-Forwarded-Principal",
		BnRegistrationURL:      "https://icp0.io/registrations",
		PrizesRefreshInterval:  10 * time.Second,
		ExtractionPollInterval: 1500 * time.Millisecond,
		DomainPollInterval:     10 * time.Second,
		CORSOrigins:            []string{"http://localhost:5173"},
		SandboxListenAddr:      ":4943",
		SandboxSelfPrincipal:   "ss2fx-dyaaa-aaaar-qacoq-cai",
		SandboxSeedDefaults:    true,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("LISTEN_ADDR"); raw != "" {
		cfg.ListenAddr = raw
	}
	if raw := os.Getenv("BACKEND_RPC_URL"); raw != "" {
		cfg.BackendRPCURL = raw
	}
	if raw := os.Getenv("ASSET_BASE_URL"); raw != "" {
		cfg.AssetBaseURL = raw
	}
	if raw := os.Getenv("IDENTITY_HEADER"); raw != "" {
		cfg.IdentityHeader = raw
	}
	if raw := os.Getenv("SERVICE_PRINCIPAL"); raw != "" {
		cfg.ServicePrincipal = raw
	}
	if raw := os.Getenv("BN_REGISTRATION_URL"); raw != "" {
		cfg.BnRegistrationURL = raw
	}
	if raw := os.Getenv("BN_REGISTRATION_MOCK"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.BnRegistrationMock = value
		}
	}
	if raw := os.Getenv("PRIZES_REFRESH_INTERVAL"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.PrizesRefreshInterval = value
		}
	}
	if raw := os.Getenv("EXTRACTION_POLL_INTERVAL"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.ExtractionPollInterval = value
		}
	}
	if raw := os.Getenv("DOMAIN_POLL_INTERVAL"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.DomainPollInterval = value
		}
	}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
	if raw := os.Getenv("SANDBOX_LISTEN_ADDR"); raw != "" {
		cfg.SandboxListenAddr = raw
	}
	if raw := os.Getenv("SANDBOX_SELF_PRINCIPAL"); raw != "" {
		cfg.SandboxSelfPrincipal = raw
	}
	if raw := os.Getenv("SANDBOX_ADMIN_PRINCIPAL"); raw != "" {
		cfg.SandboxAdminPrincipal = raw
	}
	if raw := os.Getenv("SANDBOX_SEED_DEFAULTS"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.SandboxSeedDefaults = value
		}
	}
	return cfg
}
