package config

// IdentityConfig contains identity source configuration.
type IdentityConfig struct {
	// InitData is the raw init-data string handed over by the embedding
	// host (url-encoded key/value form). Empty means the embedding
	// context supplied no identity.
	InitData string `env:"TG_INIT_DATA"`

	// Dev configures the development identity used when no init data is
	// present and dev mode is enabled. Mirrors the localhost mock user.
	Dev DevIdentityConfig
}

// DevIdentityConfig is the config-driven identity claim for local development.
type DevIdentityConfig struct {
	TelegramID int64  `env:"DEV_TELEGRAM_ID" envDefault:"123456789"`
	FirstName  string `env:"DEV_FIRST_NAME" envDefault:"Test User (Localhost)"`
	LastName   string `env:"DEV_LAST_NAME"`
	Username   string `env:"DEV_USERNAME"`
}

// FingerprintConfig contains device fingerprint configuration.
type FingerprintConfig struct {
	// Path overrides the install-id file location. Empty selects the
	// default under the user config directory.
	Path string `env:"DEVICE_ID_FILE"`
}
