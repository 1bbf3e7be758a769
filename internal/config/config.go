// Package config defines process configuration and its loading order.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path"`

	// StaticDir serves the dashboard assets.
	StaticDir string `koanf:"static_dir"`

	// ResendKey enables real email delivery when set; empty means noop.
	ResendKey string `koanf:"resend_key"`

	// EmailFrom is the sender identity for outgoing mail.
	EmailFrom string `koanf:"email_from"`

	// EmailReplyTo is where prospect replies should land, usually the
	// mentor's own inbox.
	EmailReplyTo string `koanf:"email_reply_to"`

	// MentorName, MentorEmail and MentorBusiness seed the default mentor
	// on first start.
	MentorName     string `koanf:"mentor_name"`
	MentorEmail    string `koanf:"mentor_email"`
	MentorBusiness string `koanf:"mentor_business"`

	// OutboxIntervalSeconds is how often the delivery worker drains the
	// outbox.
	OutboxIntervalSeconds int `koanf:"outbox_interval_seconds"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8080",
		DBPath:                "hipat.db",
		StaticDir:             "static",
		EmailFrom:             "HiPat <noreply@hipat.app>",
		EmailReplyTo:          "",
		MentorName:            "Pat",
		MentorEmail:           "pat@hipat.app",
		MentorBusiness:        "",
		OutboxIntervalSeconds: 60,
	}
}
