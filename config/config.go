package config

type Config struct {
	DiscordAuth DiscordAuth `yaml:"discord_auth" validate:"required"`
	APIs        APIs        `yaml:"apis" validate:"required"`
	Storage     Storage     `yaml:"storage" validate:"required"`
	Monitor     Monitor     `yaml:"monitor" validate:"required"`
	Ops         Ops         `yaml:"ops" validate:"required"`
}

type DiscordAuth struct {
	Token string `yaml:"token" comment:"Discord bot token. The DISCORD_TOKEN env var takes precedence" validate:"required"`
}

type APIs struct {
	GiphyKey   string `yaml:"giphy_key" comment:"Giphy API key. The GIPHY_AUTH env var takes precedence"`
	YoutubeKey string `yaml:"youtube_key" comment:"Youtube Data API key. The YOUTUBE_AUTH env var takes precedence"`
	SentryDSN  string `yaml:"sentry_dsn" comment:"Sentry DSN, error reporting is disabled when empty"`
}

type Storage struct {
	DataDir string `yaml:"data_dir" default:"/var/lib/saltbot" comment:"Directory holding poll and reminder entries" validate:"required"`
}

type Monitor struct {
	IntervalSeconds     int `yaml:"interval_seconds" default:"5" comment:"Seconds between expiry sweeps" validate:"required,min=1"`
	MaxDeliveryAttempts int `yaml:"max_delivery_attempts" default:"5" comment:"Delivery attempts before an expired entry is given up on and dropped" validate:"required,min=1"`
}

type Ops struct {
	BindAddr string `yaml:"bind_addr" default:":8081" comment:"Bind address of the ops HTTP server (healthz, readyz, metrics)" validate:"required"`
}
