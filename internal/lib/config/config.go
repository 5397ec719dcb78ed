package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env-default:"local"`
	HTTPServer HttpServer `yaml:"http_server" env-required:"true"`
	Gateway    Gateway    `yaml:"gateway"`
	Session    Session    `yaml:"session"`
	Auth       Auth       `yaml:"auth"`
	Sweep      Sweep      `yaml:"sweep"`
}

type HttpServer struct {
	Address      string        `yaml:"address" env-default:"localhost:8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Gateway configures the rendering-tier process and its internal calls
// to the API tier.
type Gateway struct {
	Address        string        `yaml:"address" env-default:"localhost:8081"`
	APIBaseURL     string        `yaml:"api_base_url" env-default:"http://localhost:8080"`
	ResolveTimeout time.Duration `yaml:"resolve_timeout" env-default:"3s"`
}

// Session configures the session cookie shared between the rendering and
// API tiers. The signing secret comes from the environment only.
type Session struct {
	CookieName   string        `yaml:"cookie_name" env-default:"teamgate_session"`
	CookieDomain string        `yaml:"cookie_domain" env-default:""`
	Secret       string        `env:"SESSION_COOKIE_SECRET" env-required:"true"`
	TTL          time.Duration `yaml:"ttl" env-default:"336h"`
}

type Auth struct {
	// Strategy selects the login flow at process start: "email-link" or "oauth".
	Strategy      string        `yaml:"strategy" env-default:"email-link"`
	LoginTokenTTL time.Duration `yaml:"login_token_ttl" env-default:"15m"`
	LoginLinkBase string        `yaml:"login_link_base" env-default:"http://localhost:8080/public/auth/email-login/callback"`
	OAuth         OAuth         `yaml:"oauth"`
}

type OAuth struct {
	ClientID     string   `env:"OAUTH_CLIENT_ID"`
	ClientSecret string   `env:"OAUTH_CLIENT_SECRET"`
	AuthURL      string   `yaml:"auth_url"`
	TokenURL     string   `yaml:"token_url"`
	UserInfoURL  string   `yaml:"user_info_url"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

// Sweep bounds the admin remove-old-data maintenance pass.
// A TeamRetention of zero disables cascade deletion of old teams.
type Sweep struct {
	InvitationRetention time.Duration `yaml:"invitation_retention" env-default:"720h"`
	TeamRetention       time.Duration `yaml:"team_retention" env-default:"0"`
}

// MustLoad panics if config can not be found.
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is required")
	}

	if _, err := os.Stat(configPath); err != nil {
		panic("config file does not exist:" + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath fetches config path from cmd flag or environment variable.
// flag > env > default.
// default = "".
func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "Path to the configuration file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
