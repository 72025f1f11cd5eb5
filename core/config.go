package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address        string
		Host           string
		DisableReqLogs bool
	}

	CatalogConfig struct {
		DataDir         string
		DefaultYear     int
		DefaultSemester int
	}

	LLMConfig struct {
		Provider string // google | openrouter
		Model    string
		APIKey   string
		BaseURL  string
		Timeout  time.Duration
	}

	EmailConfig struct {
		DefaultFrom    string
		SendgridAPIKey string
		Maintainers    []string
	}

	Config struct {
		Env             string
		Debug           bool
		TestMode        bool
		AppName         string
		Build           string
		WorkDir         string
		FrontendBaseURL string
		RollbarToken    string

		Server  ServerConfig
		Catalog CatalogConfig
		LLM     LLMConfig
		Email   EmailConfig
	}
)

// DefaultFromEmail parses the configured sender address.
// A malformed address falls back to the bare string as address.
func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.Email.DefaultFrom)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.Email.DefaultFrom}
	}
	return *addr
}

// MaintainerEmails returns the parsed maintainer addresses, skipping invalid ones.
func (c *Config) MaintainerEmails() []mail.Address {
	addrs := make([]mail.Address, 0, len(c.Email.Maintainers))
	for _, m := range c.Email.Maintainers {
		if addr, err := mail.ParseAddress(CleanString(m)); err == nil {
			addrs = append(addrs, *addr)
		}
	}
	return addrs
}

func setDefaults(v *viper.Viper, workDir string) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "LabHub")
	v.SetDefault("build", "dev")
	v.SetDefault("workDir", workDir)
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("catalog.dataDir", filepath.Join(workDir, "data"))
	v.SetDefault("catalog.defaultYear", 1)
	v.SetDefault("catalog.defaultSemester", 1)

	v.SetDefault("llm.provider", "google")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.baseURL", "")
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("email.defaultFrom", "noreply@localhost")
	v.SetDefault("email.sendgridAPIKey", "")
	v.SetDefault("email.maintainers", []string{})
}

// LoadConfig reads the configuration for the current ENV (DEV by default; TEST, QA, PROD).
// Values come from defaults, then config/.env.<env> (if it exists), then the environment,
// e.g. DEV_CATALOG_DATADIR=/srv/data overrides catalog.dataDir in DEV.
func LoadConfig() (*Config, error) {
	v := viper.New()
	workDir := Getwd()
	setDefaults(v, workDir)

	env := strings.ToUpper(CleanString(os.Getenv("ENV")))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, NewConfigError(errors.Wrapf(err, "loading %s", dotEnvPath))
		}
	} else if !os.IsNotExist(err) {
		return nil, NewConfigError(errors.Wrapf(err, "stat %s", dotEnvPath))
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, NewConfigError(errors.Wrap(err, "unmarshalling config"))
	}
	// comma separated lists from the environment
	if len(conf.Email.Maintainers) == 1 && strings.Contains(conf.Email.Maintainers[0], ",") {
		conf.Email.Maintainers = strings.Split(conf.Email.Maintainers[0], ",")
	}
	return conf, nil
}

// NewTestConfig returns a Config suitable for tests; nothing is read from disk or the environment.
func NewTestConfig() *Config {
	return &Config{
		Env:             "TEST",
		Debug:           false,
		TestMode:        true,
		AppName:         "LabHub",
		Build:           "test",
		FrontendBaseURL: "http://localhost:3000",
		Server:          ServerConfig{Host: "localhost", DisableReqLogs: true},
		Catalog:         CatalogConfig{DefaultYear: 1, DefaultSemester: 1},
		LLM:             LLMConfig{Provider: "google", Timeout: 5 * time.Second},
		Email: EmailConfig{
			DefaultFrom: "LabHub <noreply@localhost>",
			Maintainers: []string{"maintainer@labhub.test"},
		},
	}
}
