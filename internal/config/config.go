package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Upstream employee service
	UpstreamBaseURL string        `yaml:"upstream_base_url"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	// HTTP server
	ServerAddr            string        `yaml:"server_addr"`
	ServerShutdownTimeout time.Duration `yaml:"server_shutdown_timeout"`
	CORSAllowedOrigins    []string      `yaml:"cors_allowed_origins"`
	LogMode               string        `yaml:"log_mode"`

	// Mock upstream
	MockUpstreamAddr string `yaml:"mock_upstream_addr"`
	MockUpstreamSeed int    `yaml:"mock_upstream_seed"`

	// SFTP
	SFTPHost                  string `yaml:"sftp_host"`
	SFTPPort                  int    `yaml:"sftp_port"`
	SFTPUser                  string `yaml:"sftp_user"`
	SFTPPass                  string `yaml:"sftp_pass"`
	SFTPDir                   string `yaml:"sftp_dir"`
	SFTPInsecureIgnoreHostKey bool   `yaml:"sftp_insecure_ignore_hostkey"`
	SFTPKnownHosts            string `yaml:"sftp_known_hosts"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		UpstreamBaseURL:           "http://localhost:8112/api/v1/employee",
		UpstreamTimeout:           30 * time.Second,
		ServerAddr:                ":8111",
		ServerShutdownTimeout:     10 * time.Second,
		CORSAllowedOrigins:        []string{"http://localhost:3000"},
		LogMode:                   "dev",
		MockUpstreamAddr:          ":8112",
		MockUpstreamSeed:          25,
		SFTPPort:                  22,
		SFTPDir:                   "/inbound",
		SFTPInsecureIgnoreHostKey: true,
	}
}

// Load reads .env (when present), the YAML file named by CONFIG_FILE and
// finally the environment.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
// Environment variables win over file values.
func LoadFile(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(c *Config) {
	c.UpstreamBaseURL = getenv("EMPLOYEE_API_BASE_URL", c.UpstreamBaseURL)
	c.UpstreamTimeout = getenvDuration("EMPLOYEE_API_TIMEOUT", c.UpstreamTimeout)

	c.ServerAddr = getenv("SERVER_ADDR", c.ServerAddr)
	c.ServerShutdownTimeout = getenvDuration("SERVER_SHUTDOWN_TIMEOUT", c.ServerShutdownTimeout)
	c.CORSAllowedOrigins = getenvList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.LogMode = getenv("LOG_MODE", c.LogMode)

	c.MockUpstreamAddr = getenv("MOCK_UPSTREAM_ADDR", c.MockUpstreamAddr)
	c.MockUpstreamSeed = getenvInt("MOCK_UPSTREAM_SEED", c.MockUpstreamSeed)

	c.SFTPHost = getenv("SFTP_HOST", c.SFTPHost)
	c.SFTPPort = getenvInt("SFTP_PORT", c.SFTPPort)
	c.SFTPUser = getenv("SFTP_USER", c.SFTPUser)
	c.SFTPPass = getenv("SFTP_PASS", c.SFTPPass)
	c.SFTPDir = getenv("SFTP_DIR", c.SFTPDir)
	c.SFTPInsecureIgnoreHostKey = getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", c.SFTPInsecureIgnoreHostKey)
	c.SFTPKnownHosts = getenv("SFTP_KNOWN_HOSTS", c.SFTPKnownHosts)
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.UpstreamBaseURL) == "" {
		errs = append(errs, errors.New("upstream base url is required"))
	}
	if c.UpstreamTimeout < 0 {
		errs = append(errs, errors.New("upstream timeout must not be negative"))
	}
	if c.SFTPPort <= 0 || c.SFTPPort > 65535 {
		errs = append(errs, fmt.Errorf("sftp port %d out of range", c.SFTPPort))
	}
	return errors.Join(errs...)
}

// SFTPEnabled reports whether enough is configured to attempt an upload.
func (c Config) SFTPEnabled() bool {
	return c.SFTPHost != "" && c.SFTPUser != ""
}

// KnownHostsPath returns SFTPKnownHosts or ~/.ssh/known_hosts when that exists.
func (c Config) KnownHostsPath() string {
	if c.SFTPKnownHosts != "" {
		return c.SFTPKnownHosts
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := home + "/.ssh/known_hosts"
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return p
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getenvDuration accepts Go durations ("30s") or a bare number of seconds.
func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func getenvList(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
