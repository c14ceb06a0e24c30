package config

import (
	"os"
	"path"
	"time"

	"github.com/okibe-dev/okibe/internal/domain"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Public carries settings that are safe to expose to clients.
// Durations are plain numbers in yaml, interpreted as seconds at the use site.
type Public struct {
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	LogJSON    bool   `yaml:"log_json"`

	// Bounded wait (milliseconds) on the per-board counter row lock.
	AllocationWaitMs int `yaml:"allocation_wait_ms"`

	DefaultPolicy    domain.PostingPolicy `yaml:"default_policy"`
	AllowedMimeTypes []string             `yaml:"allowed_mime_types"`
	ThumbWidth       int                  `yaml:"thumb_width"`
	ThumbQuality     int                  `yaml:"thumb_quality"`

	PostCooldown   time.Duration `yaml:"post_cooldown"` // seconds between posts per IP
	PostBurst      int           `yaml:"post_burst"`
	ReportCooldown time.Duration `yaml:"report_cooldown"` // seconds between reports per IP

	JwtTTL time.Duration `yaml:"jwt_ttl"` // seconds

	Media Media `yaml:"media"`
}

type Media struct {
	Backend string `yaml:"backend"` // "fs" or "s3"
	Root    string `yaml:"root"`    // fs backend: storage root directory
	S3      S3     `yaml:"s3"`
}

type S3 struct {
	Endpoint string `yaml:"endpoint"`
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	UseSSL   bool   `yaml:"use_ssl"`
}

type Private struct {
	Pg                Pg     `yaml:"pg"`
	JwtKey            string `yaml:"jwt_key"`
	StaffLogin        string `yaml:"staff_login"`
	StaffPasswordHash string `yaml:"staff_password_hash"` // bcrypt
	S3AccessKey       string `yaml:"s3_access_key"`
	S3SecretKey       string `yaml:"s3_secret_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
