package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"atm-terminal/internal/domain"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Database struct {
		Path string
	}
	Admin struct {
		Login string
		Pin   string
	}
	Log struct {
		Level string
		File  string
	}
	Backup struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
		Keep      int
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from the working directory.
func Load() (Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads an optional .env and config file from dir, then ATM_* environment
// variables. Variables already set in the environment win over .env entries.
func LoadFrom(dir string) (Config, error) {
	if err := gotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("ATM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", "data/atm.db")
	v.SetDefault("admin.login", "admin")
	v.SetDefault("admin.pin", "00000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.keyprefix", "atm-backups")
	v.SetDefault("backup.region", "us-east-1")
	v.SetDefault("backup.endpoint", "")
	v.SetDefault("backup.keep", 5)
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the terminal cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	if strings.TrimSpace(c.Admin.Login) == "" || strings.ContainsAny(c.Admin.Login, " \t") {
		return fmt.Errorf("admin login must be a single non-empty word")
	}
	if !domain.ValidPin(c.Admin.Pin) {
		return fmt.Errorf("admin pin must be exactly %d digits", domain.PinLength)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("backup keep must not be negative")
	}
	return nil
}

// BackupEnabled reports whether a backup bucket is configured.
func (c Config) BackupEnabled() bool {
	return strings.TrimSpace(c.Backup.Bucket) != ""
}
