package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hangxie/spatialite-go/compress"
)

// Config holds the settings every command shares. Flags override it.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Encode  EncodeConfig  `mapstructure:"encode"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Limits  LimitsConfig  `mapstructure:"limits"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ArchiveConfig struct {
	Codec string `mapstructure:"codec"`
}

type EncodeConfig struct {
	Compress  bool `mapstructure:"compress"`
	BigEndian bool `mapstructure:"big_endian"`
}

type SQLiteConfig struct {
	Table  string `mapstructure:"table"`
	Column string `mapstructure:"column"`
}

type LimitsConfig struct {
	MaxDecompressedSize int64 `mapstructure:"max_decompressed_size"`
}

// LoadConfig reads splblob.yaml from path, or from the working directory
// and ~/.config/splblob when path is empty, then applies SPLBLOB_*
// environment variables. A missing default config file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("archive.codec", compress.Zstd.String())
	v.SetDefault("encode.compress", false)
	v.SetDefault("encode.big_endian", false)
	v.SetDefault("sqlite.table", "geometries")
	v.SetDefault("sqlite.column", "geom")
	v.SetDefault("limits.max_decompressed_size", compress.DefaultMaxDecompressedSize)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("splblob")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/splblob")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// SPLBLOB_ARCHIVE_CODEC -> archive.codec
	v.SetEnvPrefix("SPLBLOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if _, err := compress.ParseCodec(c.Archive.Codec); err != nil {
		errs = append(errs, fmt.Sprintf("archive.codec: %v", err))
	}
	if c.SQLite.Table == "" {
		errs = append(errs, "sqlite.table is required")
	}
	if c.SQLite.Column == "" {
		errs = append(errs, "sqlite.column is required")
	}
	if c.Limits.MaxDecompressedSize < 0 {
		errs = append(errs, fmt.Sprintf("limits.max_decompressed_size must not be negative, got %d", c.Limits.MaxDecompressedSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
