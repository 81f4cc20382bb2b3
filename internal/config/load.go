package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var home = os.Getenv("HOME")

func getViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("seating")
	// config file reading order: working directory, home directory, /etc/seating
	v.AddConfigPath(".")
	v.AddConfigPath(home + "/.seating")
	v.AddConfigPath("/etc/seating/")
	v.SetEnvPrefix("SEATING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.debug", false)
	v.SetDefault("files.students", "students.csv")
	v.SetDefault("files.timetable", "schedule.csv")
	v.SetDefault("files.rooms", "rooms.csv")
	v.SetDefault("files.names", "student_roll_map.csv")
	v.SetDefault("files.delimiter", ",")
	v.SetDefault("files.title_rows", 1)
	v.SetDefault("seating.buffer", 0)
	v.SetDefault("seating.sparse", false)
	v.SetDefault("output.dir", "attendance_sheets")
	v.SetDefault("output.export_file", "seating_arrangement_final.csv")
	v.SetDefault("output.upload_dir", "uploads")
	v.SetDefault("output.font", "")
	v.SetDefault("server.port", 5000)
	v.SetDefault("database.path", "seating.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "24h")
}

// Load reads the configuration. An explicit path must exist; otherwise the
// usual locations are searched and defaults apply when no file is found.
func Load(path string) (*Config, error) {
	v := getViper()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Seating.Buffer < 0 {
		return nil, fmt.Errorf("seating.buffer must not be negative, got %d", cfg.Seating.Buffer)
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}
