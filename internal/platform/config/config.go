package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del servicio.
// Se carga desde env vars y, opcionalmente, desde un archivo YAML
// (CONFIG_FILE). Los timeouts HTTP son configurables a propósito:
// es el único punto de cancelación que expone el sistema.
type Config struct {
	Port    string `mapstructure:"port"`
	AppName string `mapstructure:"app_name"`

	// DBDSN vacío => repos in-memory (modo dev / tests).
	DBDSN string `mapstructure:"db_dsn"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// JWTSecret vacío => sin verifier (modo dev con X-Debug-User-ID).
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("app_name", "zoo-care-service")
	v.SetDefault("db_dsn", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl", 24*time.Hour)
	v.SetDefault("read_timeout", 5*time.Second)
	v.SetDefault("write_timeout", 10*time.Second)
}

// Load lee la configuración. Orden de precedencia: env > archivo > defaults.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := strings.TrimSpace(v.GetString("config_file")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8080"
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	return cfg, nil
}

// Addr devuelve la dirección de escucha del servidor HTTP.
func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	return ":" + port
}
