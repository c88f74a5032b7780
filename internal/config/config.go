package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	PayPal   PayPalConfig
	Google   GoogleConfig
	Uploads  UploadsConfig
}

type ServerConfig struct {
	Port        string
	AppName     string   `mapstructure:"app_name"`
	BaseURL     string   `mapstructure:"base_url"` // used to materialize image URLs
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	TimeZone    string
	TablePrefix string `mapstructure:"table_prefix"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type PayPalConfig struct {
	Mode         string // "sandbox" or "live"
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
}

type UploadsConfig struct {
	Dir     string
	MaxSize int64 `mapstructure:"max_size"` // bytes
}

func LoadConfig() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", ":2000")
	viper.SetDefault("server.app_name", "landadmin")
	viper.SetDefault("server.base_url", "http://localhost:2000")
	viper.SetDefault("paypal.mode", "sandbox")
	viper.SetDefault("uploads.dir", "Uploads")
	viper.SetDefault("uploads.max_size", 5*1024*1024)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Error reading config file, %s", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
