package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host             string `mapstructure:"HOST"`
	Port             string `mapstructure:"PORT"`
	ServiceName      string `mapstructure:"SERVICE_NAME"`
	ServiceTitle     string `mapstructure:"SERVICE_TITLE"`
	ServiceVersion   string `mapstructure:"SERVICE_VERSION"`
	DefaultPageLimit int    `mapstructure:"DEFAULT_PAGE_LIMIT"`
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	GRPCPort         string `mapstructure:"GRPC_PORT"`
}

// Address is the host:port the HTTP listener binds to.
func (c *AppConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

func bindEnvVariables() {
	_ = viper.BindEnv("HOST")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("SERVICE_TITLE")
	_ = viper.BindEnv("SERVICE_VERSION")
	_ = viper.BindEnv("DEFAULT_PAGE_LIMIT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("GRPC_PORT")
}

func setDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("SERVICE_NAME", "sample-item-service")
	viper.SetDefault("SERVICE_TITLE", "Sample Item Service")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")
	viper.SetDefault("DEFAULT_PAGE_LIMIT", 10)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("GRPC_PORT", "")
}
