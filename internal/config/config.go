package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Symbol         string        `mapstructure:"SYMBOL"`
	InitialPrice   float64       `mapstructure:"INITIAL_PRICE"`
	InitialBalance float64       `mapstructure:"INITIAL_BALANCE"`
	Timeframe      string        `mapstructure:"TIMEFRAME"`
	TickInterval   time.Duration `mapstructure:"TICK_INTERVAL"`
	TapeInterval   time.Duration `mapstructure:"TAPE_INTERVAL"`
	Seed           int64         `mapstructure:"SEED"`
	NatsURL        string        `mapstructure:"NATS_URL"` // empty disables the mirror
}

func LoadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SYMBOL", "BTC-USDT")
	viper.SetDefault("INITIAL_PRICE", 67890.45)
	viper.SetDefault("INITIAL_BALANCE", 25000)
	viper.SetDefault("TIMEFRAME", "1H")
	viper.SetDefault("TICK_INTERVAL", "1s")
	viper.SetDefault("TAPE_INTERVAL", "10s")
	viper.SetDefault("SEED", 0)
	viper.SetDefault("NATS_URL", "")

	err = viper.ReadInConfig()
	// If config file not found, we can still use env vars
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	}

	if err != nil {
		return Config{}, err
	}
	err = viper.Unmarshal(&config)
	return
}
