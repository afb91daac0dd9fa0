package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func LoadConfig() {
	viper.SetConfigName("config")          // name of config file (without extension)
	viper.SetConfigType("yaml")            // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("/etc/rpscraper/") // path to look for the config file in
	viper.AddConfigPath(".")               // optionally look for config in the working directory

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("Config file not found, using defaults")
		} else {
			log.Panic().Err(err).Msg("Fatal error reading config file")
		}
	}
	SetDefaultConfig()
}

func SetDefaultConfig() {
	// Logging
	viper.SetDefault("logging.console.level", "info")
	viper.SetDefault("logging.console.format", "pretty") // if it's not pretty, just outputs json
	viper.SetDefault("logging.file.enabled", false)
	viper.SetDefault("logging.file.path", "rpscraper.log")

	// Browser
	viper.SetDefault("browser.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36")
	viper.SetDefault("browser.window.width", 1920)
	viper.SetDefault("browser.window.height", 1080)
	viper.SetDefault("browser.download_dir", "/tmp")
	viper.SetDefault("browser.timeouts.page_load", "120s")
	viper.SetDefault("browser.timeouts.script", "60s")
	viper.SetDefault("browser.timeouts.tcp_connect_ms", 30000)
	viper.SetDefault("browser.cloud.cache_size", 33554432)
	viper.SetDefault("browser.container.bin", "/usr/bin/chromium")
	viper.SetDefault("browser.container.log_level", 0)

	// Pacing
	viper.SetDefault("pacing.min_wait", "500ms")
	viper.SetDefault("pacing.max_wait", "2s")
	viper.SetDefault("wait.timeout", "10s")
}
