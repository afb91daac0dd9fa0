package cmd

import (
	"fmt"

	"github.com/rpdata/rpscraper/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		file := viper.ConfigFileUsed()
		fmt.Fprintf(cmd.OutOrStdout(), "Using config file: %s\n", file)
		fmt.Fprintln(cmd.OutOrStdout(), "Current configuration:")
		output, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the browser settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := browser.SettingsFromConfig()
		if err != nil {
			log.Error().Err(err).Msg("Browser settings are invalid")
			return err
		}
		log.Info().
			Str("user_agent", settings.UserAgent).
			Int("window_width", settings.WindowWidth).
			Int("window_height", settings.WindowHeight).
			Dur("page_load_timeout", settings.PageLoadTimeout).
			Dur("script_timeout", settings.ScriptTimeout).
			Str("container_bin", settings.ContainerBin).
			Msg("Browser settings are valid")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
