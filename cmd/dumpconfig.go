package cmd

import (
	"github.com/rpdata/rpscraper/internal/config"

	"github.com/rs/zerolog/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dumpconfigPath string

// dumpconfigCmd represents the dumpconfig command
var dumpconfigCmd = &cobra.Command{
	Use:   "dumpconfig",
	Short: "Dumps default configuration file",
	Long:  `Dumps the default configuration, including browser launch settings, to a yaml file`,
	Run: func(cmd *cobra.Command, args []string) {
		config.SetDefaultConfig()
		err := viper.SafeWriteConfigAs(dumpconfigPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", dumpconfigPath).Msg("Could not write config file")
		}
		log.Info().Str("path", dumpconfigPath).Msg("Config file written")
	},
}

func init() {
	rootCmd.AddCommand(dumpconfigCmd)
	dumpconfigCmd.Flags().StringVarP(&dumpconfigPath, "output", "o", "config.yml", "Where to write the configuration")
}
