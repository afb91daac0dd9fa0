package cmd

import (
	"fmt"
	"os"

	"github.com/rpdata/rpscraper/lib"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var debugLogging bool
var prettyLogs bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rpscraper",
	Short: "Launch and inspect the Chrome driver used by the scraper",
	Long: `rpscraper configures a Chromium instance for scraping in containers,
cloud app services and desktops.

It detects the runtime environment, assembles launch flags and preferences
for it, and starts the browser.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rpscraper.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Use debug level logging")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", true, "Use pretty logging instead JSON")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		opts := lib.LogOptions{
			Level:  viper.GetString("logging.console.level"),
			Pretty: prettyLogs && viper.GetString("logging.console.format") == "pretty",
		}
		if debugLogging {
			opts.Level = "debug"
		}
		if viper.GetBool("logging.file.enabled") {
			opts.File = viper.GetString("logging.file.path")
		}
		if err := lib.SetupLogging(opts); err != nil {
			log.Error().Err(err).Str("file", opts.File).Msg("Error setting up log file")
		}
		return nil
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".rpscraper" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".rpscraper")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
