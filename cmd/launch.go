package cmd

import (
	"context"
	"time"

	"github.com/rpdata/rpscraper/lib"
	"github.com/rpdata/rpscraper/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const smokeTestURL = "https://www.google.com"

var launchHeadless bool
var launchDownloadDir string
var launchWaitFor string
var launchTimeout time.Duration

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:   "launch [url...]",
	Short: "Launch a driver, load each URL and log its title",
	Long: `Launch a driver configured for the current environment, load each URL
and log its title. Without arguments a single smoke test page is loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		urls := args
		if len(urls) == 0 {
			urls = []string{smokeTestURL}
		}

		settings, err := browser.SettingsFromConfig()
		if err != nil {
			return err
		}
		factory := browser.NewFactory(settings)
		req := browser.Request{Headless: launchHeadless, DownloadDir: launchDownloadDir}

		var driver *browser.Driver
		if launchTimeout > 0 {
			driver, err = lib.DoWorkWithTimeout(func() (*browser.Driver, error) {
				return factory.Setup(req)
			}, launchTimeout, func(d *browser.Driver, _ error) {
				if d != nil {
					d.Close()
				}
			})
		} else {
			driver, err = factory.Setup(req)
		}
		if err != nil {
			log.Error().Err(err).Dur("timeout", launchTimeout).Msg("Could not launch browser")
			return err
		}
		stop := lib.SetupCloseHandler(func() { driver.Close() })
		defer stop()
		defer driver.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		minWait := viper.GetDuration("pacing.min_wait")
		maxWait := viper.GetDuration("pacing.max_wait")
		waitTimeout := viper.GetDuration("wait.timeout")

		failed := 0
		for i, u := range urls {
			if i > 0 {
				waited := lib.RandomWait(minWait, maxWait)
				log.Debug().Dur("waited", waited).Msg("Paced before next request")
			}
			if err := driver.Navigate(ctx, u); err != nil {
				log.Error().Err(err).Str("url", u).Msg("Test failed")
				failed++
				continue
			}
			if launchWaitFor != "" {
				err := browser.CreateWait(driver, waitTimeout).Until(ctx, browser.ElementPresent(launchWaitFor))
				if err != nil {
					log.Error().Err(err).Str("url", u).Str("selector", launchWaitFor).Msg("Test failed")
					failed++
					continue
				}
			}
			title, err := driver.Title(ctx)
			if err != nil {
				log.Error().Err(err).Str("url", u).Msg("Test failed")
				failed++
				continue
			}
			log.Info().Str("url", u).Str("title", title).Msg("Test successful")
		}
		if failed > 0 {
			log.Warn().Int("failed", failed).Int("total", len(urls)).Msg("Some pages could not be loaded")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().BoolVar(&launchHeadless, "headless", true, "Request headless mode (always on in containers)")
	launchCmd.Flags().StringVarP(&launchDownloadDir, "download-dir", "d", "", "Directory for browser downloads")
	launchCmd.Flags().StringVarP(&launchWaitFor, "wait-for", "w", "", "CSS selector that must be present before the title is read")
	launchCmd.Flags().DurationVar(&launchTimeout, "launch-timeout", 2*time.Minute, "Give up if the browser has not started within this time (0 waits forever)")
}
