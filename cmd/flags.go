package cmd

import (
	"fmt"

	"github.com/rpdata/rpscraper/lib"
	"github.com/rpdata/rpscraper/pkg/browser"
	"github.com/spf13/cobra"
)

var flagsHeadless bool
var flagsDownloadDir string
var flagsFormat string
var flagsShowPreferences bool

// flagsCmd represents the flags command
var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print the launch flags assembled for this environment without starting a browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := lib.ParseFormatType(flagsFormat)
		if err != nil {
			return err
		}
		settings, err := browser.SettingsFromConfig()
		if err != nil {
			return err
		}
		opts := browser.BuildOptions(browser.DetectEnvironment(), browser.Request{
			Headless:    flagsHeadless,
			DownloadDir: flagsDownloadDir,
		}, settings)

		out, err := lib.FormatOutput(opts.Flags, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)

		if flagsShowPreferences {
			prefs := make([]keyValue, 0, len(opts.Preferences))
			for _, k := range opts.PreferenceKeys() {
				prefs = append(prefs, keyValue{Key: k, Value: fmt.Sprint(opts.Preferences[k])})
			}
			out, err := lib.FormatOutput(prefs, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		if opts.HeadlessForced {
			fmt.Fprintln(cmd.ErrOrStderr(), "headless mode forced by container environment")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flagsCmd)
	flagsCmd.Flags().BoolVar(&flagsHeadless, "headless", true, "Request headless mode")
	flagsCmd.Flags().StringVarP(&flagsDownloadDir, "download-dir", "d", "", "Download directory")
	flagsCmd.Flags().StringVarP(&flagsFormat, "format", "f", "text", "Output format (pretty, text, json, yaml, table)")
	flagsCmd.Flags().BoolVarP(&flagsShowPreferences, "preferences", "p", false, "Also print browser preferences")
}
