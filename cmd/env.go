package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rpdata/rpscraper/lib"
	"github.com/rpdata/rpscraper/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var envFormat string

// envCmd represents the env command
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show how the current environment is classified",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := lib.ParseFormatType(envFormat)
		if err != nil {
			return err
		}
		env := browser.DetectEnvironment()
		if format == lib.Pretty {
			fmt.Fprintln(cmd.OutOrStdout(), prettyEnvironment(env))
			return nil
		}
		out, err := lib.FormatOutput(environmentRows(env), format)
		if err != nil {
			log.Error().Err(err).Msg("Could not format output")
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func prettyEnvironment(env browser.Environment) string {
	yesNo := func(b bool) string {
		if b {
			return color.GreenString("yes")
		}
		return color.RedString("no")
	}
	return fmt.Sprintf("Configuration: %s\n  Cloud:     %s\n  Container: %s\n  macOS:     %s",
		color.CyanString(env.Kind()), yesNo(env.Cloud), yesNo(env.Container), yesNo(env.MacOS))
}

func environmentRows(env browser.Environment) []keyValue {
	return []keyValue{
		{Key: "kind", Value: env.Kind()},
		{Key: "cloud", Value: fmt.Sprint(env.Cloud)},
		{Key: "container", Value: fmt.Sprint(env.Container)},
		{Key: "macos", Value: fmt.Sprint(env.MacOS)},
	}
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().StringVarP(&envFormat, "format", "f", "pretty", "Output format (pretty, text, json, yaml, table)")
}
