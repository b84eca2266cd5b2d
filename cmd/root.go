package cmd

import (
	"fmt"
	"os"

	"github.com/hoverkit/hoverkit/internal/output"
	"github.com/hoverkit/hoverkit/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hoverkit",
	Short: "Drive and inspect tooltip overlay behavior on a headless UI scene",
	Long: `hoverkit loads a YAML scene of UI elements with tooltip attachments and
replays interaction scripts (hover, focus, click, virtual-time advances)
against it, printing the resulting tooltip state. Delays run on a virtual
clock, so runs are deterministic and instant.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unknown format %q (expected yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}
