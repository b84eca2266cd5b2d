package cmd

import (
	"fmt"
	"os"

	"github.com/hoverkit/hoverkit/internal/output"
	"github.com/hoverkit/hoverkit/internal/scene"
	"github.com/spf13/cobra"
)

// InspectResult is the YAML output of the inspect command.
type InspectResult struct {
	Scene    string               `yaml:"scene"              json:"scene"`
	Elements []scene.ElementNode  `yaml:"elements"           json:"elements"`
	Tooltips []scene.TooltipState `yaml:"tooltips"           json:"tooltips"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a scene's element tree and tooltip state",
	Long: `Load a scene file, optionally replay a script first, and print the element
tree together with the state of every tooltip attachment.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("scene", "", "Scene file to load (required)")
	inspectCmd.Flags().String("script", "", "Script file to replay before inspecting")
	inspectCmd.MarkFlagRequired("scene")
}

func runInspect(cmd *cobra.Command, args []string) error {
	scenePath, _ := cmd.Flags().GetString("scene")
	scriptPath, _ := cmd.Flags().GetString("script")

	s, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	if scriptPath != "" {
		script, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to read script file: %w", err)
		}
		if result := s.RunScript(script, true); result.Error != "" {
			return fmt.Errorf("script failed: %s", result.Error)
		}
	}

	return output.Print(InspectResult{
		Scene:    scenePath,
		Elements: s.Tree(),
		Tooltips: s.Snapshot(),
	})
}
