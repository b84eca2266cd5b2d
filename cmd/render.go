package cmd

import (
	"fmt"
	"os"

	"github.com/hoverkit/hoverkit/internal/render"
	"github.com/hoverkit/hoverkit/internal/scene"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a scene to a PNG image",
	Long: `Load a scene file, optionally replay a script first, and rasterize the
element tree with any visible tooltip overlays to a PNG file.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("scene", "", "Scene file to load (required)")
	renderCmd.Flags().String("script", "", "Script file to replay before rendering")
	renderCmd.Flags().StringP("out", "o", "scene.png", "Output PNG path")
	renderCmd.MarkFlagRequired("scene")
}

func runRender(cmd *cobra.Command, args []string) error {
	scenePath, _ := cmd.Flags().GetString("scene")
	scriptPath, _ := cmd.Flags().GetString("script")
	outPath, _ := cmd.Flags().GetString("out")

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

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := render.WritePNG(f, s); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
