package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hoverkit/hoverkit/internal/output"
	"github.com/hoverkit/hoverkit/internal/scene"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay an interaction script against a scene",
	Long: `Load a scene file and execute a YAML list of interaction steps from stdin
(or --script). Steps run sequentially; time only moves via advance steps.

Example:
  hoverkit run --scene demo.yaml <<'EOF'
  - hover:   { target: save-btn }
  - advance: { ms: 300 }
  - assert:  { target: save-btn, open: true }
  - leave:   { target: save-btn, to: tooltip:save-btn }
  - advance: { ms: 100 }
  - assert:  { target: save-btn, open: true }
  EOF`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("scene", "", "Scene file to load (required)")
	runCmd.Flags().String("script", "", "Script file (default: read from stdin)")
	runCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
	runCmd.MarkFlagRequired("scene")
}

func runRun(cmd *cobra.Command, args []string) error {
	scenePath, _ := cmd.Flags().GetString("scene")
	scriptPath, _ := cmd.Flags().GetString("script")
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	s, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	var script []byte
	if scriptPath != "" {
		script, err = os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to read script file: %w", err)
		}
	} else {
		script, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	if len(script) == 0 {
		return fmt.Errorf("no steps provided — pipe a YAML list of actions or pass --script")
	}

	result := s.RunScript(script, stopOnError)
	if err := output.Print(result); err != nil {
		return err
	}
	if !result.OK {
		os.Exit(1)
	}
	return nil
}
