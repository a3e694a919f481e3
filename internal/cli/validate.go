package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/raybench/internal/sceneconf"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	ConfigFile string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the config directory covers every configured scene size",
		Long: `Check that the config directory holds a parseable, schema-valid
scene/camera TOML pair for every scene size referenced by the sweeps.

Run this before a long sweep: a missing scene config would otherwise only
surface as renderer failures hours in.

Example:
  raybench validate
  raybench validate --config bench.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfigDir(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML harness config (defaults built in)")

	return cmd
}

func validateConfigDir(opts *ValidateOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	sizes := cfg.SceneSizes()
	problems, err := sceneconf.CheckDir(cfg.ConfigDir, sizes)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to check config directory", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if len(problems) > 0 {
		lines := make([]string, 0, len(problems))
		for _, p := range problems {
			lines = append(lines, p.String())
		}
		if err := formatter.SuccessText(lines, map[string]interface{}{
			"problems": problems,
			"valid":    false,
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d config problems found", len(problems)))
	}

	return formatter.SuccessText(
		[]string{fmt.Sprintf("config directory %s is complete for %d scene sizes", cfg.ConfigDir, len(sizes))},
		map[string]interface{}{"valid": true, "scene_sizes": sizes},
	)
}
