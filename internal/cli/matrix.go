package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/raybench/internal/matrix"
)

// MatrixOptions holds flags for the matrix command.
type MatrixOptions struct {
	*RootOptions
	ConfigFile string
}

// NewMatrixCommand creates the matrix command.
func NewMatrixCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatrixOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "List the deduplicated test matrix without running anything",
		Long: `Expand the configured sweeps, deduplicate overlapping cases and list the
resulting matrix in its reproducible iteration order.

Example:
  raybench matrix
  raybench matrix --config bench.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMatrix(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML harness config (defaults built in)")

	return cmd
}

func listMatrix(opts *MatrixOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	set := matrix.Generator{Sweeps: cfg.Sweeps}.Produce()
	cases := set.Sorted()

	lines := make([]string, 0, len(cases)+1)
	for _, tc := range cases {
		lines = append(lines, tc.String())
	}
	lines = append(lines, fmt.Sprintf("%d cases (%d sweeps)", len(cases), len(cfg.Sweeps)))

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.SuccessText(lines, map[string]interface{}{
		"cases": cases,
		"count": len(cases),
	})
}
