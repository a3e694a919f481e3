package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/raybench/internal/sceneconf"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	JSONDir string
	TOMLDir string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert exported scene JSON configs to the renderer's TOML layout",
		Long: `Convert every scene_<N>_..._<objects|camera>.json file in the JSON
directory into config_toml/scene-<N>-<kind>.toml, validating each document
against the scene schema first.

Example:
  raybench convert
  raybench convert --json-dir exports --toml-dir config_toml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertConfigs(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.JSONDir, "json-dir", "config_json", "directory holding exported scene JSON files")
	cmd.Flags().StringVar(&opts.TOMLDir, "toml-dir", "config_toml", "destination directory for TOML configs")

	return cmd
}

func convertConfigs(opts *ConvertOptions, cmd *cobra.Command) error {
	log := setupLogging(opts.Verbose)

	converted, err := sceneconf.ConvertDir(opts.JSONDir, opts.TOMLDir, log)
	if err != nil {
		return WrapExitError(ExitFailure, "conversion failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"converted": converted,
			"count":     len(converted),
		})
	}
	return formatter.Success(fmt.Sprintf("converted %d scene config files to %s", len(converted), opts.TOMLDir))
}
