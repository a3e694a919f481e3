package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/raybench/internal/variant"
)

// VariantsOptions holds flags for the variants command.
type VariantsOptions struct {
	*RootOptions
	ConfigFile string
	AVX512     string
}

// NewVariantsCommand creates the variants command.
func NewVariantsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VariantsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the build variants that would be compiled on this host",
		Long: `Enumerate the renderer build variants for the host capability set: the
supported SIMD extensions crossed with every data width.

Example:
  raybench variants
  raybench variants --avx512 on --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listVariants(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML harness config (defaults built in)")
	cmd.Flags().StringVar(&opts.AVX512, "avx512", "auto", "extended-width SIMD capability (auto|on|off)")

	return cmd
}

func listVariants(opts *VariantsOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	caps, err := resolveCapabilities(opts.AVX512)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --avx512 value", err)
	}

	variants := variant.Enumerate(cfg.HostTag, caps)

	lines := make([]string, 0, len(variants))
	for _, v := range variants {
		features := strings.Join(v.Features(), ", ")
		if features == "" {
			features = "(none)"
		}
		lines = append(lines, fmt.Sprintf("%s  features: %s", v.Prefix(), features))
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.SuccessText(lines, map[string]interface{}{
		"variants": variants,
		"avx512":   caps.AVX512,
	})
}
