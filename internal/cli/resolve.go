package cli

import (
	"fmt"

	"github.com/ralt/cargo-arch/internal/generator/pacman"
	"github.com/ralt/cargo-arch/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewResolveCmd creates the command that prints the resolved PKGBUILD
// configuration without writing or building anything
func NewResolveCmd() *cobra.Command {
	var (
		opts   models.BuildOptions
		format string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved PKGBUILD configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pkgbuild" && format != "yaml" {
				return &models.CargoArchError{
					Type: models.ErrInvalidConfig,
					Err:  fmt.Errorf("unknown format %q (want pkgbuild or yaml)", format),
				}
			}

			cfg, err := loadConfig(cmd.Context(), pacman.NewGenerator(), &opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "pkgbuild" {
				_, err = fmt.Fprintln(out, cfg.Render())
				return err
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&opts.ManifestPath, "manifest-path", "", "Path to Cargo.toml (located with `cargo locate-project` if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "pkgbuild", "Output format: pkgbuild or yaml")

	return cmd
}
