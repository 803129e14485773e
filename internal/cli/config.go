package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check a config file",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configValidateCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var format string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default config (stdout without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if format == "" {
					format = config.FormatTOML
				}
				return config.Write(cmd.OutOrStdout(), config.Default(), format)
			}
			return writeDefaultConfig(args[0], format, force)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "toml or yaml (default from the file extension)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// writeDefaultConfig writes the defaults to path. Existing files are kept
// unless force is set.
func writeDefaultConfig(path, format string, force bool) error {
	if format == "" {
		format = config.FormatFor(path)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if os.IsExist(err) {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := config.Write(f, config.Default(), format); err != nil {
		return err
	}
	printSuccess("Wrote %s", path)
	return nil
}

// configValidateCommand creates the "config validate" subcommand.
func (c *CLI) configValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("config hash %s", cfg.Hash()[:12])
			return nil
		},
	}
}
