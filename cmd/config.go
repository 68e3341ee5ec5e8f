package cmd

import (
	"fmt"

	"github.com/bnema/todos/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the configuration file",
	}

	configCmd.AddCommand(
		newConfigInitCmd(opts),
		newConfigShowCmd(opts),
	)

	return configCmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}

			if err := config.WriteFile(path, config.Default(), force); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	var showSecret bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.New(), opts.configPath)
			if err != nil {
				return err
			}
			if !showSecret {
				cfg = cfg.Redacted()
			}

			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&showSecret, "show-secret", false, "print session.secret instead of hiding it")
	return cmd
}

func configPath(opts *rootOptions) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}

	return config.DefaultPath()
}
