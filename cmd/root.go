package cmd

import "github.com/spf13/cobra"

type rootOptions struct {
	configPath string
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "todos",
		Short:         "Session-backed todo lists",
		Long:          "todos serves a small web application for keeping named todo lists in a browser session, and offers a console that drives the same lists from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $HOME/.config/todos/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(opts),
		newConsoleCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}
