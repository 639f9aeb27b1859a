package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "lvlog",
		Short:         "Inspect and exercise lvlog level registries",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "", "Configuration file (.yaml, .yml or .toml)")
	flags.StringVarP(&ctx.level, "level", "l", "", "Threshold label or value, overrides the config")
	flags.StringArrayVar(&ctx.adds, "add", nil, "Register a level as label=value (repeatable)")
	flags.StringVar(&ctx.format, "format", "text", "Output format without --config: text or json")

	rootCmd.AddCommand(newLevelsCommand(ctx))
	rootCmd.AddCommand(newEmitCommand(ctx))
	return rootCmd
}
