package main

import (
	"github.com/spf13/cobra"
)

func newEmitCommand(ctx *commandContext) *cobra.Command {
	var fieldPairs []string

	cmd := &cobra.Command{
		Use:   "emit <label> <message>",
		Short: "Log one message at a named level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(fieldPairs)
			if err != nil {
				return err
			}

			l, err := ctx.buildLogger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			return l.Log(args[0], args[1], fields...)
		},
	}
	cmd.Flags().StringArrayVarP(&fieldPairs, "field", "f", nil, "Attach a key=value field (repeatable)")
	return cmd
}
