package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mailgrid/pkg/prefs"
)

func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
	}
	cmd.AddCommand(c.prefsListCommand())
	cmd.AddCommand(c.prefsGetCommand())
	cmd.AddCommand(c.prefsSetCommand())
	return cmd
}

func (c *CLI) prefsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.prefsStore()
			if err != nil {
				return err
			}
			all, err := store.All(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range prefs.Keys(all) {
				printKeyValue(k, all[k])
			}
			if fs, ok := store.(*prefs.FileStore); ok {
				printNewline()
				printDetail("File: %s", fs.Path())
			}
			return nil
		},
	}
}

func (c *CLI) prefsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.prefsStore()
			if err != nil {
				return err
			}
			v, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func (c *CLI) prefsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Change one preference",
		Example: `  mailgrid prefs set sidebar 1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.prefsStore()
			if err != nil {
				return err
			}
			if err := store.Set(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("preference saved", "key", args[0], "value", args[1])
			printSuccess("%s = %s", args[0], args[1])
			return nil
		},
	}
}
