package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/hupe1980/qconnect/internal/util"
	"github.com/spf13/cobra"
)

func newOperationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops := a.registry.List()

			if a.cfg.Output != "text" {
				rows := make([]any, 0, len(ops))
				for _, op := range ops {
					rows = append(rows, map[string]any{
						"name":        op.Name,
						"command":     op.Command,
						"mutating":    op.Mutating,
						"description": op.Description,
					})
				}
				return render(cmd.OutOrStdout(), a.cfg.Output, rows)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCOMMAND\tMUTATING\tDESCRIPTION")
			for _, op := range ops {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", op.Name, op.Command, op.Mutating, op.Description)
			}
			return tw.Flush()
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <operation>",
		Short: "Print the parameter schema of an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			format := a.cfg.Output
			if format == "text" {
				format = "yaml"
			}
			return render(cmd.OutOrStdout(), format, util.OperationSchema(op))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "qconnect %s\n", version)
			return err
		},
	}
}
