package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/qconnect/adapter"
	"github.com/hupe1980/qconnect/core"
	"github.com/hupe1980/qconnect/internal/util"
	"github.com/hupe1980/qconnect/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// operationFlags are the flags every operation command carries in addition
// to its parameters.
type operationFlags struct {
	selector string
	passThru bool
	force    bool
	whatIf   bool
}

// newOperationCmd derives a subcommand from an operation descriptor. Each
// parameter becomes a kebab-case flag; the pipeline parameter may also be
// given as the single positional argument.
func newOperationCmd(a *app, op *core.Operation) *cobra.Command {
	var of operationFlags

	use := op.Command
	if f, ok := op.PipelineField(); ok {
		use += " [" + util.KebabCase(f.Name) + "]"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: op.Description,
		Long:  operationHelp(op),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd, op, of, args)
		},
	}

	fs := cmd.Flags()
	for _, f := range op.AllFields() {
		addFieldFlag(fs, f)
	}

	fs.StringVar(&of.selector, "select", "", `Output selector: "*", a response field or "^ParameterName"`)
	if op.PassThroughField != "" {
		fs.BoolVar(&of.passThru, "pass-thru", false, "Print the "+op.PassThroughField+" parameter instead of the response (deprecated, use --select ^"+op.PassThroughField+")")
	}
	if op.Mutating {
		fs.BoolVarP(&of.force, "force", "f", false, "Do not ask for confirmation")
		fs.BoolVar(&of.whatIf, "what-if", false, "Show what would happen without calling the service")
	}

	return cmd
}

func addFieldFlag(fs *pflag.FlagSet, f core.Field) {
	name := util.KebabCase(f.Name)
	usage := f.Description
	if len(f.Enum) > 0 {
		usage += " (" + strings.Join(f.Enum, "|") + ")"
	}
	if f.Required && f.Default == nil && !f.Idempotency {
		usage += " [required]"
	}

	switch f.Type {
	case core.TypeInteger:
		fs.Int64(name, 0, usage)
	case core.TypeBoolean:
		fs.Bool(name, false, usage)
	case core.TypeMap:
		fs.StringToString(name, nil, usage+" (key=value,...)")
	case core.TypeList:
		fs.StringArray(name, nil, usage+" (repeatable; JSON objects allowed)")
	case core.TypeRecord:
		fs.String(name, "", usage+" (JSON object)")
	default:
		fs.String(name, "", usage)
	}
}

// collectParams returns the parameters whose flags were set on the command
// line, plus the positional pipeline value.
func collectParams(fs *pflag.FlagSet, op *core.Operation, args []string) (map[string]any, error) {
	params := map[string]any{}

	for _, f := range op.AllFields() {
		name := util.KebabCase(f.Name)
		if !fs.Changed(name) {
			continue
		}
		v, err := flagValue(fs, f, name)
		if err != nil {
			return nil, err
		}
		params[f.Name] = v
	}

	if len(args) == 1 {
		f, ok := op.PipelineField()
		if !ok {
			return nil, fmt.Errorf("%s does not accept positional arguments", op.Command)
		}
		if _, set := params[f.Name]; set {
			return nil, fmt.Errorf("%s given both positionally and as --%s", f.Name, util.KebabCase(f.Name))
		}
		params[f.Name] = args[0]
	}

	return params, nil
}

func flagValue(fs *pflag.FlagSet, f core.Field, name string) (any, error) {
	switch f.Type {
	case core.TypeInteger:
		return fs.GetInt64(name)
	case core.TypeBoolean:
		return fs.GetBool(name)
	case core.TypeMap:
		return fs.GetStringToString(name)
	case core.TypeList:
		items, err := fs.GetStringArray(name)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			if !strings.HasPrefix(strings.TrimSpace(item), "{") {
				out = append(out, item)
				continue
			}
			var rec map[string]any
			if err := json.Unmarshal([]byte(item), &rec); err != nil {
				return nil, fmt.Errorf("--%s: invalid JSON object %q: %w", name, item, err)
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return fs.GetString(name)
	}
}

func (a *app) runOperation(cmd *cobra.Command, op *core.Operation, of operationFlags, args []string) error {
	params, err := collectParams(cmd.Flags(), op, args)
	if err != nil {
		return err
	}

	ad := adapter.New(op, a.invoker, func(o *adapter.Options) {
		o.Logger = logging.NewZapAdapter(a.logger)
		o.Confirmer = adapter.NewPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d := a.cfg.GetTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	res, err := ad.Run(ctx, adapter.Input{
		Params:   params,
		Select:   of.selector,
		PassThru: of.passThru,
		Force:    of.force,
		WhatIf:   of.whatIf,
	})
	if err != nil {
		return err
	}

	if res.Skipped {
		p := adapter.Prompt{Operation: op.Name, Target: res.Target}
		if of.whatIf {
			fmt.Fprintf(cmd.ErrOrStderr(), "What if: %s\n", p)
		}
		return nil
	}

	return render(cmd.OutOrStdout(), a.cfg.Output, res.Value)
}

func operationHelp(op *core.Operation) string {
	var b strings.Builder
	b.WriteString(op.Description)
	b.WriteString(".\n\n")
	fmt.Fprintf(&b, "Operation: %s (%s %s)\n", op.Name, op.Method, op.Path)
	if op.Mutating {
		b.WriteString("This operation changes state and asks for confirmation unless --force is given.\n")
	}
	if len(op.Outputs) > 0 {
		names := make([]string, len(op.Outputs))
		for i, o := range op.Outputs {
			names[i] = o.Name
		}
		fmt.Fprintf(&b, "Response fields: %s (default selector: %s)\n", strings.Join(names, ", "), op.DefaultSelect)
	}
	return b.String()
}
