package main

import (
	"fmt"
	"time"

	"github.com/hupe1980/qconnect/catalog"
	"github.com/hupe1980/qconnect/client"
	"github.com/hupe1980/qconnect/core"
	"github.com/hupe1980/qconnect/internal/config"
	"github.com/hupe1980/qconnect/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands of one execution.
type app struct {
	configPath  string
	region      string
	endpointURL string
	output      string
	timeout     time.Duration
	verbose     bool

	registry *catalog.Registry
	cfg      *config.Config
	logger   *zap.Logger

	// invoker is built from the configuration unless preset (tests).
	invoker core.Invoker
}

func newApp() *app {
	return &app{registry: catalog.Default()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "qconnect",
		Short: "Command line adapter for the Amazon Q in Connect API",
		Long: `qconnect binds command line parameters to Amazon Q in Connect operations,
asks for confirmation before mutating calls, invokes the service and prints
the selected part of the response.

Every operation is a subcommand; run "qconnect operations" to list them.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath(), "Path to the configuration file")
	pf.StringVar(&a.region, "region", "", "Service region (overrides config and environment)")
	pf.StringVar(&a.endpointURL, "endpoint-url", "", "Override the service endpoint URL")
	pf.StringVarP(&a.output, "output", "o", "", "Output format: json, yaml or text")
	pf.DurationVar(&a.timeout, "timeout", 0, "Per-call timeout (e.g. 30s)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newOperationsCmd(a), newDescribeCmd(a), newVersionCmd())

	for _, op := range a.registry.List() {
		root.AddCommand(newOperationCmd(a, op))
	}

	return root
}

// setup loads configuration, applies flag overrides and builds the logger
// and transport.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("region") {
		cfg.Region = a.region
	}
	if flags.Changed("endpoint-url") {
		cfg.EndpointURL = a.endpointURL
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout.String()
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	if a.logger == nil {
		if a.logger, err = logging.NewZapLogger(cfg.LogLevel()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	if a.invoker == nil {
		a.invoker = client.NewHTTPClient(func(o *client.Options) {
			o.Region = cfg.Region
			o.Endpoint = cfg.EndpointURL
			o.Headers = cfg.Headers
			o.HTTPClient = client.NewDefaultHTTPClient(cfg.GetTimeout())
			o.Logger = logging.NewZapAdapter(a.logger)
		})
	}

	return nil
}
