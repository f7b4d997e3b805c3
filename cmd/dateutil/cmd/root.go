package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/msto63/mdw-dateutil/internal/dateutil/server"
	"github.com/msto63/mdw-dateutil/internal/dateutil/service"
	"github.com/msto63/mdw-dateutil/pkg/core/config"
	"github.com/msto63/mdw-dateutil/pkg/core/logging"
	"github.com/spf13/cobra"
)

// errReported marks failures whose message has already been printed
var errReported = errors.New("reported")

// options holds the global flags and the state derived from them
type options struct {
	cfgFile    string
	output     string
	utcParsing string
	remote     string
	verbose    bool

	cfg *config.Config
	out *printer
}

// backend evaluates operations locally or on a remote server
type backend interface {
	Invoke(ctx context.Context, op string, args ...string) (*service.Result, error)
	InvokeBatch(ctx context.Context, reqs []service.Request) ([]service.Response, error)
	ListOperations(ctx context.Context) ([]service.Operation, error)
	Close() error
}

type localBackend struct {
	svc *service.Service
}

func (b localBackend) Invoke(ctx context.Context, op string, args ...string) (*service.Result, error) {
	return b.svc.Invoke(ctx, op, args...)
}

func (b localBackend) InvokeBatch(ctx context.Context, reqs []service.Request) ([]service.Response, error) {
	return b.svc.InvokeBatch(ctx, reqs), nil
}

func (localBackend) ListOperations(context.Context) ([]service.Operation, error) {
	return service.Operations(), nil
}

func (localBackend) Close() error { return nil }

// NewRootCommand builds the dateutil command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "dateutil",
		Short: "Calendar arithmetic and UTC/JST conversion over canonical date strings",
		Long: `dateutil evaluates date operations on the canonical forms
YYYYMMDD, YYYYMMDD HHmmss and YYYYMMDD HHmmss.SSS.

Operations run in-process unless --remote names a running server.
Negative operands must follow "--", e.g.:

  dateutil add-days -- 20210101 -1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: $DATEUTIL_CONFIG, ./configs/dateutil.toml, ./dateutil.toml)")
	flags.StringVarP(&opts.output, "output", "o", "", "output format: text or json")
	flags.StringVar(&opts.utcParsing, "utc-parsing", "", "UTC/JST input parsing: strict or lenient")
	flags.StringVar(&opts.remote, "remote", "", "evaluate on the server at host:port")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	for _, op := range service.Operations() {
		root.AddCommand(newOperationCommand(opts, op))
	}
	root.AddCommand(
		newBatchCommand(opts),
		newOperationsCommand(opts),
		newServeCommand(opts),
		newVersionCommand(opts),
	)

	return root
}

// Execute runs the root command. Errors not yet shown are printed to stderr.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// load resolves the configuration and applies flag overrides
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(o.cfgFile)
	if err != nil {
		return err
	}

	if o.output != "" {
		cfg.Output.Format = o.output
	}
	if o.utcParsing != "" {
		cfg.DateUtil.UTCParsing = o.utcParsing
	}
	if o.verbose {
		cfg.General.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.out = newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output.Format == "json", cfg.Output.Color)
	return nil
}

// cliLogger logs to w at the configured level and format
func (o *options) cliLogger(w io.Writer) *logging.Logger {
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: "dateutil-cli",
		Level:       o.cfg.General.LogLevel,
		Format:      o.cfg.General.LogFormat,
		Output:      w,
	}), "dateutil-cli")
}

// serviceConfig builds the operation service settings from the loaded config
func (o *options) serviceConfig(logger *logging.Logger) (service.Config, error) {
	mode, err := o.cfg.UTCParsing()
	if err != nil {
		return service.Config{}, err
	}
	return service.Config{
		UTCParsing:     mode,
		DefaultPattern: o.cfg.DateUtil.DefaultPattern,
		Logger:         logger,
	}, nil
}

// backend returns the evaluator selected by --remote
func (o *options) backend(cmd *cobra.Command) (backend, error) {
	if o.remote != "" {
		return server.Dial(o.remote)
	}

	svcCfg, err := o.serviceConfig(o.cliLogger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	svc, err := service.NewService(svcCfg)
	if err != nil {
		return nil, err
	}
	return localBackend{svc: svc}, nil
}
