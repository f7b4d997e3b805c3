package service

import (
	"context"
	"errors"
	"fmt"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	"github.com/msto63/mdw-dateutil/foundation/utils/datex"
	"github.com/msto63/mdw-dateutil/pkg/core/logging"
)

var (
	// ErrUnknownOperation is returned for operation names not in the registry
	ErrUnknownOperation = errors.New("service: unknown operation")

	// ErrArgumentCount is returned when an operation receives too few or too many arguments
	ErrArgumentCount = errors.New("service: wrong number of arguments")
)

// Result is the value of one successful operation
type Result struct {
	Operation string      `json:"operation"`
	Value     interface{} `json:"value"`
}

// Request is one entry of a batch
type Request struct {
	ID   string   `json:"id,omitempty" yaml:"id,omitempty"`
	Op   string   `json:"op" yaml:"op"`
	Args []string `json:"args" yaml:"args"`
}

// Response is the outcome of one batch request. Value is nil when Error is set.
type Response struct {
	ID        string      `json:"id,omitempty"`
	Operation string      `json:"operation"`
	Value     interface{} `json:"value"`
	Error     string      `json:"error,omitempty"`
	Code      string      `json:"code,omitempty"`
}

// Config holds service configuration
type Config struct {
	UTCParsing     datex.UTCParsing
	DefaultPattern string
	Logger         *logging.Logger
}

// Service evaluates date operations by name
type Service struct {
	converter      *datex.Converter
	defaultPattern string
	logger         *logging.Logger
}

// NewService creates a new dateutil service
func NewService(cfg Config) (*Service, error) {
	if _, err := datex.ParseUTCParsing(cfg.UTCParsing.String()); err != nil {
		return nil, mdwerror.Wrap(err, "invalid utc parsing mode").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("service.NewService")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("dateutil")
	}
	pattern := cfg.DefaultPattern
	if pattern == "" {
		pattern = datex.DefaultPattern
	}

	return &Service{
		converter:      datex.NewConverter(cfg.UTCParsing),
		defaultPattern: pattern,
		logger:         logger,
	}, nil
}

// UTCParsing returns the parsing mode of the UTC and JST operations
func (s *Service) UTCParsing() datex.UTCParsing {
	return s.converter.Mode()
}

// Invoke runs the named operation. Invalid input yields an error matching
// datex.ErrInvalidInput; unknown names match ErrUnknownOperation.
func (s *Service) Invoke(ctx context.Context, name string, args ...string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "invoke cancelled").
			WithCode(mdwerror.CodeTimeout).
			WithOperation(name)
	}

	op, ok := Lookup(name)
	if !ok {
		return nil, mdwerror.Wrap(ErrUnknownOperation, name).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("service.Invoke")
	}
	if len(args) < op.MinArgs() || len(args) > op.MaxArgs() {
		return nil, mdwerror.Wrap(ErrArgumentCount, fmt.Sprintf("%s expects %s", name, arity(op))).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("service.Invoke").
			WithDetail("got", len(args))
	}

	timer := s.logger.StartTimer(name).WithField("args", args)
	value, err := op.run(s, args)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	timer.Stop()

	return &Result{Operation: name, Value: value}, nil
}

// InvokeBatch evaluates every request independently. A failing request
// never stops the batch; its Response carries the error text and code.
func (s *Service) InvokeBatch(ctx context.Context, reqs []Request) []Response {
	out := make([]Response, len(reqs))
	for i, req := range reqs {
		out[i] = Response{ID: req.ID, Operation: req.Op}

		res, err := s.Invoke(ctx, req.Op, req.Args...)
		if err != nil {
			out[i].Error = err.Error()
			out[i].Code = string(mdwerror.GetCode(err))
			continue
		}
		out[i].Value = res.Value
	}

	s.logger.Debug("batch evaluated", "requests", len(reqs))
	return out
}

func arity(op Operation) string {
	if op.Optional == 0 {
		return fmt.Sprintf("%d argument(s)", op.MaxArgs())
	}
	return fmt.Sprintf("%d to %d arguments", op.MinArgs(), op.MaxArgs())
}

// IsInvalidInput reports whether err stems from invalid arguments
func IsInvalidInput(err error) bool {
	return errors.Is(err, datex.ErrInvalidInput) || errors.Is(err, ErrArgumentCount)
}

// IsUnknownOperation reports whether err names an operation that does not exist
func IsUnknownOperation(err error) bool {
	return errors.Is(err, ErrUnknownOperation)
}
