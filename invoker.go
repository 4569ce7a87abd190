package invoker

import (
	"context"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zhulik/invoker/internal/call"
)

const tracerName = "github.com/zhulik/invoker"

// Invoker calls callables matching their parameters against named arguments, resolvers and defaults.
// It holds no per-call state and is safe for concurrent use once configured.
type Invoker struct {
	config   *Config
	registry *Registry

	logger *slog.Logger
	tracer trace.Tracer
}

// New creates an Invoker looking up functions and classes in registry. A nil registry means an empty one.
func New(registry *Registry) *Invoker {
	if registry == nil {
		registry = NewRegistry()
	}

	return &Invoker{
		config:   &Config{InvocationMethod: defaultInvocationMethod},
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
	}
}

// InvocationMethod sets the name of the method called when a class or an instance is given as a callable.
func (i *Invoker) InvocationMethod(name string) *Invoker {
	i.config.InvocationMethod = name
	return i
}

// SetLogger sets the logger instance to be used by the Invoker. A nil logger disables logging.
func (i *Invoker) SetLogger(logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	i.logger = logger.With("component", "invoker")
	return i
}

// SetTracer sets the tracer used to trace calls. The global tracer provider is used by default.
func (i *Invoker) SetTracer(tracer trace.Tracer) *Invoker {
	i.tracer = tracer
	return i
}

// Registry returns the registry the Invoker looks functions and classes up in.
func (i *Invoker) Registry() *Registry {
	return i.registry
}

// Validate validates the configuration of the Invoker.
func (i *Invoker) Validate(ctx context.Context) error {
	return i.config.Validate(ctx)
}

// Prepared is a callable with resolved arguments, ready to be called.
type Prepared struct {
	Callable Callable
	Params   Parameters
	Args     []any

	handle reflect.Value
}

// Call calls the prepared callable. If the callable returns an error as its last result, it is returned
// unmodified, other results are returned as nil, a single value or []any.
func (p *Prepared) Call() (any, error) {
	return call.Func(p.handle, p.Args)
}

// Prepare normalizes callable, resolves its arguments and binds it without calling it.
// See Call for the meaning of the arguments.
func (i *Invoker) Prepare(ctx context.Context, callable any, args map[string]any, resolver Resolver) (*Prepared, error) {
	if err := i.Validate(ctx); err != nil {
		return nil, err
	}

	ref, err := i.registry.Ref(callable)
	if err != nil {
		i.logger.WarnContext(ctx, "Invalid callable", "error", err)
		return nil, err
	}

	logger := i.logger.With("callable", ref.String())

	t, err := i.normalize(ref, nil, resolver)
	if err != nil {
		logger.WarnContext(ctx, "Normalization failed", "error", err)
		return nil, err
	}

	logger.DebugContext(ctx, "Callable normalized", "parameters", t.params.String())

	values, err := Resolve(t.params, args, resolver)
	if err != nil {
		logger.WarnContext(ctx, "Resolution failed", "error", err)
		return nil, err
	}

	handle, err := t.bind()
	if err != nil {
		logger.WarnContext(ctx, "Binding failed", "error", err)
		return nil, err
	}

	return &Prepared{
		Callable: ref,
		Params:   t.params,
		Args:     values,
		handle:   handle,
	}, nil
}

// Call invokes callable. callable may be any form accepted by Registry.Ref. args maps parameter names
// to values, a value for a variadic parameter must be a slice of its elements. resolver may be nil,
// then only explicit arguments and defaults are used.
// Returns whatever the callable returns, see Prepared.Call.
func (i *Invoker) Call(ctx context.Context, callable any, args map[string]any, resolver Resolver) (any, error) {
	ctx, span := i.tracer.Start(ctx, "invoker.Call")
	defer span.End()

	prepared, err := i.Prepare(ctx, callable, args, resolver)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("invoker.callable", prepared.Callable.String()),
		attribute.Int("invoker.parameters", len(prepared.Params)),
		attribute.Int("invoker.arguments", len(prepared.Args)),
	)

	result, err := prepared.Call()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	return result, nil
}
