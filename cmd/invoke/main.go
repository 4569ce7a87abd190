// Command invoke calls functions and class methods of a demo registry with named arguments given on
// the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zhulik/invoker"
	"github.com/zhulik/invoker/pkg/resolvers"
)

type options struct {
	argsFile         string
	args             []string
	parallel         bool
	invocationMethod string
	verbose          bool
	list             bool
}

func newCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "invoke [callable]...",
		Short: "Call functions and methods with named arguments",
		Long: `Call functions and methods of the demo registry with named arguments.

A callable is a function name, a class name or a Class::method reference.
Arguments are given as name=value pairs, values are decoded as YAML.
Parameters of type time.Time, uuid.UUID and context.Context are resolved automatically.`,
		Example: `  invoke sum --arg numbers=[1,2,3]
  invoke greet --arg name=world
  invoke Counter::Add --arg delta=2
  invoke Job::Schedule --arg name=backup --arg delay=3600
  invoke sum greet --parallel --args args.yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, callables []string) error {
			return run(cmd, opts, callables)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.argsFile, "args", "f", "", "YAML file with named arguments")
	flags.StringArrayVarP(&opts.args, "arg", "a", nil, "named argument as name=value, may be repeated")
	flags.BoolVarP(&opts.parallel, "parallel", "p", false, "call all callables concurrently")
	flags.StringVar(&opts.invocationMethod, "invocation-method", "Invoke", "method called when a class is given")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log resolution details to stderr")
	flags.BoolVarP(&opts.list, "list", "l", false, "list registered functions and classes")

	return cmd
}

func run(cmd *cobra.Command, opts *options, callables []string) error {
	registry, err := demoRegistry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.list {
		for _, name := range registry.Functions() {
			fmt.Fprintf(out, "function %s\n", name)
		}
		for _, name := range registry.Classes() {
			fmt.Fprintf(out, "class %s\n", name)
		}
		return nil
	}

	if len(callables) == 0 {
		return errors.New("no callable given")
	}

	args, err := loadArgs(opts.argsFile, opts.args)
	if err != nil {
		return err
	}

	inv := invoker.New(registry).
		InvocationMethod(opts.invocationMethod).
		SetLogger(newLogger(cmd.ErrOrStderr(), opts.verbose))

	ctx := cmd.Context()

	chain := invoker.Chain(
		resolvers.Context(ctx),
		resolvers.Clock(time.Now()),
		resolvers.UUID(nil),
	)

	if !opts.parallel {
		for _, callable := range callables {
			result, err := inv.Call(ctx, callable, args, chain)
			if err != nil {
				return fmt.Errorf("%s: %w", callable, err)
			}

			printResult(out, callable, result, len(callables) > 1)
		}

		return nil
	}

	results := make([]any, len(callables))

	g, ctx := errgroup.WithContext(ctx)
	for i, callable := range callables {
		g.Go(func() error {
			result, err := inv.Call(ctx, callable, args, chain)
			if err != nil {
				return fmt.Errorf("%s: %w", callable, err)
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, callable := range callables {
		printResult(out, callable, results[i], len(callables) > 1)
	}

	return nil
}

func printResult(out io.Writer, callable string, result any, prefixed bool) {
	if prefixed {
		fmt.Fprintf(out, "%s: %v\n", callable, result)
		return
	}

	fmt.Fprintln(out, result)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
