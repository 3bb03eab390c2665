// Command hackq answers multiple-choice trivia questions from web
// evidence, either once from flags or as an HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahrav/go-hackq/internal/application"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/server"
)

type options struct {
	configPath string
	envPath    string
	question   string
	choices    string
	serve      bool
	logLevel   string
	logFormat  string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("hackq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file (defaults when empty)")
	fs.StringVar(&opts.envPath, "env", ".env", "dotenv file with secrets, ignored when missing")
	fs.StringVar(&opts.question, "q", "", "question to answer once")
	fs.StringVar(&opts.choices, "choices", "", "answer choices separated by |")
	fs.BoolVar(&opts.serve, "serve", false, "serve the HTTP answer API")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if !opts.serve && (opts.question == "" || opts.choices == "") {
		return options{}, errors.New("either -serve or both -q and -choices are required")
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "hackq:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if err := application.LoadDotEnv(opts.envPath); err != nil {
		logger.Warn("skipping .env", "path", opts.envPath, "error", err)
	}
	cfg, err := application.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg := prometheus.NewRegistry()
	engine, err := application.NewEngine(ctx, cfg, reg, logger)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Warn("engine close failed", "error", err)
		}
	}()

	if opts.serve {
		srv := server.New(engine.Solver, engine, reg, cfg.Server, logger)
		return srv.Start(ctx)
	}

	a, err := engine.Solver.Answer(ctx, opts.question, splitChoices(opts.choices))
	if err != nil {
		return err
	}
	printAnswer(stdout, a)
	return nil
}

// splitChoices splits on | and drops blank entries.
func splitChoices(s string) []string {
	var out []string
	for _, c := range strings.Split(s, "|") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func printAnswer(w io.Writer, a application.Answer) {
	if a.Question.Reverse {
		fmt.Fprintln(w, "(negated question: least occurring choice wins)")
	}
	for _, r := range a.Results {
		fmt.Fprintf(w, "%-16s %s  %v\n", r.Method, describe(r), r.Scores)
	}
}

func describe(r domain.Result) string {
	if r.Confident() {
		return r.Answer
	}
	switch r.Reason {
	case domain.RejectTie:
		return "no confident answer (tie)"
	case domain.RejectAllZero:
		return "no confident answer (no evidence)"
	default:
		return "no confident answer"
	}
}
