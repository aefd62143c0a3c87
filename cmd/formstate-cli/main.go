package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	formstate "github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/view/html"
	"github.com/goliatone/go-formstate/pkg/view/prompt"
)

const (
	modePrompt = "prompt"
	modeHTML   = "html"
	modeValues = "values"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to $FORMSTATE_CONFIG or ~/.config/formstate/config.*)")
	definitionPath := flag.String("definition", "", "form definition (.yaml, .toml, .json) or OpenAPI document")
	operation := flag.String("operation", "", "OpenAPI operation ID; treats -definition as an OpenAPI document")
	mode := flag.String("mode", "", "prompt, html or values")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	override(&cfg.Definition, *definitionPath)
	override(&cfg.Operation, *operation)
	override(&cfg.Mode, *mode)

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := run(ctx, cfg, logger)
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	}
	if err != nil {
		logger.Errorw("formstate failed", "error", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func override(dst *string, flagValue string) {
	if v := strings.TrimSpace(flagValue); v != "" {
		*dst = v
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) ([]byte, error) {
	f, err := formstate.NewForm(ctx, cfg.Definition, cfg.Operation, definition.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debugw("form loaded", "definition", cfg.Definition, "operation", cfg.Operation, "mode", cfg.Mode)

	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case modePrompt:
		result, err := formstate.Prompt(ctx, f,
			prompt.WithLogger(logger),
			prompt.WithMaxAttempts(cfg.Prompt.MaxAttempts),
			prompt.WithSecretFields(cfg.Prompt.SecretFields...),
			prompt.WithDriver(&prompt.SurveyDriver{Out: os.Stderr}),
		)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(result, "", "  ")
	case modeHTML:
		return renderHTML(f, cfg)
	case modeValues:
		return json.MarshalIndent(formstate.Result{Values: f.Values(), Errors: f.Validate()}, "", "  ")
	default:
		return nil, fmt.Errorf("unknown mode %q (want %s, %s or %s)", cfg.Mode, modePrompt, modeHTML, modeValues)
	}
}

type formRenderer interface {
	Render(*form.Form) (string, error)
}

func renderHTML(f *form.Form, cfg config.Config) ([]byte, error) {
	var opts []html.Option
	if dir := strings.TrimSpace(cfg.HTML.Templates); dir != "" {
		opts = append(opts, html.WithTemplates(os.DirFS(dir)))
	}
	if themeCfg := cfg.Theme.RendererConfig(); themeCfg != nil {
		opts = append(opts, html.WithTheme(themeCfg))
	}

	registry, err := formstate.NewRegistry(opts...)
	if err != nil {
		return nil, err
	}
	provider, err := registry.Get(html.Name)
	if err != nil {
		return nil, err
	}
	renderer, ok := provider.(formRenderer)
	if !ok {
		return nil, fmt.Errorf("provider %q cannot render a whole form", provider.Name())
	}
	out, err := renderer.Render(f)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
