package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"course_content_generator/config"
	"course_content_generator/diagram"
	"course_content_generator/export"
	"course_content_generator/generator"
	"course_content_generator/logger"
	"course_content_generator/server"
	"course_content_generator/store"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	input := flag.String("input", "", "subject or syllabus for one-shot generation")
	out := flag.String("out", "", "write the generated bundle JSON to this file (default stdout)")
	htmlOut := flag.String("html", "", "also write an HTML export of the bundle to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	llm, err := buildLLM(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	skipDiagram := cfg.Generation != nil && cfg.Generation.SkipDiagram
	pipeline, err := generator.NewPipeline(llm, log, skipDiagram)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		runServer(cfg, pipeline, log, *addr)
		return
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "--input is required (or use --serve)")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), genTimeout(cfg))
	defer cancel()

	result, err := pipeline.Generate(ctx, *input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *out == "" {
		fmt.Println(string(body))
	} else if err := os.WriteFile(*out, body, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *htmlOut != "" {
		doc, err := export.HTML(result)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := os.WriteFile(*htmlOut, []byte(doc), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func runServer(cfg config.Config, pipeline *generator.Pipeline, log *logger.Logger, addrOverride string) {
	storePath := cfg.StorePath
	if storePath == "" {
		storePath = "contents.db"
	}
	contents, err := store.NewStore(storePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer contents.Close()

	diagrams := diagram.New(cfg.EraserToken(), cfg.EraserBaseURL(), nil)

	opts := server.Options{GenTimeout: genTimeout(cfg)}
	if cfg.Generation != nil && cfg.Generation.DiagramTimeoutSeconds > 0 {
		opts.DiagramTimeout = time.Duration(cfg.Generation.DiagramTimeoutSeconds) * time.Second
	}

	srv, err := server.New(pipeline, diagrams, contents, log, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := cfg.ServerAddr
	if addrOverride != "" {
		listen = addrOverride
	}
	if listen == "" {
		listen = ":8080"
	}
	log.Info("starting web server", "addr", listen)
	if err := srv.Routes().Run(listen); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func genTimeout(cfg config.Config) time.Duration {
	if cfg.Generation != nil && cfg.Generation.TimeoutSeconds > 0 {
		return time.Duration(cfg.Generation.TimeoutSeconds) * time.Second
	}
	return 300 * time.Second
}

func buildLLM(cfg config.Config) (generator.LLMClient, error) {
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; set llm.provider/model/api_key in config or OPENAI_API_KEY")
	}
	settings := &generator.LLMSettings{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		MaxAttempts: cfg.LLM.MaxAttempts,
	}
	if settings.Model == "" {
		settings.Model = "gpt-4o"
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible endpoint; base_url is required.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "mock":
		return generator.NewMockLLM(), nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
