// discover profiles a JSON sample of source records, suggests mappings to
// the canonical conversion schema when an LLM provider is configured, and
// resolves cross-source identities deterministically.
//
// Usage: go run ./cmd/discover [flags] <records.json>
//
// The input file holds either a JSON array of flat records (one source) or
// an object of {"source_name": [records...]} for multi-source resolution.
//
// LLM connection: uses LLM_* environment variables (see pkg/config).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/datablogin/GrowthNav/pkg/config"
	"github.com/datablogin/GrowthNav/pkg/discovery"
	"github.com/datablogin/GrowthNav/pkg/identity"
	"github.com/datablogin/GrowthNav/pkg/llm"
	"github.com/datablogin/GrowthNav/pkg/mapper"
	"github.com/datablogin/GrowthNav/pkg/models"
	"github.com/datablogin/GrowthNav/pkg/profiler"
)

// Version is set at build time via ldflags
var Version = "dev"

// Report is the full JSON output of one discovery run.
type Report struct {
	Version    string                       `json:"version"`
	Sources    map[string]*discovery.Result `json:"sources"`
	Identities []*models.ResolvedIdentity   `json:"identities,omitempty"`
	Skipped    map[string]string            `json:"skipped,omitempty"`
}

func main() {
	var (
		sourceName  = flag.String("source", "upload", "source system name for single-array input")
		contextNote = flag.String("context", "", "free-text description of the source passed to the mapper")
		skipMapping = flag.Bool("skip-mapping", false, "profile only, do not call the LLM")
		skipLinking = flag.Bool("skip-linking", false, "do not resolve identities")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: discover [flags] <records.json>")
		os.Exit(2)
	}

	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	sources, err := readSources(flag.Arg(0), *sourceName)
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}

	report, err := run(context.Background(), cfg, logger, sources, *contextNote, *skipMapping, *skipLinking)
	if err != nil {
		logger.Fatal("Discovery failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Fatal("Failed to write report", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, sources map[string][]map[string]any, contextNote string, skipMapping, skipLinking bool) (*Report, error) {
	report := &Report{
		Version: cfg.Version,
		Sources: make(map[string]*discovery.Result, len(sources)),
		Skipped: map[string]string{},
	}

	p := profiler.New(logger)

	var m mapper.Mapper
	if skipMapping {
		report.Skipped["mapping"] = "disabled by flag"
	} else if !cfg.LLM.IsConfigured() {
		report.Skipped["mapping"] = "no LLM provider configured"
	} else {
		generator, err := buildGenerator(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		m, err = mapper.New(generator, logger)
		if err != nil {
			return nil, err
		}
	}

	opts := discovery.Options{
		SampleSize:    cfg.Profiler.SampleSize,
		MinConfidence: cfg.Mapper.MinConfidence,
	}

	var svc discovery.SchemaDiscovery
	if m != nil {
		svc = discovery.New(p, m, opts, logger)
	}

	// Sorted source order keeps the report and resolution reproducible.
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var tagged []identity.SourceRecord
	for _, name := range names {
		records := sources[name]
		if svc != nil {
			result, err := svc.Analyze(ctx, records, contextNote)
			if err != nil {
				return nil, fmt.Errorf("discovery failed for source %q: %w", name, err)
			}
			report.Sources[name] = result
		} else {
			report.Sources[name] = &discovery.Result{
				Profiles: p.Profile(records, opts.SampleSize),
				FieldMap: map[string]string{},
			}
		}
		for _, r := range records {
			tagged = append(tagged, identity.SourceRecord{Source: name, Fields: r})
		}
	}

	if skipLinking {
		report.Skipped["linking"] = "disabled by flag"
	} else {
		linker := identity.NewDeterministicLinker(identity.Options{}, logger)
		report.Identities = linker.Resolve(tagged)
	}

	if len(report.Skipped) == 0 {
		report.Skipped = nil
	}
	return report, nil
}

// readSources parses the input file. A top-level array is treated as a
// single source named by fallbackName; a top-level object maps source names
// to record arrays.
func readSources(path, fallbackName string) (map[string][]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var asArray []map[string]any
	if err := json.Unmarshal(data, &asArray); err == nil {
		return map[string][]map[string]any{fallbackName: asArray}, nil
	}

	var asObject map[string][]map[string]any
	if err := json.Unmarshal(data, &asObject); err != nil {
		return nil, fmt.Errorf("input must be a JSON array of records or an object of source arrays: %w", err)
	}
	return asObject, nil
}

func buildGenerator(cfg *config.Config, logger *zap.Logger) (llm.Generator, error) {
	if cfg.LLM.Provider == config.ProviderAnthropic {
		model := cfg.LLM.Model
		if model == "" {
			model = llm.DefaultAnthropicModel
		}
		return llm.NewAnthropicClient(cfg.LLM.APIKey, model, logger)
	}
	return llm.NewClient(&llm.Config{
		Endpoint:    cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
	}, logger)
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
