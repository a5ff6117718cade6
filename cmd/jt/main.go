package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jt/internal/config"
	"github.com/jacoelho/jt/internal/diagnostics"
	"github.com/jacoelho/jt/internal/spec"
	"github.com/jacoelho/jt/internal/transform"
	"github.com/jacoelho/jt/internal/value"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			fmt.Fprintln(os.Stdout, config.Usage())
			return 0
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", err, config.Usage())
		return 1
	}

	logger := diagnostics.New(os.Stderr, cfg.Debug)

	merged := spec.New()
	for _, file := range cfg.UseFiles {
		before := merged.Len()
		if err := merged.AddUse(file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger.Debug("merged spec file", "path", file, "inputs", merged.Len()-before)
	}

	if cfg.HasOutput {
		output, err := value.Parse([]byte(cfg.Output))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to parse JSON: %v\n", err)
			return 1
		}
		if err := merged.SetOutput(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	input, err := readInput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	transformer := transform.New(merged, transform.Options{
		Logger:        logger,
		RateLimit:     cfg.RateLimit,
		CommandStderr: os.Stderr,
	})

	result, err := transformer.Transform(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.OutFile != "" {
		if err := os.WriteFile(cfg.OutFile, []byte(result+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write file: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintln(os.Stdout, result)
	return 0
}

// readInput loads the main input document, nil when none was selected.
func readInput(cfg *config.Config) (any, error) {
	switch {
	case cfg.ReadStdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from STDIN: %w", err)
		}
		input, err := value.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return input, nil
	case cfg.InFile != "":
		data, err := os.ReadFile(cfg.InFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		input, err := value.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return input, nil
	default:
		return nil, nil
	}
}
