package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrHelp             = errors.New("help requested")
	ErrStdinAndIn       = errors.New("--stdin and --in are mutually exclusive")
	ErrTooManyTemplates = errors.New("at most one inline output template is allowed")
)

// Config represents the complete configuration for the jt tool.
type Config struct {
	// UseFiles are spec documents merged in order.
	UseFiles []string

	// Main input document selection.
	ReadStdin bool
	InFile    string

	// OutFile receives the transformed document instead of stdout.
	OutFile string

	// Output is the inline output template; HasOutput distinguishes an
	// empty template from an absent one.
	Output    string
	HasOutput bool

	Debug     bool
	RateLimit float64 // Command spawns per second (0 = unlimited)
}

// usesFlag implements flag.Value for parsing multiple --use flags.
type usesFlag []string

// String returns a string representation of the uses flag for flag.Value interface.
func (u *usesFlag) String() string {
	return strings.Join(*u, ",")
}

// Set stores a spec file path for flag.Value interface.
func (u *usesFlag) Set(value string) error {
	*u = append(*u, value)
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// Returns ErrHelp when usage output was requested.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		uses      usesFlag
		stdin     = fs.Bool("stdin", false, "Read the main input document from standard input")
		inFile    = fs.String("in", "", "Path to the main input document")
		outFile   = fs.String("out", "", "Write the transformed document to this file instead of stdout")
		debug     = fs.Bool("debug", false, "Enable debug output showing input resolution details")
		rateLimit = fs.Float64("rate-limit", 0, "Rate limit in command spawns per second (0 for unlimited)")
		usage     = fs.Bool("usage", false, "Show usage information")
	)

	fs.Var(&uses, "use", "Spec file to merge (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	if *usage {
		return nil, ErrHelp
	}

	if *stdin && *inFile != "" {
		return nil, ErrStdinAndIn
	}

	// Remaining positional arguments form the inline output template
	rest := fs.Args()
	if len(rest) > 1 {
		return nil, ErrTooManyTemplates
	}

	config := &Config{
		UseFiles:  uses,
		ReadStdin: *stdin,
		InFile:    *inFile,
		OutFile:   *outFile,
		Debug:     *debug,
		RateLimit: *rateLimit,
	}

	if len(rest) == 1 {
		config.Output = rest[0]
		config.HasOutput = true
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jt - JSON to JSON transformation tool

Usage: jt [options] [OUTPUT]

Arguments:
  OUTPUT                  Inline JSON output expression; counts as an output
                          definition like one read from a spec file

Options:
  --use FILE              Spec file to merge into the transform (can be used multiple times)
  --stdin                 Read the main input document from standard input
  --in FILE               Read the main input document from FILE
  --out FILE              Write the transformed document to FILE instead of stdout
  --rate-limit N          Rate limit in command spawns per second (0 for unlimited)
  --debug                 Enable debug output showing input resolution details
  --usage                 Show this help message
  -h, --help              Show this help message

Examples:
  jt --use spec.json --stdin             # Transform stdin using spec.json
  jt --use spec.json --in input.json     # Transform a file instead of stdin
  jt --use a.json --use b.json '"$x"'    # Merge two specs, output comes from the CLI
  jt --use spec.json --out result.json   # Write the result to a file`
}
