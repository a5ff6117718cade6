package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr error
	}{
		{
			name: "no_flags",
			args: []string{"jt"},
			want: &Config{},
		},
		{
			name: "single_use",
			args: []string{"jt", "--use", "spec.json"},
			want: &Config{
				UseFiles: []string{"spec.json"},
			},
		},
		{
			name: "repeated_use",
			args: []string{"jt", "--use", "a.json", "--use", "b.json", "--use", "c.json"},
			want: &Config{
				UseFiles: []string{"a.json", "b.json", "c.json"},
			},
		},
		{
			name: "with_stdin",
			args: []string{"jt", "--use", "spec.json", "--stdin"},
			want: &Config{
				UseFiles:  []string{"spec.json"},
				ReadStdin: true,
			},
		},
		{
			name: "with_in_file",
			args: []string{"jt", "--use", "spec.json", "--in", "input.json"},
			want: &Config{
				UseFiles: []string{"spec.json"},
				InFile:   "input.json",
			},
		},
		{
			name: "with_out_file",
			args: []string{"jt", "--use", "spec.json", "--out", "result.json"},
			want: &Config{
				UseFiles: []string{"spec.json"},
				OutFile:  "result.json",
			},
		},
		{
			name: "inline_output",
			args: []string{"jt", "--use", "spec.json", `{"project": "$name"}`},
			want: &Config{
				UseFiles:  []string{"spec.json"},
				Output:    `{"project": "$name"}`,
				HasOutput: true,
			},
		},
		{
			name: "inline_output_without_use",
			args: []string{"jt", `"$"`},
			want: &Config{
				Output:    `"$"`,
				HasOutput: true,
			},
		},
		{
			name: "empty_inline_output_still_counts",
			args: []string{"jt", ""},
			want: &Config{
				Output:    "",
				HasOutput: true,
			},
		},
		{
			name: "with_debug",
			args: []string{"jt", "--use", "spec.json", "--debug"},
			want: &Config{
				UseFiles: []string{"spec.json"},
				Debug:    true,
			},
		},
		{
			name: "with_rate_limit",
			args: []string{"jt", "--use", "spec.json", "--rate-limit", "10"},
			want: &Config{
				UseFiles:  []string{"spec.json"},
				RateLimit: 10,
			},
		},
		{
			name: "with_fractional_rate_limit",
			args: []string{"jt", "--use", "spec.json", "--rate-limit", "0.5"},
			want: &Config{
				UseFiles:  []string{"spec.json"},
				RateLimit: 0.5,
			},
		},
		{
			name: "everything_combined",
			args: []string{"jt", "--use", "a.json", "--use", "b.json", "--in", "input.json", "--out", "result.json", "--debug", "--rate-limit", "2", `{"x": "$input"}`},
			want: &Config{
				UseFiles:  []string{"a.json", "b.json"},
				InFile:    "input.json",
				OutFile:   "result.json",
				Debug:     true,
				RateLimit: 2,
				Output:    `{"x": "$input"}`,
				HasOutput: true,
			},
		},
		{
			name:    "no_arguments",
			args:    []string{},
			wantErr: ErrNoArguments,
		},
		{
			name:    "stdin_and_in_conflict",
			args:    []string{"jt", "--stdin", "--in", "input.json"},
			wantErr: ErrStdinAndIn,
		},
		{
			name:    "two_inline_outputs",
			args:    []string{"jt", `"$a"`, `"$b"`},
			wantErr: ErrTooManyTemplates,
		},
		{
			name:    "help_flag",
			args:    []string{"jt", "--help"},
			wantErr: ErrHelp,
		},
		{
			name:    "usage_flag",
			args:    []string{"jt", "--usage"},
			wantErr: ErrHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.args)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}

			if !reflect.DeepEqual(cfg, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestParseInvalidFlag(t *testing.T) {
	_, err := Parse([]string{"jt", "--rate-limit", "invalid"})
	if err == nil {
		t.Fatal("expected error for invalid rate limit")
	}
	if errors.Is(err, ErrHelp) {
		t.Fatalf("invalid flag value should not be reported as help: %v", err)
	}

	_, err = Parse([]string{"jt", "--no-such-flag"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestParseHelpFlag(t *testing.T) {
	_, err := Parse([]string{"jt", "-h"})
	if !errors.Is(err, ErrHelp) {
		t.Errorf("expected ErrHelp for -h, got %v", err)
	}

	_, err = Parse([]string{"jt", "--help"})
	if !errors.Is(err, ErrHelp) {
		t.Errorf("expected ErrHelp for --help, got %v", err)
	}
}

func TestUsesFlag(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{
			name:   "empty",
			values: []string{},
			want:   nil,
		},
		{
			name:   "single_file",
			values: []string{"spec.json"},
			want:   []string{"spec.json"},
		},
		{
			name:   "multiple_files_keep_order",
			values: []string{"b.json", "a.json"},
			want:   []string{"b.json", "a.json"},
		},
		{
			name:   "duplicates_kept",
			values: []string{"a.json", "a.json"},
			want:   []string{"a.json", "a.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var uses usesFlag
			for _, value := range tt.values {
				if err := uses.Set(value); err != nil {
					t.Fatalf("Set(%q) failed: %v", value, err)
				}
			}

			if !reflect.DeepEqual([]string(uses), tt.want) {
				t.Errorf("usesFlag = %v, want %v", []string(uses), tt.want)
			}

			if got, want := uses.String(), strings.Join(tt.want, ","); got != want {
				t.Errorf("String() = %q, want %q", got, want)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	usage := Usage()
	if usage == "" {
		t.Error("Usage() returned empty string")
	}

	expectedSections := []string{
		"jt - JSON to JSON transformation tool",
		"Usage: jt [options]",
		"Options:",
		"--use",
		"--stdin",
		"--in",
		"--out",
		"--rate-limit",
		"--debug",
		"--help",
		"Examples:",
	}

	for _, section := range expectedSections {
		if !strings.Contains(usage, section) {
			t.Errorf("Usage() missing expected section: %s", section)
		}
	}
}
