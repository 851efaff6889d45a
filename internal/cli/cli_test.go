package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"passgen/internal/errors"
	"passgen/internal/log"

	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default between runs; pflag keeps
// values and Changed state across Execute calls on the same command.
func resetFlags(t *testing.T) {
	t.Helper()
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("resetting --%s: %v", f.Name, err)
		}
		f.Changed = false
	})
}

// run executes the root command with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := execute(args)
	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestBanner(t *testing.T) {
	if got := Banner(1); got != "=== Generated Password ===" {
		t.Errorf("Banner(1) = %q", got)
	}
	if got := Banner(3); got != "=== Generated Passwords ===" {
		t.Errorf("Banner(3) = %q", got)
	}
	if got := Banner(0); got != "=== Generated Password ===" {
		t.Errorf("Banner(0) = %q", got)
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog []string
	}{
		{"class error", errors.NewClassError("upper"), []string{"WRN", "policy rejected", "class=upper"}},
		{
			"policy error",
			errors.Wrap(errors.NewPolicyError("length", "password length must be between 8-64 characters"), "generating"),
			[]string{"WRN", "policy rejected", "field=length"},
		},
		{"random source", errors.Wrap(errors.NewCryptoError("read", io.ErrUnexpectedEOF), "generating password"), []string{"ERR", "generation failed"}},
		{"empty pool", errors.ErrInvalidPool, []string{"ERR", "generation failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs, out, errOut bytes.Buffer
			log.SetLogger(log.NewTintLogger(&logs, log.LevelDebug))
			defer log.SetLogger(nil)

			reportError(NewReporter(&out, &errOut, false), tt.err)

			if want := "Error: " + tt.err.Error() + "\n"; errOut.String() != want {
				t.Errorf("expected %q, got %q", want, errOut.String())
			}
			for _, want := range tt.wantLog {
				if !strings.Contains(logs.String(), want) {
					t.Errorf("expected log to contain %q, got %q", want, logs.String())
				}
			}
		})
	}

	t.Run("usage error is not logged", func(t *testing.T) {
		var logs, out, errOut bytes.Buffer
		log.SetLogger(log.NewTintLogger(&logs, log.LevelDebug))
		defer log.SetLogger(nil)

		reportError(NewReporter(&out, &errOut, false), io.EOF)
		if logs.Len() != 0 {
			t.Errorf("unexpected log output %q", logs.String())
		}
	})
}

func TestReporter(t *testing.T) {
	t.Run("PrintPasswords", func(t *testing.T) {
		var out, errOut bytes.Buffer
		r := NewReporter(&out, &errOut, false)
		r.PrintPasswords([]string{"first", "second"})

		want := "=== Generated Passwords ===\nfirst\nsecond\n"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
		if errOut.Len() != 0 {
			t.Errorf("nothing should go to errOut, got %q", errOut.String())
		}
	})

	t.Run("quiet", func(t *testing.T) {
		var out bytes.Buffer
		r := NewReporter(&out, &out, true)
		r.PrintPasswords([]string{"only"})
		if out.String() != "only\n" {
			t.Errorf("expected bare password, got %q", out.String())
		}
	})

	t.Run("PrintError", func(t *testing.T) {
		var out, errOut bytes.Buffer
		r := NewReporter(&out, &errOut, true)
		r.PrintError("bad %s", "policy")
		if errOut.String() != "Error: bad policy\n" {
			t.Errorf("unexpected error output %q", errOut.String())
		}
		if out.Len() != 0 {
			t.Error("errors should not go to out")
		}
	})

	t.Run("isTerminal", func(t *testing.T) {
		if isTerminal(&bytes.Buffer{}) {
			t.Error("a buffer is not a terminal")
		}
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		stdout, stderr, err := run(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stderr != "" {
			t.Errorf("unexpected stderr: %q", stderr)
		}

		got := lines(stdout)
		if len(got) != 2 {
			t.Fatalf("expected banner and one password, got %q", stdout)
		}
		if got[0] != Banner(1) {
			t.Errorf("unexpected banner %q", got[0])
		}
		if len(got[1]) != 16 {
			t.Errorf("expected 16 characters, got %q", got[1])
		}
	})

	t.Run("count and length", func(t *testing.T) {
		stdout, _, err := run(t, "--count", "3", "--length", "20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := lines(stdout)
		if len(got) != 4 || got[0] != Banner(3) {
			t.Fatalf("unexpected output %q", stdout)
		}
		for _, pw := range got[1:] {
			if len(pw) != 20 {
				t.Errorf("expected 20 characters, got %q", pw)
			}
		}
	})

	t.Run("lowercase only", func(t *testing.T) {
		stdout, _, err := run(t, "-l", "12", "--upper=false", "--numbers=false", "--symbols=false", "-c", "10", "-q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, pw := range lines(stdout) {
			if len(pw) != 12 {
				t.Errorf("expected 12 characters, got %q", pw)
			}
			for _, c := range pw {
				if c < 'a' || c > 'z' {
					t.Errorf("unexpected %q in %q", c, pw)
				}
			}
		}
	})

	t.Run("exclude", func(t *testing.T) {
		stdout, _, err := run(t, "--exclude", "aA1!", "--count", "50", "--quiet")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, pw := range lines(stdout) {
			if strings.ContainsAny(pw, "aA1!") {
				t.Errorf("password %q contains excluded characters", pw)
			}
		}
	})

	t.Run("no ambiguous", func(t *testing.T) {
		stdout, _, err := run(t, "--no-ambiguous", "--count", "50", "-q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, pw := range lines(stdout) {
			if strings.ContainsAny(pw, "iIlLoO01") {
				t.Errorf("password %q contains ambiguous characters", pw)
			}
		}
	})

	t.Run("workers", func(t *testing.T) {
		stdout, _, err := run(t, "--workers", "4", "--count", "40", "-q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := lines(stdout); len(got) != 40 {
			t.Errorf("expected 40 passwords, got %d", len(got))
		}
	})

	t.Run("verbose never logs passwords", func(t *testing.T) {
		stdout, stderr, err := run(t, "--verbose", "-q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "generating") {
			t.Errorf("expected debug output, got %q", stderr)
		}
		pw := strings.TrimSpace(stdout)
		if strings.Contains(stderr, pw) {
			t.Error("password leaked into log output")
		}
	})

	t.Run("verbose logs rejected policy", func(t *testing.T) {
		_, stderr, err := run(t, "--verbose", "--length", "7")
		if err == nil {
			t.Fatal("expected error")
		}
		for _, want := range []string{"Error: password length must be between 8-64 characters", "WRN", "field=length"} {
			if !strings.Contains(stderr, want) {
				t.Errorf("expected stderr to contain %q, got %q", want, stderr)
			}
		}
	})

	t.Run("zero count", func(t *testing.T) {
		stdout, _, err := run(t, "--count", "0")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != Banner(0)+"\n" {
			t.Errorf("expected only the banner, got %q", stdout)
		}
	})

	t.Run("version", func(t *testing.T) {
		stdout, _, err := run(t, "--version")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(stdout, "passgen ") {
			t.Errorf("unexpected version output %q", stdout)
		}
	})
}

func TestGenerateCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"length too short", []string{"--length", "7"}, "Error: password length must be between 8-64 characters"},
		{"length too long", []string{"--length", "65"}, "Error: password length must be between 8-64 characters"},
		{
			"no classes",
			[]string{"--upper=false", "--lower=false", "--numbers=false", "--symbols=false"},
			"Error: at least one character set must be enabled",
		},
		{"class excluded", []string{"--exclude", "ABCDEFGHIJKLMNOPQRSTUVWXYZ"}, "Error: upper set empty after exclusions"},
		{
			"pool too small",
			[]string{"--upper=false", "--lower=false", "--symbols=false", "--no-ambiguous"},
			"Error: combined character set too small after exclusions (min 10)",
		},
		{"negative count", []string{"--count", "-1"}, "Error: password count must not be negative"},
		{"unknown flag", []string{"--colour"}, "Error: unknown flag: --colour"},
		{"positional argument", []string{"extra"}, "Error: unknown command"},
		{"missing config", []string{"--config", filepath.Join(os.TempDir(), "passgen-missing.yaml")}, "Error: reading policy file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(stderr, tt.want) {
				t.Errorf("expected stderr to start with %q, got %q", tt.want, stderr)
			}
			if stdout != "" {
				t.Errorf("no passwords should be printed on error, got %q", stdout)
			}
		})
	}
}

func TestGenerateCommandConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	doc := "length: 10\nupper: false\nnumbers: false\nsymbols: false\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("file only", func(t *testing.T) {
		stdout, _, err := run(t, "--config", path, "-q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pw := strings.TrimSpace(stdout)
		if len(pw) != 10 {
			t.Errorf("expected 10 characters from config, got %q", pw)
		}
		if strings.ToLower(pw) != pw || strings.ContainsAny(pw, "0123456789") {
			t.Errorf("expected lowercase only, got %q", pw)
		}
	})

	t.Run("explicit flags override", func(t *testing.T) {
		stdout, _, err := run(t, "--config", path, "--length", "30", "-q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pw := strings.TrimSpace(stdout); len(pw) != 30 {
			t.Errorf("expected 30 characters, got %q", pw)
		}
	})
}
