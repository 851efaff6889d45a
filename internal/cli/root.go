package cli

import (
	"os"
	"time"

	"passgen/internal/errors"
	"passgen/internal/log"
	"passgen/internal/passgen"
	"passgen/internal/policy"

	"github.com/spf13/cobra"
)

// Version is set by main.go
var Version = "dev"

func init() {
	// Silence Cobra's default error/usage printing - we handle it ourselves
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// rootCmd generates passwords; it has no subcommands.
var rootCmd = &cobra.Command{
	Use:   "passgen",
	Short: "Secure password generator",
	Long: `passgen generates cryptographically random passwords.

Every enabled character class (lowercase, uppercase, numbers, symbols)
appears at least once in each password. Characters are drawn without
modulo bias from the system CSPRNG and the result is shuffled.

Examples:
  # One 16 character password using all classes
  passgen

  # Five 24 character passwords without symbols
  passgen --length 24 --symbols=false --count 5

  # Avoid look-alike characters and a few troublesome ones
  passgen --no-ambiguous --exclude '{}[]'

  # Start from a policy file; explicit flags still win
  passgen --config policy.yaml --count 3`,
	Version: Version,
	Args:    cobra.NoArgs,
	RunE:    runGenerate,
}

// Generate flags
var (
	genLength      int
	genUpper       bool
	genLower       bool
	genNumbers     bool
	genSymbols     bool
	genExclude     string
	genCount       int
	genNoAmbiguous bool
	genConfig      string
	genWorkers     int
	genQuiet       bool
	genVerbose     bool
)

func init() {
	flags := rootCmd.Flags()

	// Policy
	flags.IntVarP(&genLength, "length", "l", policy.DefaultLength, "Password length (8-64)")
	flags.BoolVar(&genUpper, "upper", true, "Include uppercase letters")
	flags.BoolVar(&genLower, "lower", true, "Include lowercase letters")
	flags.BoolVar(&genNumbers, "numbers", true, "Include numbers")
	flags.BoolVar(&genSymbols, "symbols", true, "Include symbols")
	flags.StringVarP(&genExclude, "exclude", "e", "", "Characters to exclude")
	flags.BoolVar(&genNoAmbiguous, "no-ambiguous", false, "Exclude ambiguous characters (i, I, l, L, o, O, 0, 1)")
	flags.StringVar(&genConfig, "config", "", "YAML policy file; flags given explicitly override it")

	// Batch
	flags.IntVarP(&genCount, "count", "c", 1, "Number of passwords to generate")
	flags.IntVar(&genWorkers, "workers", 1, "Number of passwords generated concurrently")

	// Other
	flags.BoolVarP(&genQuiet, "quiet", "q", false, "Print passwords only, without banner")
	flags.BoolVarP(&genVerbose, "verbose", "v", false, "Log debug output to stderr")
}

// buildPolicy merges the policy file, if any, with the command line.
// Without a policy file every flag applies; with one, only flags the user
// set explicitly replace values from the file.
func buildPolicy(cmd *cobra.Command) (policy.Policy, error) {
	p := policy.Default()
	if genConfig != "" {
		var err error
		if p, err = policy.LoadFile(genConfig); err != nil {
			return policy.Policy{}, err
		}
	}

	apply := func(name string) bool {
		return genConfig == "" || cmd.Flags().Changed(name)
	}
	if apply("length") {
		p.Length = genLength
	}
	if apply("upper") {
		p.Upper = genUpper
	}
	if apply("lower") {
		p.Lower = genLower
	}
	if apply("numbers") {
		p.Numbers = genNumbers
	}
	if apply("symbols") {
		p.Symbols = genSymbols
	}
	if apply("exclude") {
		p.Exclude = genExclude
	}
	if apply("no-ambiguous") {
		p.ExcludeAmbiguous = genNoAmbiguous
	}
	return p, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// execute resets the logger once the error, if any, has been reported.
	if genVerbose {
		log.EnableDebugLogging(cmd.ErrOrStderr())
	}

	p, err := buildPolicy(cmd)
	if err != nil {
		return err
	}

	log.Debug("generating",
		log.String("config", genConfig),
		log.Int("length", p.Length),
		log.Int("count", genCount),
		log.Bool("excludeAmbiguous", p.ExcludeAmbiguous),
		log.Int("excluded", len(p.Exclude)))

	start := time.Now()
	gen := passgen.New(passgen.WithWorkers(genWorkers))
	passwords, err := gen.GenerateMultiple(p, genCount)
	if err != nil {
		return err
	}
	log.Info("passwords generated",
		log.Int("count", len(passwords)),
		log.Duration("elapsed", time.Since(start)))

	NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), genQuiet).PrintPasswords(passwords)
	return nil
}

// reportError prints err for the user. Rejected policies are logged as
// warnings; a failing random source or an empty pool is a defect and is
// logged as an error.
func reportError(r *Reporter, err error) {
	r.PrintError("%v", err)

	if errors.IsUserError(err) {
		var classErr *errors.ClassError
		var policyErr *errors.PolicyError
		switch {
		case errors.As(err, &classErr):
			log.Warn("policy rejected", log.String("class", classErr.Class))
		case errors.As(err, &policyErr):
			log.Warn("policy rejected", log.String("field", policyErr.Field))
		}
		return
	}
	if errors.Is(err, errors.ErrRandFailure) || errors.Is(err, errors.ErrInvalidPool) {
		log.Error("generation failed", log.Err(err))
	}
}

// Execute runs the CLI application.
// Failures, including flag parsing errors, are printed as "Error: <message>"
// and the process exits with status 1.
func Execute(version string) {
	Version = version
	rootCmd.Version = version

	if err := execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func execute(args []string) error {
	defer log.SetLogger(nil)

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		reportError(NewReporter(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), genQuiet), err)
	}
	return err
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("passgen {{.Version}}\n")
}
