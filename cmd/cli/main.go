package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/adapters/sleep"
	adapterutils "github.com/hailam/randfiles/internal/adapters/utils"
	"github.com/hailam/randfiles/internal/application"
	"github.com/hailam/randfiles/internal/logging"
	"github.com/hailam/randfiles/internal/names"
	"github.com/hailam/randfiles/internal/ports"
	"github.com/hailam/randfiles/internal/utils"

	// Content generators register themselves with the factory.
	_ "github.com/hailam/randfiles/internal/adapters/dxf"
	_ "github.com/hailam/randfiles/internal/adapters/empty"
	_ "github.com/hailam/randfiles/internal/adapters/mp4"
	_ "github.com/hailam/randfiles/internal/adapters/pdf"
	_ "github.com/hailam/randfiles/internal/adapters/txt"
	_ "github.com/hailam/randfiles/internal/adapters/xlsx"
	_ "github.com/hailam/randfiles/internal/adapters/zip"
)

var version = "dev"

const defaultCount = 1000

type options struct {
	dir      string
	format   string
	size     string
	seed     uint64
	progress bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "randfiles [num_files] [delay]",
		Short: "Creates files with random 6-character names.",
		Long: `randfiles creates num_files (default 1000) files named with random
6-character alphanumeric strings, pausing delay seconds (default 0) after
each one. Files are empty unless --format and --size ask for content.
Existing files with the same name are overwritten.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "dir", "d", ".", "Directory to create the files in")
	flags.StringVarP(&opts.format, "format", "f", "empty", "Content format (empty, txt, log, md, zip, xlsx, pdf, dxf, mp4, m4v)")
	flags.StringVarP(&opts.size, "size", "s", "0", "Size of each file (e.g., 500, 10KB, 2MB)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for reproducible names")
	flags.BoolVar(&opts.progress, "progress", false, "Show a spinner on stderr while waiting")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log each file to stderr")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	// Arguments are validated before anything touches the disk.
	count := defaultCount
	if len(args) > 0 {
		n, err := utils.ParseCount(args[0])
		if err != nil {
			return fmt.Errorf("invalid num_files %q: %w", args[0], err)
		}
		count = n
	}
	var req application.Request
	if len(args) > 1 {
		d, err := utils.ParseDelay(args[1])
		if err != nil {
			return fmt.Errorf("invalid delay %q: %w", args[1], err)
		}
		req.Delay = d
	}
	format, err := application.ParseFileType(opts.format)
	if err != nil {
		return err
	}
	req.Dir, req.Count, req.Format, req.Size = opts.dir, count, format, opts.size

	logger := logging.New(opts.verbose, cmd.ErrOrStderr())
	defer logger.Sync()
	if len(args) > 2 {
		logger.Debug("ignoring extra arguments", zap.Strings("args", args[2:]))
	}

	var nameGen ports.NameGenerator = names.New(nil, names.DefaultLength)
	if cmd.Flags().Changed("seed") {
		nameGen = names.NewSeeded(opts.seed)
	}
	var sleeper ports.Sleeper = sleep.New()
	if opts.progress {
		sleeper = sleep.WithSpinner(sleeper, cmd.ErrOrStderr())
	}

	// --- Composition Root ---
	generatorFactory := factory.NewGeneratorFactory()
	logger.Debug("generators registered", zap.String("types", joinTypes(generatorFactory.Supported())))
	fileService := application.NewFileService(generatorFactory, adapterutils.NewUtilSizeParser(), nameGen, sleeper, logger)

	created, err := fileService.CreateFiles(cmd.Context(), req, cmd.OutOrStdout())
	logger.Debug("batch finished", zap.Int("created", created), zap.Int("requested", count))
	return err
}

func joinTypes(types []ports.FileType) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = string(t)
	}
	return strings.Join(s, ",")
}

// numericPositionals moves negative numbers such as "-3" or "-0.5" behind a
// "--" terminator so pflag does not read them as shorthand flags. Flag values
// ("--seed 5", "-d dir") stay attached to their flags.
func numericPositionals(cmd *cobra.Command, args []string) []string {
	var flagArgs, positional []string
	negative := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case isNegativeNumber(arg):
			negative = true
			positional = append(positional, arg)
		case strings.HasPrefix(arg, "-") && arg != "-":
			flagArgs = append(flagArgs, arg)
			if takesValue(cmd, arg) && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		default:
			positional = append(positional, arg)
		}
	}
	if !negative {
		return args
	}
	return append(append(flagArgs, "--"), positional...)
}

func isNegativeNumber(arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err == nil
}

// takesValue reports whether the flag token arg consumes the next token.
func takesValue(cmd *cobra.Command, arg string) bool {
	flags := cmd.Flags()
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if strings.Contains(name, "=") {
			return false
		}
		f := flags.Lookup(name)
		return f != nil && f.NoOptDefVal == ""
	}
	for j := 1; j < len(arg); j++ {
		f := flags.ShorthandLookup(arg[j : j+1])
		if f == nil {
			return false
		}
		if f.NoOptDefVal == "" {
			// A value glued to the shorthand ("-d/tmp") is already consumed.
			return j == len(arg)-1
		}
	}
	return false
}

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(numericPositionals(cmd, os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
