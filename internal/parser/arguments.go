package parser

import (
	"time"

	"github.com/namsral/flag"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"closure-minify/internal/closure"
	"closure-minify/internal/validation"
)

// Arguments configure a closure-minify run. Every flag can also be provided
// through the environment, e.g. -closure-url as CLOSURE_URL.
type Arguments struct {
	Backend          string        `validate:"oneof=closure tdewolff esbuild"`
	ClosureURL       string        `validate:"required,url"`
	CompilationLevel string        `validate:"oneof=WHITESPACE_ONLY SIMPLE_OPTIMIZATIONS ADVANCED_OPTIMIZATIONS"`
	Timeout          time.Duration `validate:"gte=0"`

	OutputDir  string
	OutputName string `validate:"required"`
	S3Bucket   string
	BuildID    string

	LogLevel  string
	Separator string

	// Inputs are the remaining positional arguments, the javascript files
	// that make up the bundle.
	Inputs []string
}

// ClosureConfig maps the arguments onto the closure client configuration.
func (a Arguments) ClosureConfig() *closure.Config {
	return &closure.Config{
		URL:              a.ClosureURL,
		CompilationLevel: closure.CompilationLevel(a.CompilationLevel),
		Timeout:          a.Timeout,
	}
}

func newFlagSet(name string, args *Arguments) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&args.Backend, "backend", "closure", "the minifier backend, closure, tdewolff or esbuild")
	fs.StringVar(&args.ClosureURL, "closure-url", closure.DefaultURL, "the compilation service endpoint")
	fs.StringVar(&args.CompilationLevel, "compilation-level", string(closure.SimpleOptimizations), "WHITESPACE_ONLY, SIMPLE_OPTIMIZATIONS or ADVANCED_OPTIMIZATIONS")
	fs.DurationVar(&args.Timeout, "timeout", 0, "per request timeout, zero disables it")

	fs.StringVar(&args.OutputDir, "output-dir", "", "write the bundle below this directory")
	fs.StringVar(&args.OutputName, "output-name", "bundle.min.js", "the file name the bundle is written as")
	fs.StringVar(&args.S3Bucket, "s3-bucket", "", "write the bundle to this bucket")
	fs.StringVar(&args.BuildID, "build-id", "", "groups the written bundle, defaults to a new uuid")

	fs.StringVar(&args.LogLevel, "log-level", "info", "trace, debug, info, warn or error")
	fs.StringVar(&args.Separator, "separator", "\n", "joins the input files")

	return fs
}

func ParseArguments(name string, arguments []string) (Arguments, error) {
	args := Arguments{}
	fs := newFlagSet(name, &args)

	if err := fs.Parse(arguments); err != nil {
		return args, errors.Wrap(err, "failed to parse arguments")
	}

	args.Inputs = fs.Args()

	if err := validation.Struct(&args); err != nil {
		return args, errors.Wrap(err, "invalid arguments")
	}

	return args, nil
}

func ParseDefaultConfigurationArguments(name string, arguments []string) Arguments {
	args, err := ParseArguments(name, arguments)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse arguments")
	}

	log.Debug().Msgf("%+v parsed arguments", args)

	return args
}
