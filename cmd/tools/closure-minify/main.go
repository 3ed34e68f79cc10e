package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"closure-minify/internal/closure"
	"closure-minify/internal/config"
	"closure-minify/internal/files"
	"closure-minify/internal/memory"
	"closure-minify/internal/minifier"
	"closure-minify/internal/parser"
)

// readSources returns the contents of every input joined by the separator,
// reading standard input when there are no inputs.
func readSources(inputs []string, stdin io.Reader, separator string) (string, error) {
	if len(inputs) == 0 {
		data, err := io.ReadAll(stdin)

		if err != nil {
			return "", errors.Wrap(err, "failed to read standard input")
		}

		return string(data), nil
	}

	sources := make([]string, 0, len(inputs))

	for _, input := range inputs {
		data, err := os.ReadFile(input)

		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", input)
		}

		sources = append(sources, string(data))
	}

	return strings.Join(sources, separator), nil
}

// newOutput returns the file handler for the bundle, or nil when it should
// be written to standard output.
func newOutput(args *parser.Arguments) (files.Files, error) {
	if args.OutputDir == "" && args.S3Bucket == "" {
		return nil, nil
	}

	root, err := filepath.Abs(args.OutputDir)

	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", args.OutputDir)
	}

	return files.NewFilesHandler(&files.Config{
		Local: &files.LocalConfig{LocalRootPath: root},
		S3:    &files.S3Config{BucketName: args.S3Bucket},
	})
}

func run(ctx context.Context, args *parser.Arguments, m minifier.Minifier, output files.Files, stdin io.Reader, stdout io.Writer) error {
	source, err := readSources(args.Inputs, stdin, args.Separator)

	if err != nil {
		return err
	}

	minified, err := m.Minify(ctx, source)

	if err != nil {
		return errors.Wrapf(err, "failed to minify with %s", args.Backend)
	}

	log.Info().
		Str("backend", args.Backend).
		Int("inputs", len(args.Inputs)).
		Stringer("source", memory.Memory(len(source))).
		Stringer("output", memory.Memory(len(minified))).
		Float64("ratio", memory.Ratio(memory.Memory(len(source)), memory.Memory(len(minified)))).
		Msg("minified bundle")

	if output == nil {
		_, err = stdout.Write(minified)
		return errors.Wrap(err, "failed to write bundle")
	}

	buildID := args.BuildID

	if buildID == "" {
		buildID = uuid.NewString()
	}

	if err := output.WriteFile(&files.File{ID: buildID, Name: args.OutputName, Data: minified}); err != nil {
		return errors.Wrap(err, "failed to write bundle")
	}

	log.Info().Str("build", buildID).Str("name", args.OutputName).Msg("wrote bundle")
	return nil
}

func main() {
	args := parser.ParseDefaultConfigurationArguments(os.Args[0], os.Args[1:])
	config.ConfigureLogger(config.GetCurrentEnvironment(), args.LogLevel)

	log.Info().Str("environment", config.GetCurrentEnvironment()).Msg("starting closure-minify")

	m, err := minifier.New(args.Backend, args.ClosureConfig())

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create minifier")
	}

	output, err := newOutput(&args)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create file handler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &args, m, output, os.Stdin, os.Stdout); err != nil {
		if closure.IsRemoteCompilation(err) {
			log.Error().Str("response", err.Error()).Msg("compilation service rejected the source")
		} else {
			log.Error().Err(err).Msg("failed to build bundle")
		}

		stop()
		os.Exit(1)
	}
}
