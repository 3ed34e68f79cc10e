package minifier

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type esbuildMinifier struct {
	options api.TransformOptions
}

func newEsbuildMinifier() *esbuildMinifier {
	return &esbuildMinifier{options: api.TransformOptions{
		LegalComments:     api.LegalCommentsNone,
		Loader:            api.LoaderJS,
		LogLevel:          api.LogLevelSilent,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		MinifyWhitespace:  true,
		Sourcemap:         api.SourceMapNone,
	}}
}

func (e *esbuildMinifier) Minify(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := api.Transform(source, e.options)

	if len(result.Errors) != 0 {
		messages := make([]string, 0, len(result.Errors))

		for _, message := range result.Errors {
			messages = append(messages, message.Text)
		}

		return nil, errors.Errorf("failed to minify with esbuild: %s", strings.Join(messages, "; "))
	}

	log.Debug().Str("backend", Esbuild).Int("output", len(result.Code)).Msg("minified locally")
	return result.Code, nil
}
