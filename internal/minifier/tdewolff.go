package minifier

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

const javascriptMediaType = "application/javascript"

type tdewolffMinifier struct {
	m *minify.M
}

func newTdewolffMinifier() *tdewolffMinifier {
	m := minify.New()
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	return &tdewolffMinifier{m: m}
}

func (t *tdewolffMinifier) Minify(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := t.m.Bytes(javascriptMediaType, []byte(source))

	if err != nil {
		return nil, errors.Wrap(err, "failed to minify with tdewolff")
	}

	log.Debug().Str("backend", Tdewolff).Int("output", len(output)).Msg("minified locally")
	return output, nil
}
