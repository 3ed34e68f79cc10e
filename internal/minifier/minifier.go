package minifier

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"closure-minify/internal/closure"
)

const (
	Closure  = "closure"
	Tdewolff = "tdewolff"
	Esbuild  = "esbuild"
)

// Minifier turns javascript source into its minified form.
type Minifier interface {
	Minify(ctx context.Context, source string) ([]byte, error)
}

type factory func(config *closure.Config) (Minifier, error)

// Backends maps the backend name given on the command line to its
// constructor. Only the closure backend uses the configuration.
var Backends = map[string]factory{
	Closure: func(config *closure.Config) (Minifier, error) {
		client, err := closure.NewClient(config)

		if err != nil {
			return nil, err
		}

		return client, nil
	},
	Tdewolff: func(_ *closure.Config) (Minifier, error) {
		return newTdewolffMinifier(), nil
	},
	Esbuild: func(_ *closure.Config) (Minifier, error) {
		return newEsbuildMinifier(), nil
	},
}

// New returns the named backend. There is no fallback between backends, a
// failure from the selected one is final.
func New(name string, config *closure.Config) (Minifier, error) {
	build, ok := Backends[name]

	if !ok {
		return nil, errors.Errorf("minifier backend `%s` does not exist, expected one of %v", name, Names())
	}

	return build(config)
}

// Names returns the sorted backend names.
func Names() []string {
	names := make([]string, 0, len(Backends))

	for name := range Backends {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
