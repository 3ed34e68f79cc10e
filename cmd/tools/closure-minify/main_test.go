package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"closure-minify/internal/closure"
	"closure-minify/internal/files"
	"closure-minify/internal/files/mocks"
	"closure-minify/internal/minifier"
	"closure-minify/internal/parser"
)

func writeInputs(t *testing.T, contents ...string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, len(contents))

	for i, content := range contents {
		path := filepath.Join(dir, string(rune('a'+i))+".js")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		paths = append(paths, path)
	}

	return paths
}

// newService fakes the compilation service, answering with the given body
// and recording the submitted js_code.
func newService(t *testing.T, response string, submitted *string) *closure.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*submitted = r.FormValue("js_code")
		_, _ = w.Write([]byte(response))
	}))

	t.Cleanup(server.Close)

	client, err := closure.NewClient(&closure.Config{URL: server.URL + "/compile", HTTPClient: server.Client()})
	require.NoError(t, err)

	return client
}

func TestReadSources(t *testing.T) {
	t.Run("should join the inputs with the separator", func(t *testing.T) {
		source, err := readSources(writeInputs(t, "var a = 1;", "var b = 2;"), nil, "\n")

		require.NoError(t, err)
		assert.Equal(t, "var a = 1;\nvar b = 2;", source)
	})

	t.Run("should read standard input without inputs", func(t *testing.T) {
		source, err := readSources(nil, strings.NewReader("var c = 3;"), "\n")

		require.NoError(t, err)
		assert.Equal(t, "var c = 3;", source)
	})

	t.Run("should fail on a missing input", func(t *testing.T) {
		_, err := readSources([]string{filepath.Join(t.TempDir(), "missing.js")}, nil, "\n")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRun(t *testing.T) {
	t.Run("should write the compiled bundle to standard output", func(t *testing.T) {
		var submitted string
		client := newService(t, "var a=1,b=2;", &submitted)

		args := &parser.Arguments{Backend: minifier.Closure, Separator: "\n", Inputs: writeInputs(t, "var a = 1;", "var b = 2;")}
		stdout := &bytes.Buffer{}

		require.NoError(t, run(context.Background(), args, client, nil, nil, stdout))

		assert.Equal(t, "var a = 1;\nvar b = 2;", submitted)
		assert.Equal(t, "var a=1,b=2;", stdout.String())
	})

	t.Run("should surface remote compilation errors", func(t *testing.T) {
		var submitted string
		client := newService(t, "Error: unexpected token", &submitted)

		args := &parser.Arguments{Backend: minifier.Closure, Separator: "\n"}
		stdout := &bytes.Buffer{}

		err := run(context.Background(), args, client, nil, strings.NewReader("var a = ;"), stdout)

		require.Error(t, err)
		assert.True(t, closure.IsRemoteCompilation(err))
		assert.Empty(t, stdout.String())
	})

	t.Run("should store the bundle under the build id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		output := mocks.NewMockFiles(ctrl)

		m, err := minifier.New(minifier.Tdewolff, nil)
		require.NoError(t, err)

		output.EXPECT().
			WriteFile(gomock.Any()).
			DoAndReturn(func(file *files.File) error {
				assert.Equal(t, "release", file.ID)
				assert.Equal(t, "bundle.min.js", file.Name)
				assert.NotEmpty(t, file.Data)
				return nil
			}).
			Times(1)

		args := &parser.Arguments{
			Backend:    minifier.Tdewolff,
			BuildID:    "release",
			OutputName: "bundle.min.js",
			Separator:  "\n",
		}

		require.NoError(t, run(context.Background(), args, m, output, strings.NewReader("var a = 1;"), &bytes.Buffer{}))
	})
}

func TestNewOutput(t *testing.T) {
	t.Run("should use standard output by default", func(t *testing.T) {
		output, err := newOutput(&parser.Arguments{})

		require.NoError(t, err)
		assert.Nil(t, output)
	})

	t.Run("should write to the output directory", func(t *testing.T) {
		dir := t.TempDir()

		output, err := newOutput(&parser.Arguments{OutputDir: dir})
		require.NoError(t, err)

		require.NoError(t, output.WriteFile(&files.File{ID: "build", Name: "bundle.min.js", Data: []byte("x;")}))

		data, err := os.ReadFile(filepath.Join(dir, "build", "bundle.min.js"))
		require.NoError(t, err)
		assert.Equal(t, []byte("x;"), data)
	})
}
