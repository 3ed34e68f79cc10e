package files

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type LocalFiles struct {
	config *LocalConfig
}

// newLocalFiles is the local handler used during development to write the
// bundles to disk instead of a S3 bucket.
func newLocalFiles(config *LocalConfig) (LocalFiles, error) {
	if config == nil || config.LocalRootPath == "" {
		return LocalFiles{}, errors.New("local root path is required")
	}

	return LocalFiles{config: config}, nil
}

func (l LocalFiles) WriteFile(file *File) error {
	folderDirectory := filepath.Join(l.config.LocalRootPath, file.ID)
	filePath := filepath.Join(folderDirectory, file.Name)

	if err := os.MkdirAll(folderDirectory, 0o750); err != nil {
		return errors.Wrap(err, "failed to make required directories")
	}

	writeFile, writeFileErr := os.Create(filePath)

	if writeFileErr != nil {
		return errors.Wrapf(writeFileErr, "failed to create %s file", file.Name)
	}

	if err := writeAndClose(writeFile, file); err != nil {
		return err
	}

	log.Debug().Str("path", filePath).Msg("wrote local file")
	return nil
}

// writeAndClose reports a failed close as a failed write, buffered data is
// only known to be on disk once the close succeeds.
func writeAndClose(w io.WriteCloser, file *File) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "failed to close %s", file.Name)
		}
	}()

	if _, writeErr := w.Write(file.Data); writeErr != nil {
		return errors.Wrapf(writeErr, "failed to write %s", file.Name)
	}

	return nil
}

func (l LocalFiles) GetFile(id string, name string) ([]byte, error) {
	filePath := filepath.Join(l.config.LocalRootPath, id, name)

	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "cannot locate file %s", name)
	}

	data, err := os.ReadFile(filePath)

	if err != nil {
		return nil, errors.Wrapf(err, "failed to get the local file %s by id %s", name, id)
	}

	return data, nil
}
