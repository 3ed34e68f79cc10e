//go:generate mockgen -source=files.go -destination=mocks/mock_files.go -package=mocks

package files

// Files stores the minified bundles produced by a build, grouped by the
// build id.
type Files interface {
	WriteFile(file *File) error
	GetFile(id string, name string) ([]byte, error)
}

type File struct {
	ID   string
	Name string
	Data []byte
}

type LocalConfig struct {
	LocalRootPath string
}

type S3Config struct {
	BucketName string
}

type Config struct {
	Local *LocalConfig
	S3    *S3Config

	// ForceLocalMode writes to disk even when a bucket has been configured.
	ForceLocalMode bool
}

// NewFilesHandler returns the S3 handler when a bucket is configured,
// otherwise files are written below the local root path.
func NewFilesHandler(config *Config) (Files, error) {
	if !config.ForceLocalMode && config.S3 != nil && config.S3.BucketName != "" {
		return newS3Files(config.S3)
	}

	return newLocalFiles(config.Local)
}
