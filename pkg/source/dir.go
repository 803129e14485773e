package source

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Dir reads yoe.json, connect.json and metrics.json (or the configured
// names) from a directory.
type Dir struct {
	Path  string
	Files survey.Files
}

// NewDir returns a directory source. Empty file names take the defaults.
func NewDir(path string, files survey.Files) *Dir {
	def := survey.DefaultFiles()
	if files.Roles == "" {
		files.Roles = def.Roles
	}
	if files.Connect == "" {
		files.Connect = def.Connect
	}
	if files.Orgs == "" {
		files.Orgs = def.Orgs
	}
	return &Dir{Path: path, Files: files}
}

func (d *Dir) Name() string { return d.Path }

func (d *Dir) Load(ctx context.Context) (*survey.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(d.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset directory %s", d.Path)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", d.Path)
	}

	ds, err := survey.LoadDir(d.Path, d.Files)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no dataset files in %s", d.Path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "load dataset")
	}
	return ds, nil
}
