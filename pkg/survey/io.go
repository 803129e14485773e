package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Files names the dataset files within a directory. An empty name skips
// that part.
type Files struct {
	Roles   string `toml:"roles" yaml:"roles" json:"roles"`
	Connect string `toml:"connect" yaml:"connect" json:"connect"`
	Orgs    string `toml:"orgs" yaml:"orgs" json:"orgs"`
}

// DefaultFiles returns the file names the survey exporter writes.
func DefaultFiles() Files {
	return Files{
		Roles:   "yoe.json",
		Connect: "connect.json",
		Orgs:    "metrics.json",
	}
}

// ReadRoles decodes a JSON array of roles from r.
func ReadRoles(r io.Reader) ([]Role, error) {
	var roles []Role
	if err := json.NewDecoder(r).Decode(&roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return roles, nil
}

// ReadConnect decodes a connect table from r.
func ReadConnect(r io.Reader) (*Connect, error) {
	var c Connect
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode connect: %w", err)
	}
	return &c, nil
}

// ReadOrgs decodes a JSON array of orgs from r.
func ReadOrgs(r io.Reader) ([]Org, error) {
	var orgs []Org
	if err := json.NewDecoder(r).Decode(&orgs); err != nil {
		return nil, fmt.Errorf("decode orgs: %w", err)
	}
	return orgs, nil
}

// ImportRoles reads the roles file at path.
func ImportRoles(path string) ([]Role, error) {
	return importFile(path, ReadRoles)
}

// ImportConnect reads the connect file at path.
func ImportConnect(path string) (*Connect, error) {
	return importFile(path, ReadConnect)
}

// ImportOrgs reads the orgs file at path.
func ImportOrgs(path string) ([]Org, error) {
	return importFile(path, ReadOrgs)
}

func importFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return v, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// LoadDir reads the dataset files named by files from dir. Missing files are
// skipped; a file that exists but does not decode is an error. LoadDir
// returns an error wrapping fs.ErrNotExist if dir holds none of the files.
func LoadDir(dir string, files Files) (*Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset dir %s: not a directory", dir)
	}

	ds := &Dataset{}
	found := 0

	if files.Roles != "" {
		roles, err := ImportRoles(filepath.Join(dir, files.Roles))
		switch {
		case err == nil:
			ds.Roles = roles
			found++
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}
	if files.Connect != "" {
		c, err := ImportConnect(filepath.Join(dir, files.Connect))
		switch {
		case err == nil:
			ds.Connect = c
			found++
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}
	if files.Orgs != "" {
		orgs, err := ImportOrgs(filepath.Join(dir, files.Orgs))
		switch {
		case err == nil:
			ds.Orgs = orgs
			found++
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	if found == 0 {
		return nil, fmt.Errorf("no dataset files in %s: %w", dir, fs.ErrNotExist)
	}
	return ds, nil
}

// ReadDataset decodes a bundled dataset ({"roles", "connect", "orgs"}) from r.
func ReadDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// MarshalDataset encodes ds as compact JSON. Field order follows the struct
// definitions, so equal datasets encode to equal bytes.
func MarshalDataset(ds *Dataset) ([]byte, error) {
	if ds == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(ds)
}
