package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys.
type Keyer interface {
	// DatasetKey keys a dataset snapshot by where it was loaded from.
	DatasetKey(source string) string

	// ArtifactKey keys a rendered artifact by the dataset content hash and
	// the options that shaped it.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs besides the dataset.
type ArtifactKeyOpts struct {
	Chart      string  `json:"chart"`
	Format     string  `json:"format"`
	ConfigHash string  `json:"config_hash"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey returns "dataset:<hash(source)>".
func (DefaultKeyer) DatasetKey(source string) string {
	return hashKey("dataset", source)
}

// ArtifactKey returns "artifact:<hash(datasetHash, opts)>".
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Dataset and config hashes use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
