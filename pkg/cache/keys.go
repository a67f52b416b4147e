package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys.
type Keyer interface {
	// DataKey identifies a parsed data file by content hash and format.
	DataKey(contentHash, format string) string
	// ArtifactKey identifies a rendered output for a data hash.
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string
	// ChartKey identifies a live chart rendering served over HTTP.
	ChartKey(dataset, revision, format string) string
}

// ArtifactKeyOpts are the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	ConfigHash string  `json:"config_hash"`
	Animate    bool    `json:"animate,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DataKey(contentHash, format string) string {
	return hashKey("data", contentHash, format)
}

func (DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dataHash, opts)
}

func (DefaultKeyer) ChartKey(dataset, revision, format string) string {
	return "chart:" + dataset + ":" + revision + ":" + format
}

var _ Keyer = DefaultKeyer{}

// hashKey returns "kind:" followed by the SHA-256 of the JSON-encoded parts.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
