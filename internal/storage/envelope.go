// Package storage persists the geo collection as a single named record.
//
// The record body is the envelope the browser client's persist layer wrote:
// {"state":{"geos":[...]},"version":0}. Backends differ only in
// where that record lives.
package storage

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

// Version is the envelope version this build reads and writes
const Version = 0

// DefaultNamespace names the persisted record
const DefaultNamespace = "events-storage"

var (
	// ErrNotFound is returned by Load when no record has been persisted yet
	ErrNotFound = errors.New("no persisted state")
	// ErrCorrupt is returned when a record cannot be decoded or fails its digest check
	ErrCorrupt = errors.New("persisted state is corrupt")
	// ErrUnsupportedVersion is returned for records written by another envelope version
	ErrUnsupportedVersion = errors.New("unsupported persisted state version")
)

type envelope struct {
	State   *snapshot `json:"state"`
	Version *int      `json:"version"`
}

type snapshot struct {
	Geos []model.Geo `json:"geos"`
}

// Encode serializes the collection into the persisted envelope
func Encode(geos []model.Geo) ([]byte, error) {
	if geos == nil {
		geos = []model.Geo{}
	}
	v := Version
	data, err := json.Marshal(envelope{State: &snapshot{Geos: geos}, Version: &v})
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// Decode parses a persisted envelope back into a collection
func Decode(data []byte) ([]model.Geo, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Version != nil && *env.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *env.Version)
	}
	if env.State == nil || env.State.Geos == nil {
		return nil, fmt.Errorf("%w: missing geos", ErrCorrupt)
	}
	for i := range env.State.Geos {
		if env.State.Geos[i].Events == nil {
			env.State.Geos[i].Events = []model.Event{}
		}
	}
	return env.State.Geos, nil
}

// Digest returns the hex BLAKE2b-256 digest of a record body
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func verify(data []byte, digest string) error {
	if digest == "" {
		return nil
	}
	if got := Digest(data); got != digest {
		return fmt.Errorf("%w: digest mismatch", ErrCorrupt)
	}
	return nil
}
