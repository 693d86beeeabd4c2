package orbitsdk

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SyncDirection is the direction of a transfer relative to the local target
type SyncDirection string

const (
	SyncUp   SyncDirection = "up"
	SyncDown SyncDirection = "down"
)

func (d SyncDirection) String() string {
	return string(d)
}

// Valid reports whether d is one of SyncUp or SyncDown
func (d SyncDirection) Valid() bool {
	return d == SyncUp || d == SyncDown
}

// ParseSyncDirection parses "up" or "down", ignoring case
func ParseSyncDirection(s string) (SyncDirection, error) {
	d := SyncDirection(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// NewTransactionID returns a fresh client-side transaction id
func NewTransactionID() string {
	return uuid.NewString()
}

// ===================================================================================================

// SyncSource is one file taking part in a sync
type SyncSource struct {
	// path of the file, relative to the mount
	Filepath string
	// client supplied id, the only handle for querying status later
	TransactionID string
	// content hash, empty on a first upload attempt
	Hash string
	// if empty, the service uses the upload time
	LastModified string
	// opaque to the client
	Metadata map[string]any
}

// NewSyncSource creates a source with its own empty metadata map
func NewSyncSource(filepath, transactionID string) SyncSource {
	return SyncSource{
		Filepath:      filepath,
		TransactionID: transactionID,
		Metadata:      make(map[string]any),
	}
}

func (s SyncSource) Canonical() any {
	metadata := s.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return map[string]any{
		"filepath":       s.Filepath,
		"transaction_id": s.TransactionID,
		"hash":           s.Hash,
		"last_modified":  s.LastModified,
		"metadata":       metadata,
	}
}

// SyncTarget is the destination path of a sync
type SyncTarget struct {
	Path string
}

func (t SyncTarget) Canonical() any {
	return map[string]any{
		"path": t.Path,
	}
}

// SyncPayload is the unit submitted to the service. One target serves all sources.
type SyncPayload struct {
	Direction SyncDirection
	Sources   []SyncSource
	Target    SyncTarget
}

func NewSyncPayload(direction SyncDirection, target SyncTarget, sources ...SyncSource) *SyncPayload {
	return &SyncPayload{
		Direction: direction,
		Sources:   sources,
		Target:    target,
	}
}

// TransactionIDs returns the transaction id of every source, in order
func (p *SyncPayload) TransactionIDs() []string {
	ids := make([]string, 0, len(p.Sources))
	for _, src := range p.Sources {
		ids = append(ids, src.TransactionID)
	}
	return ids
}

func (p *SyncPayload) Canonical() any {
	sources := make([]any, len(p.Sources))
	for i, src := range p.Sources {
		sources[i] = src
	}

	return map[string]any{
		"direction": string(p.Direction),
		"sources":   sources,
		"target":    p.Target,
	}
}

var (
	_ Canonicalizer = SyncSource{}
	_ Canonicalizer = SyncTarget{}
	_ Canonicalizer = (*SyncPayload)(nil)
)
