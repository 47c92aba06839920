package search

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// SnapshotVersion is the format version written by Export.
const SnapshotVersion = 1

// Snapshot is the serializable state of an index. Importing a snapshot yields an index
// that answers every query exactly like the exported one.
type Snapshot struct {
	Version   int        `json:"version"`
	Options   Options    `json:"options"`
	Documents []Document `json:"documents"`
}

// Export captures the index state.
func (i *Index) Export() Snapshot {
	return Snapshot{
		Version:   SnapshotVersion,
		Options:   i.options,
		Documents: i.sortedDocuments(),
	}
}

// Import rebuilds an index from a snapshot.
func Import(snapshot Snapshot) (*Index, error) {
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported search snapshot version %d", snapshot.Version)
	}

	return BuildIndex(snapshot.Documents, snapshot.Options)
}

// ExportIndex serializes the index to JSON.
func ExportIndex(i *Index) ([]byte, error) {
	data, err := json.Marshal(i.Export())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search index: %w", err)
	}
	return data, nil
}

// LoadIndex deserializes an index written by ExportIndex.
func LoadIndex(data []byte) (*Index, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search index: %w", err)
	}

	return Import(snapshot)
}

// WriteJSON serializes the index to a JSON file.
func (i *Index) WriteJSON(fsys afero.Fs, outputPath string) error {
	data, err := ExportIndex(i)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(outputPath), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := afero.WriteFile(fsys, outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write search index file: %w", err)
	}

	return nil
}
