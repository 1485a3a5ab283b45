package importer

import (
	"context"
)

// HashLookup finds import hashes that are already stored.
type HashLookup interface {
	ExistingImportHashes(ctx context.Context, hashes []string) (map[string]bool, error)
}

// RecordPreview is a record as shown for review before the import is committed.
type RecordPreview struct {
	Record    Record
	Hash      string
	Duplicate bool // An expense with the same hash is stored or appears earlier in the file
}

// Preview marks records that duplicate stored expenses or earlier records.
func Preview(ctx context.Context, records []Record, lookup HashLookup) ([]RecordPreview, error) {
	previews := make([]RecordPreview, 0, len(records))
	hashes := make([]string, 0, len(records))
	for _, r := range records {
		h := r.Hash()
		previews = append(previews, RecordPreview{Record: r, Hash: h})
		hashes = append(hashes, h)
	}

	existing, err := lookup.ExistingImportHashes(ctx, hashes)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(previews))
	for i := range previews {
		h := previews[i].Hash
		previews[i].Duplicate = existing[h] || seen[h]
		seen[h] = true
	}

	return previews, nil
}
