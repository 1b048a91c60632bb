package bulkdata

import "errors"

var (
	// ErrEmpty is returned when an empty BulkData is written to a Repository.
	ErrEmpty = errors.New("bulkdata: empty bulk data")

	// ErrHashMismatch is returned when a fetched payload does not match the
	// hash recorded in its Ref.
	ErrHashMismatch = errors.New("bulkdata: payload hash mismatch")

	// ErrAssetNotFound is returned by Catalog.Lookup for unknown assets.
	ErrAssetNotFound = errors.New("bulkdata: asset not found")

	// ErrConcurrentModification is returned by Catalog.Commit when the
	// asset's version moved since the caller read it.
	ErrConcurrentModification = errors.New("bulkdata: concurrent modification detected")
)
