package davkit

// Filter selects resources of a specific content type. Callers hold the
// interface, never a concrete variant, so filters for different formats are
// handled uniformly.
type Filter interface {
	// ContentType returns the content type this filter applies to.
	ContentType() string

	// Check reports whether the filter matches a resource.
	Check(name string, f File) (bool, error)

	// IndexKeys returns the indexes that could be used to apply this
	// filter, as an AND-list of OR-options.
	IndexKeys() [][]IndexKey

	// CheckFromIndexes is the fast path: decide from precomputed index
	// values without loading the full resource.
	CheckFromIndexes(name string, indexes IndexMap) (bool, error)
}
