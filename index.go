package davkit

type (
	IndexKey   = string
	IndexValue = string
	IndexMap   = map[IndexKey][]IndexValue
)

// Indexed is implemented by Files that can expose named index values,
// letting filters run without reparsing the full contents.
type Indexed interface {
	Index(key IndexKey) []IndexValue
}

// Indexes collects the index values for each requested key.
func Indexes(f Indexed, keys []IndexKey) IndexMap {
	ret := IndexMap{}

	for _, key := range keys {
		ret[key] = f.Index(key)
	}

	return ret
}
