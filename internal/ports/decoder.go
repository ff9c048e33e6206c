package ports

// Decoder turns the bytes of a property-list file into its generic
// key/value graph: dictionaries become map[string]any, arrays []any and
// every scalar a string. The concrete implementation lives in
// internal/adapters/plist.
type Decoder interface {
	Decode(data []byte) (map[string]any, error)
}
