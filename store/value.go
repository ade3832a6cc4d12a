package store

// ValueKind discriminates the two shapes the store is able to persist.
type ValueKind uint8

const (
	// ValueText is a plain string value.
	ValueText ValueKind = iota

	// ValueDescribed is the textual form of a value that was not a string
	// itself but could describe itself as one. The distinction survives
	// persistence so readers can tell original strings apart.
	ValueDescribed
)

// Value is a persistable metadata value. Anything the store accepts is
// text in the end; Kind records where the text came from.
type Value struct {
	Kind ValueKind
	Text string
}

func Text(str string) Value {
	return Value{Kind: ValueText, Text: str}
}

func Described(str string) Value {
	return Value{Kind: ValueDescribed, Text: str}
}
