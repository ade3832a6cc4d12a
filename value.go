package logstore

import (
	"fmt"

	"github.com/logward/go-logstore/store"
)

// ValueKind discriminates the shapes a metadata value can take on the
// facade side. Only strings and describable values survive conversion to
// the store; lists and nested maps are dropped.
type ValueKind uint8

const (
	KindString ValueKind = iota
	KindDescribable
	KindList
	KindMap
)

// Value is one facade-side metadata value.
type Value struct {
	kind ValueKind
	str  string
	obj  fmt.Stringer
	list []Value
	m    Metadata
}

func String(str string) Value {
	return Value{kind: KindString, str: str}
}

// Stringify wraps a value that describes itself as text. The text form is
// not taken here; it is evaluated when the value is converted for
// persistence.
func Stringify(obj fmt.Stringer) Value {
	return Value{kind: KindDescribable, obj: obj}
}

func List(values ...Value) Value {
	return Value{kind: KindList, list: values}
}

func Nested(m Metadata) Value {
	return Value{kind: KindMap, m: m}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// persistable narrows the value into the store's union. The second return
// is false for shapes the store cannot record; returning no value is the
// only failure signal, there is no error path. A String() that panics is
// left to panic.
func (v Value) persistable() (store.Value, bool) {
	switch v.kind {
	case KindString:
		return store.Text(v.str), true
	case KindDescribable:
		return store.Described(v.obj.String()), true
	case KindList, KindMap:
		return store.Value{}, false
	}

	return store.Value{}, false
}
