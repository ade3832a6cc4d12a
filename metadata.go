package logstore

import "github.com/logward/go-logstore/store"

// Metadata is keyed context attached to log calls. Keys are unique;
// merging is last-write-wins and insertion order carries no meaning.
type Metadata map[string]Value

// Provider produces a fresh metadata snapshot. It is invoked exactly once
// per log call, at call time.
type Provider func() Metadata

func (m Metadata) clone() Metadata {
	if m == nil {
		return nil
	}

	c := make(Metadata, len(m))

	for k, v := range m {
		c[k] = v
	}

	return c
}

// mergeMetadata combines the three metadata sources of one log call.
// Precedence from lowest to highest: provider snapshot, handler static
// metadata, per-call metadata. The most call-specific source wins on key
// collision. Pure apart from the single provider invocation.
func mergeMetadata(provider Provider, static, call Metadata) Metadata {
	var snapshot Metadata

	if provider != nil {
		snapshot = provider()
	}

	merged := make(Metadata, len(snapshot)+len(static)+len(call))

	for k, v := range snapshot {
		merged[k] = v
	}

	for k, v := range static {
		merged[k] = v
	}

	for k, v := range call {
		merged[k] = v
	}

	return merged
}

// persistMetadata runs the narrowing conversion over every entry. Entries
// whose value has no persistable form are absent from the result; their
// siblings are unaffected.
func persistMetadata(m Metadata) map[string]store.Value {
	out := make(map[string]store.Value, len(m))

	for k, v := range m {
		if pv, ok := v.persistable(); ok {
			out[k] = pv
		}
	}

	return out
}
