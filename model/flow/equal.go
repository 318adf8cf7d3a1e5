package flow

import (
	"fmt"

	"go.alis.build/utils"
)

// Equal reports whether two values are structurally equal flows.
// It returns ErrNotComparable if either operand is not a *Flow.
func Equal(a, b interface{}) (bool, error) {
	left, ok := a.(*Flow)
	if !ok {
		return false, fmt.Errorf("%w: %T", ErrNotComparable, a)
	}
	right, ok := b.(*Flow)
	if !ok {
		return false, fmt.Errorf("%w: %T", ErrNotComparable, b)
	}
	return left.Equal(right), nil
}

// Equal compares flows ignoring registry assigned fields (id, uploader, version, upload date,
// binary references) and the model. Parameters and components must share key sets; their
// values are then compared pairwise in map order.
func (f *Flow) Equal(other *Flow) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Description != other.Description ||
		f.ExternalVersion != other.ExternalVersion ||
		!equalString(f.Language, other.Language) ||
		!equalString(f.Dependencies, other.Dependencies) ||
		!equalTags(f.Tags, other.Tags) {
		return false
	}
	if !equalMetaInfo(f.ParametersMetaInfo, other.ParametersMetaInfo) {
		return false
	}
	if f.GetName() != other.GetName() {
		return false
	}
	if !zipEqual(f.Parameters, other.Parameters, func(a, b string) bool { return a == b }) {
		return false
	}
	return zipEqual(f.Components, other.Components, func(a, b *Flow) bool { return a.Equal(b) })
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// equalMetaInfo compares meta-info as an ordered mapping: same key sequence, equal records
func equalMetaInfo(a, b *utils.OrderedMap[string, *ParameterMeta]) bool {
	aKeys, bKeys := keysOf(a), keysOf(b)
	if !equalTags(aKeys, bKeys) {
		return false
	}
	for _, key := range aKeys {
		aMeta, _ := a.Get(key)
		bMeta, _ := b.Get(key)
		if !aMeta.Equal(bMeta) {
			return false
		}
	}
	return true
}

// zipEqual checks key set equality, then compares values position by position.
// The pairing is by insertion order, not by key.
func zipEqual[V any](a, b *utils.OrderedMap[string, V], equal func(V, V) bool) bool {
	aKeys, bKeys := keysOf(a), keysOf(b)
	if len(aKeys) != len(bKeys) {
		return false
	}
	bSet := keySet(bKeys)
	for _, key := range aKeys {
		if !bSet[key] {
			return false
		}
	}
	aValues, bValues := valuesOf(a, aKeys), valuesOf(b, bKeys)
	for i := range aValues {
		if !equal(aValues[i], bValues[i]) {
			return false
		}
	}
	return true
}

func keysOf[V any](m *utils.OrderedMap[string, V]) []string {
	if m == nil {
		return nil
	}
	return m.Keys()
}

func valuesOf[V any](m *utils.OrderedMap[string, V], keys []string) []V {
	ret := make([]V, 0, len(keys))
	for _, key := range keys {
		value, _ := m.Get(key)
		ret = append(ret, value)
	}
	return ret
}
