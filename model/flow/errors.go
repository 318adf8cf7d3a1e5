package flow

import (
	"errors"
	"fmt"
	"strings"
)

// Flow error kinds. Callers should use errors.Is rather than comparing messages.
var (
	// ErrInvalidContainer is returned when parameters, meta-info or components are not an ordered map.
	ErrInvalidContainer = errors.New("flow: invalid container")

	// ErrKeyMismatch is returned when parameters and parameters meta-info keys differ.
	ErrKeyMismatch = errors.New("flow: parameter key mismatch")

	// ErrNotSerializable is returned when a value cannot be represented in the wire format.
	ErrNotSerializable = errors.New("flow: value not serializable")

	// ErrMissingField is returned when a mandatory field is absent from a flow document.
	ErrMissingField = errors.New("flow: missing mandatory field")

	// ErrInvalidArgument is returned for empty or malformed registry lookup arguments.
	ErrInvalidArgument = errors.New("flow: invalid argument")

	// ErrNotComparable is returned when equality is requested against a non flow value.
	ErrNotComparable = errors.New("flow: not comparable")

	// ErrAlreadyPublished is returned when publishing a flow that already has a registry id.
	ErrAlreadyPublished = errors.New("flow: already published")
)

// KeyMismatchError names the parameters present on only one side of parameters / meta-info.
type KeyMismatchError struct {
	OnlyInParameters []string
	OnlyInMetaInfo   []string
}

func (e *KeyMismatchError) Error() string {
	var parts []string
	if len(e.OnlyInParameters) > 0 {
		parts = append(parts, fmt.Sprintf("parameter %v only in parameters, but not in parameters meta info", e.OnlyInParameters))
	}
	if len(e.OnlyInMetaInfo) > 0 {
		parts = append(parts, fmt.Sprintf("parameter %v only in parameters meta info, but not in parameters", e.OnlyInMetaInfo))
	}
	return ErrKeyMismatch.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports ErrKeyMismatch equivalence.
func (e *KeyMismatchError) Is(target error) bool {
	return target == ErrKeyMismatch
}
