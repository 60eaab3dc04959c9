package prim

import "fmt"

// DuplicateNameError reports a registration conflict: a descriptor was already
// registered under the same name at the same tier. The first registration is
// retained unchanged.
type DuplicateNameError struct {
	// Name is the conflicting primitive name.
	Name string

	// Tier is "operation" or "primitive", naming the tier that conflicted.
	Tier string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("primitive %q already registered at %s tier", e.Name, e.Tier)
}

// UnknownPrimitiveError reports a lookup for a name with no registration.
type UnknownPrimitiveError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownPrimitiveError) Error() string {
	return fmt.Sprintf("unknown primitive %q", e.Name)
}

// MissingHookError reports that a caller required concrete execution of a
// primitive that has no execution hook attached.
type MissingHookError struct {
	Primitive string
}

// Error implements the error interface.
func (e *MissingHookError) Error() string {
	return fmt.Sprintf("primitive %q has no concrete execution hook", e.Primitive)
}
