package prim

import "sort"

// OperationDefaults is the operation-tier configuration: what it takes for a
// primitive to exist as an executable operation, before (or without) any
// inference or gradient rule being supplied.
type OperationDefaults struct {
	// Arity is the expected argument count (0 = unchecked, ArityVariadic = any).
	Arity int

	// Doc is a one-line description.
	Doc string

	// Hook is the optional concrete execution hook.
	Hook Hook
}

// PrimitiveDefaults is the primitive-tier configuration: the inference-capable
// specialization. Its embedded operation-level fields, where set, override the
// operation-tier registration field-by-field; zero-valued fields inherit.
type PrimitiveDefaults struct {
	OperationDefaults

	// Infer is the inference rule. Nil is legal (the stub case) but inference
	// over the primitive then fails fast with UnimplementedInferenceError.
	Infer Rule

	// Grad is the optional differentiation rule.
	Grad GradRule
}

// entry holds both registration tiers for one name. Either tier may be absent.
type entry struct {
	op     *OperationDefaults
	prim   *PrimitiveDefaults
	merged *Primitive
}

// Registry is a catalog mapping primitive names to descriptors.
//
// A Registry is an explicit object, not ambient package state, so independent
// registries (e.g. per test) can coexist. Registration is expected to complete
// before any inference run begins; the registry is read-only during inference
// and carries no lock. Callers registering concurrently with an active run
// must synchronize externally.
type Registry struct {
	entries map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// RegisterOperation registers name at the operation tier: an executable
// operation with no inference rule. Fails with DuplicateNameError if an
// operation-tier registration for name already exists; the first registration
// is retained unchanged.
//
// The returned Primitive is interned: if the name is later upgraded with
// RegisterPrimitive, the same pointer observes the merged descriptor.
func (r *Registry) RegisterOperation(name string, d OperationDefaults) (*Primitive, error) {
	e := r.entries[name]
	if e != nil && e.op != nil {
		return nil, &DuplicateNameError{Name: name, Tier: "operation"}
	}
	if e == nil {
		e = &entry{merged: &Primitive{name: name}}
		r.entries[name] = e
	}
	defaults := d
	e.op = &defaults
	r.remerge(e)
	return e.merged, nil
}

// RegisterPrimitive registers name at the primitive tier: the inference-capable
// variant. It may supersede an existing operation-tier registration; primitive
// fields override operation fields one by one and absent fields inherit. Fails
// with DuplicateNameError if a primitive-tier registration already exists.
func (r *Registry) RegisterPrimitive(name string, d PrimitiveDefaults) (*Primitive, error) {
	e := r.entries[name]
	if e != nil && e.prim != nil {
		return nil, &DuplicateNameError{Name: name, Tier: "primitive"}
	}
	if e == nil {
		e = &entry{merged: &Primitive{name: name}}
		r.entries[name] = e
	}
	defaults := d
	e.prim = &defaults
	r.remerge(e)
	return e.merged, nil
}

// descriptor merges both tiers: operation fields first, primitive fields
// overriding where set, Infer and Grad coming from the primitive tier only.
func (e *entry) descriptor(name string) Descriptor {
	desc := Descriptor{Name: name}
	if e.op != nil {
		desc.Arity = e.op.Arity
		desc.Doc = e.op.Doc
		desc.Hook = e.op.Hook
	}
	if e.prim != nil {
		if e.prim.Arity != 0 {
			desc.Arity = e.prim.Arity
		}
		if e.prim.Doc != "" {
			desc.Doc = e.prim.Doc
		}
		if e.prim.Hook != nil {
			desc.Hook = e.prim.Hook
		}
		desc.Infer = e.prim.Infer
		desc.Grad = e.prim.Grad
	}
	return desc
}

// remerge rebuilds the merged descriptor in place, so primitives already
// captured by graph nodes see the upgrade.
func (r *Registry) remerge(e *entry) {
	e.merged.desc = e.descriptor(e.merged.name)
}

// Lookup returns the primitive registered under name.
// Fails with UnknownPrimitiveError if absent.
func (r *Registry) Lookup(name string) (*Primitive, error) {
	e := r.entries[name]
	if e == nil {
		return nil, &UnknownPrimitiveError{Name: name}
	}
	return e.merged, nil
}

// Defaults returns the merged descriptor view for name: operation-tier fields
// with primitive-tier overrides applied.
func (r *Registry) Defaults(name string) (Descriptor, error) {
	e := r.entries[name]
	if e == nil {
		return Descriptor{}, &UnknownPrimitiveError{Name: name}
	}
	return e.merged.desc, nil
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.entries)
}
