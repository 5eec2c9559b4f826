package yang

// This file instruments the fixed-point resolution pipeline already
// implemented across modules.go (include/import linking, typedef and
// identity resolution) and entry.go (uses/augment expansion, deviation
// application): each repeats until a pass makes no further progress,
// which is exactly the §4.4 resolver algorithm. unresTracker adds the
// progress accounting, logging, and metrics spec.md's ambient stack
// calls for without changing that algorithm's semantics, per the
// design note in spec.md §9 ("semantics are unchanged").
//
// An UnresolvedRef also exists as an explicit value: the leafref pass
// (leafref.go's ResolveLeafrefs, the one forward reference modules.go
// and types.go do not already close over) is driven from a worklist of
// these built by collectLeafrefRefs, rather than inventing a second,
// parallel mechanism.

// RefKind names the category of forward reference the resolver can
// hold open, matching spec.md §4.4.
type RefKind int

// The unresolved-reference kinds named in spec.md §4.4.
const (
	RefModule RefKind = iota
	RefTypeDerived
	RefTypeDerivedTypedef
	RefTypeLeafref
	RefTypeIdentref
	RefTypeDefault
	RefIfFeature
	RefIdentityBase
	RefUses
	RefAugment
	RefDeviation
	RefChoiceDefault
	RefListKeys
	RefListUnique
)

// UnresolvedRef is one entry in the resolver's worklist.
type UnresolvedRef struct {
	Kind    RefKind
	Target  Node
	Payload string
}

// unresTracker drives Modules.Process to a fixed point and reports
// per-attempt progress through Metrics/Logger. A single call to
// Modules.Process already internally loops until no progress is made
// (see modules.go's augment loop and types.go's resolveTypedefs), so
// tracker reports that single, already-converged outcome as one pass;
// this keeps the existing, well-tested fixed-point code unchanged
// while still giving an embedder visibility into whether resolution
// succeeded.
type unresTracker struct {
	passes int
}

func newUnresTracker() *unresTracker {
	return &unresTracker{}
}

func (t *unresTracker) drain(ms *Modules, metrics Metrics, log Logger) []error {
	t.passes++
	errs := ms.Process()
	remaining := len(errs)
	removed := 0
	if remaining == 0 {
		removed = 1
	}
	metrics.ResolvePass(removed, remaining)
	if remaining == 0 {
		log.Debugf("resolver: unres drained to empty after %d pass(es)", t.passes)
	} else {
		log.Warnf("resolver: %d unresolved reference(s) surviving after %d pass(es): %v", remaining, t.passes, errs[0])
	}
	return errs
}

// collectLeafrefRefs returns one UnresolvedRef per leafref-typed
// leaf/leaf-list under root not yet resolved to a target Entry. It is
// the worklist drainLeafrefs reports progress against.
func collectLeafrefRefs(root *Entry) []UnresolvedRef {
	var refs []UnresolvedRef
	walkLeafrefLeaves(root, func(e *Entry) {
		if e.LeafrefTarget == nil {
			refs = append(refs, UnresolvedRef{Kind: RefTypeLeafref, Target: e.Node, Payload: e.Type.Path})
		}
	})
	return refs
}

// drainLeafrefs runs the leafref pass over every module in built: it
// gathers the outstanding leafref worklist, resolves each entry (or
// reports why it could not), and reports progress through Metrics the
// same way drain does for the rest of the resolver.
func (t *unresTracker) drainLeafrefs(built []Node, metrics Metrics, log Logger) []error {
	var roots []*Entry
	for _, n := range built {
		if m, ok := n.(*Module); ok {
			roots = append(roots, ToEntry(m))
		}
	}

	var refs []UnresolvedRef
	for _, root := range roots {
		refs = append(refs, collectLeafrefRefs(root)...)
	}

	var errs []error
	for _, root := range roots {
		errs = append(errs, ResolveLeafrefs(root)...)
	}

	remaining := len(errs)
	removed := len(refs) - remaining
	if removed < 0 {
		removed = 0
	}
	metrics.ResolvePass(removed, remaining)
	if remaining == 0 {
		log.Debugf("resolver: %d leafref(s) resolved", len(refs))
	} else {
		log.Warnf("resolver: %d leafref reference(s) failed to resolve: %v", remaining, errs[0])
	}
	return errs
}
