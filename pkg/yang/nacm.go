package yang

// This file implements the NACM flag inheritance described in
// spec.md §4.5/§4.8: after uses/augment/deviation rewriting, each
// non-grouping data node inherits its parent's NACM flags OR-combined
// with its own. NACM annotations arrive as extension statements using
// the ietf-netconf-acm module's "nacm" prefix (RFC 8341 §3.2); goyang
// already collects unknown-prefixed statements into Entry.Exts, so
// this file only needs to interpret them.

import "strings"

// NACMFlags is a bitmask of the access-control annotations defined by
// ietf-netconf-acm and inherited down the schema tree.
type NACMFlags uint8

// The NACM flags. DenyWrite subsumes create/update/delete; DenyAll
// additionally denies read, matching the two annotations
// ietf-netconf-acm defines (RFC 8341 §3.2.3/3.2.4).
const (
	NACMNone      NACMFlags = 0
	NACMDenyWrite NACMFlags = 1 << 0
	NACMDenyAll   NACMFlags = 1 << 1
)

// String renders f as the union of its set flag names, e.g.
// "deny-write|deny-all", or "none" if unset.
func (f NACMFlags) String() string {
	if f == NACMNone {
		return "none"
	}
	var parts []string
	if f&NACMDenyWrite != 0 {
		parts = append(parts, "deny-write")
	}
	if f&NACMDenyAll != 0 {
		parts = append(parts, "deny-all")
	}
	s := parts[0]
	for _, p := range parts[1:] {
		s += "|" + p
	}
	return s
}

const nacmExtPrefix = "nacm:"

func nacmFlagsOf(e *Entry) NACMFlags {
	var f NACMFlags
	for _, ext := range e.Exts {
		if !strings.HasPrefix(ext.Keyword, nacmExtPrefix) {
			continue
		}
		switch strings.TrimPrefix(ext.Keyword, nacmExtPrefix) {
		case "default-deny-write":
			f |= NACMDenyWrite
		case "default-deny-all":
			f |= NACMDenyAll
		}
	}
	return f
}

// PropagateNACM walks root's data tree depth-first, giving every
// non-grouping Entry its own NACM annotations OR-combined with its
// parent's effective flags. Grouping nodes do not participate (they
// are not expected to still be present post rewriting, but are
// skipped defensively if encountered, per spec.md §4.5).
func PropagateNACM(root *Entry) {
	propagateNACM(root, NACMNone)
}

func propagateNACM(e *Entry, inherited NACMFlags) {
	if e == nil {
		return
	}
	if _, ok := e.Node.(*Grouping); ok {
		return
	}
	e.NACM = inherited | nacmFlagsOf(e)

	var names []string
	for k := range e.Dir {
		names = append(names, k)
	}
	for _, k := range names {
		propagateNACM(e.Dir[k], e.NACM)
	}
	if e.RPC != nil {
		propagateNACM(e.RPC.Input, e.NACM)
		propagateNACM(e.RPC.Output, e.NACM)
	}
}
