package yang

// This file implements leafref path resolution and cycle detection
// (spec.md §1's "roughly 60-70% of the source", §3's "every leafref
// target exists and the chain of leafref-to-leafref references (if
// any) is acyclic", Testable Property 5, scenario S6). Resolution
// walks the path recorded on a leafref's YangType (types.go's
// Type.resolve already captures it as y.Path) against the Entry tree
// built by entry.go, using the same prefix-aware, absolute-or-relative
// navigation Entry.Find already implements for deviation paths - a
// leafref path and a deviation's target path are both RFC 7950
// "node-identifier"-per-step paths, modulo the XPath predicates a
// leafref path (but not a deviation path) may carry.

import (
	"fmt"
	"regexp"
	"strings"
)

var leafrefPredicateRE = regexp.MustCompile(`\[[^\]]*\]`)

// normalizeLeafrefPath prepares a leafref's path statement argument
// for Entry.Find: it drops a leading "current()" (RFC 7950 §9.9.2;
// current() names the leafref node itself, so "current()/../foo" is
// equivalent to the relative path "../foo" Find already understands)
// and strips every "[predicate]", since Find matches schema nodes by
// name only and has no instance data to test a predicate against -
// the predicate constrains which list *instance* to follow, not which
// list node in the schema tree.
func normalizeLeafrefPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "current()")
	return leafrefPredicateRE.ReplaceAllString(path, "")
}

// walkLeafrefLeaves calls fn for every leaf or leaf-list Entry under
// root whose resolved type is leafref.
func walkLeafrefLeaves(root *Entry, fn func(e *Entry)) {
	if root == nil {
		return
	}
	if (root.IsLeaf() || root.IsLeafList()) && root.Type != nil && root.Type.Kind == Yleafref {
		fn(root)
	}
	for _, c := range root.Dir {
		walkLeafrefLeaves(c, fn)
	}
	if root.RPC != nil {
		walkLeafrefLeaves(root.RPC.Input, fn)
		walkLeafrefLeaves(root.RPC.Output, fn)
	}
}

// ResolveLeafrefs walks every leafref-typed leaf/leaf-list under root,
// resolves its path against the schema tree, and records the result
// on LeafrefTarget. It then checks every leafref-to-leafref chain it
// just built (or found already built by an earlier call) for a cycle.
//
// It returns one CodeUnresolvedReference error per leafref whose path
// does not resolve to any node, and one CodeCircularLeafref error per
// leafref chain that loops back on a node already in the chain -
// spec.md §8's scenario S6 ("load fails with CircularLeafref").
func ResolveLeafrefs(root *Entry) []error {
	var errs []error
	var leaves []*Entry

	walkLeafrefLeaves(root, func(e *Entry) {
		leaves = append(leaves, e)
		if e.LeafrefTarget != nil {
			return
		}
		path := e.Type.Path
		if path == "" {
			errs = append(errs, &Error{
				Code:    CodeUnresolvedReference,
				Message: fmt.Sprintf("leafref %s has no path statement", e.Name),
				Path:    e.Path(),
			})
			return
		}
		target := e.Find(normalizeLeafrefPath(path))
		if target == nil || target == e {
			errs = append(errs, &Error{
				Code:    CodeUnresolvedReference,
				Message: fmt.Sprintf("leafref %s: path %q does not resolve to a node", e.Name, path),
				Path:    e.Path(),
			})
			return
		}
		e.LeafrefTarget = target
	})

	for _, e := range leaves {
		if chain := leafrefCycle(e); chain != "" {
			errs = append(errs, &Error{
				Code:    CodeCircularLeafref,
				Message: fmt.Sprintf("leafref chain is circular: %s", chain),
				Path:    e.Path(),
			})
		}
	}
	return errs
}

// leafrefFailureCode picks the Code to report for a ParseModule call
// that failed its leafref pass: CodeCircularLeafref takes precedence
// over a plain unresolved-target failure, since a cycle is the more
// specific and more actionable diagnosis for the caller.
func leafrefFailureCode(errs []error) Code {
	for _, err := range errs {
		if ye, ok := err.(*Error); ok && ye.Code == CodeCircularLeafref {
			return CodeCircularLeafref
		}
	}
	return CodeUnresolvedReference
}

// leafrefCycle follows start's LeafrefTarget chain and returns a
// human-readable rendering of the cycle if the chain ever revisits a
// node, or "" if the chain reaches a non-leafref leaf (or a dead end)
// without repeating.
func leafrefCycle(start *Entry) string {
	seen := map[*Entry]bool{start: true}
	chain := []string{start.Path()}

	e := start
	for e.LeafrefTarget != nil {
		next := e.LeafrefTarget
		chain = append(chain, next.Path())
		if seen[next] {
			return strings.Join(chain, " -> ")
		}
		seen[next] = true
		if next.Type == nil || next.Type.Kind != Yleafref {
			return ""
		}
		e = next
	}
	return ""
}
