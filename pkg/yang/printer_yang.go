package yang

import (
	"fmt"
	"io"
)

// PrintYANG serializes n's original Statement tree back to YANG surface
// syntax. It round-trips structure, not necessarily the original
// formatting (comments and whitespace are not preserved by the parser),
// matching the behavior documented on Statement.Write.
func PrintYANG(w io.Writer, n Node) error {
	s := n.Statement()
	if s == nil {
		return fmt.Errorf("yang: %s has no backing statement to print", n.NName())
	}
	return s.Write(w, "")
}

// PrintYANGEntry serializes e like PrintYANG, except that any
// descendant disabled by if-feature (EntryActive reports false) is
// left out of the statement tree before printing, unless
// opts.IncludeDisabledFeatures is set (spec.md §4.7).
func PrintYANGEntry(w io.Writer, e *Entry, opts *PrintOptions) error {
	s := filterStatement(e, opts)
	if s == nil {
		return nil
	}
	return s.Write(w, "")
}

// filterStatement returns e's backing Statement with any substatement
// belonging to a feature-disabled child Entry removed, recursively. It
// returns nil if e itself is disabled and opts does not ask to include
// disabled nodes.
//
// The Statement tree (parse.go) and the Entry tree (entry.go) are
// built from the same source but are not the same tree - Entry.Dir
// only holds data-defining children, while a Statement's substatements
// also include type/description/default/etc. Matching is done by
// identity of each Dir child's own backing Statement, which is stable
// across a single ToEntry build.
func filterStatement(e *Entry, opts *PrintOptions) *Statement {
	if e == nil || e.Node == nil {
		return nil
	}
	orig := e.Node.Statement()
	if orig == nil {
		return nil
	}
	if !EntryActive(e) && !opts.includeDisabled() {
		return nil
	}

	childStatements := map[*Statement]*Entry{}
	for _, c := range e.Dir {
		if c.Node == nil {
			continue
		}
		if cs := c.Node.Statement(); cs != nil {
			childStatements[cs] = c
		}
	}
	if len(childStatements) == 0 {
		return orig
	}

	clone := *orig
	clone.statements = make([]*Statement, 0, len(orig.statements))
	for _, sub := range orig.statements {
		c, isChild := childStatements[sub]
		if !isChild {
			clone.statements = append(clone.statements, sub)
			continue
		}
		if filtered := filterStatement(c, opts); filtered != nil {
			clone.statements = append(clone.statements, filtered)
		}
	}
	return &clone
}
