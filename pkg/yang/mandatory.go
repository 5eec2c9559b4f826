package yang

// This file implements the schema-level half of mandatory-node
// checking (spec.md §4.5/§8): the defects a schema tree walk can
// detect without reference to any instance document. It is kept
// separate from entry.go's tree-building pass since it is only
// meaningful once uses/augment/deviation rewriting and NACM
// propagation (ctx.go's Seal) have both settled.

import (
	"fmt"
	"strconv"
)

// MandatoryViolation describes one place in a schema tree where the
// mandatory-node invariant does not hold.
type MandatoryViolation struct {
	Path    string
	Message string
}

func (v *MandatoryViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// CheckMandatory walks root's subtree and reports schema-level defects
// in RFC 7950's mandatory-node rules that can be judged without an
// instance document:
//
//   - a list or leaf-list's min-elements must not exceed its
//     max-elements, when both are given (RFC 7950 §7.6.5/§7.7.5);
//   - a choice marked mandatory must have at least one case that is
//     not disabled by feature, else no instance document could ever
//     satisfy it (RFC 7950 §7.9.2);
//   - a leaf marked mandatory must not also carry a default
//     (RFC 7950 §7.6.4).
//
// Whether a *given instance document* actually supplies a mandatory
// leaf, or a list meets its min-elements count, is a property of that
// document, not of the schema, and is out of scope here (see spec.md's
// non-goals around full instance validation).
//
// CheckMandatory does not descend into a presence container's
// subtree unless requireOptional is set, matching the RFC's rule that
// a presence container's mandatory descendants are only required once
// the container itself is instantiated.
func CheckMandatory(root *Entry, requireOptional bool) []error {
	var errs []error
	checkMandatory(root, requireOptional, &errs)
	return errs
}

func checkMandatory(e *Entry, requireOptional bool, errs *[]error) {
	if e == nil {
		return
	}
	if !NodeActive(e.Node) {
		if requireOptional {
			walkChildrenMandatory(e, requireOptional, errs)
		}
		return
	}

	switch {
	case e.IsList() || e.IsLeafList():
		checkListBounds(e, errs)
	case e.IsChoice():
		checkChoice(e, errs)
	case e.IsLeaf():
		checkMandatoryDefault(e, errs)
	}

	if isPresenceContainer(e) && !requireOptional {
		return
	}
	walkChildrenMandatory(e, requireOptional, errs)
}

func walkChildrenMandatory(e *Entry, requireOptional bool, errs *[]error) {
	for _, k := range sortedKeys(e.Dir) {
		checkMandatory(e.Dir[k], requireOptional, errs)
	}
	if e.RPC != nil {
		checkMandatory(e.RPC.Input, requireOptional, errs)
		checkMandatory(e.RPC.Output, requireOptional, errs)
	}
}

func sortedKeys(m map[string]*Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// isPresenceContainer reports whether e is a container carrying a
// "presence" substatement, per RFC 7950 §7.5.1. Entry has no presence
// field, so this reads the Presence field of the underlying Container
// node.
func isPresenceContainer(e *Entry) bool {
	c, ok := e.Node.(*Container)
	return ok && c.Presence != nil && c.Presence.Name != ""
}

func checkListBounds(e *Entry, errs *[]error) {
	if e.ListAttr == nil {
		return
	}
	min, hasMin := parseElementsBound(e.ListAttr.MinElements)
	max, hasMax := parseElementsBound(e.ListAttr.MaxElements)
	if !hasMin || !hasMax {
		return
	}
	if min > max {
		*errs = append(*errs, &MandatoryViolation{
			Path:    Source(e.Node),
			Message: fmt.Sprintf("%s: min-elements %d exceeds max-elements %d", e.Name, min, max),
		})
	}
}

func parseElementsBound(v *Value) (int, bool) {
	if v == nil || v.Name == "" || v.Name == "unbounded" {
		return 0, false
	}
	n, err := strconv.Atoi(v.Name)
	if err != nil {
		return 0, false
	}
	return n, true
}

// checkMandatoryDefault reports a leaf that is both mandatory true and
// carries a default value, which RFC 7950 §7.6.1 forbids: an instance
// document could never satisfy "mandatory" by omission if a default
// would just fill the gap.
func checkMandatoryDefault(e *Entry, errs *[]error) {
	if e.Mandatory == TSTrue && e.Default != "" {
		*errs = append(*errs, &Error{
			Code:    CodeMandatoryWithDefault,
			Message: fmt.Sprintf("leaf %s is mandatory true and must not have a default", e.Name),
			Path:    Source(e.Node),
		})
	}
}

// checkChoice reports a choice that is itself mandatory but has no
// case capable of satisfying it (every case disabled by feature, or
// no cases defined at all).
func checkChoice(e *Entry, errs *[]error) {
	if e.Mandatory != TSTrue {
		return
	}
	for _, c := range e.Dir {
		if NodeActive(c.Node) {
			return
		}
	}
	*errs = append(*errs, &MandatoryViolation{
		Path:    Source(e.Node),
		Message: fmt.Sprintf("mandatory choice %s has no active case", e.Name),
	})
}
