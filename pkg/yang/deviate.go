package yang

// This file implements deviation toggling (spec.md §4.5): given the
// shallow "original node" snapshot entry.go's ApplyDeviate now takes
// before it first mutates a target, SwitchDeviations is its own
// inverse, flipping each deviation owned by a deviating module between
// applied and reversed and updating the target module's Deviated flag
// to match (S5 in spec.md §8).

import "fmt"

// switchDeviations toggles every deviation declared in m. It returns
// one error per deviation it could not toggle; a deviation that was
// never successfully applied (e.g. its target could not be found at
// load time) is skipped rather than erroring twice.
func switchDeviations(m *Module) []error {
	e := ToEntry(m)
	var errs []error
	targets := map[*Module]bool{}

	for _, d := range e.Deviations {
		if d.original == nil {
			// Never successfully applied; nothing to toggle.
			continue
		}
		// d.target, not e.Find(d.DeviatedPath): a not-supported
		// deviation unlinks its target from its parent's Dir, so once
		// applied, Find can no longer walk down to it.
		target := d.target
		if target == nil {
			errs = append(errs, fmt.Errorf("yang: cannot find deviation target %s to toggle", d.DeviatedPath))
			continue
		}
		if target.Node != nil {
			if tm := RootNode(target.Node); tm != nil {
				targets[tm] = true
			}
		}
		if d.Applied {
			reverseDeviation(e, d, target)
			d.Applied = false
		} else {
			if errs2 := applySingleDeviation(e, d, target); len(errs2) > 0 {
				errs = append(errs, errs2...)
				continue
			}
			d.Applied = true
		}
	}

	for tm := range targets {
		tm.Deviated = !tm.Deviated
	}
	return errs
}

// reverseDeviation restores target (and, for not-supported, relinks it
// into its original parent) from d's stored snapshot.
func reverseDeviation(e *Entry, d *DeviatedEntry, target *Entry) {
	if d.deviatedParent != nil && d.deviatedParent.Dir != nil && d.deviatedParent.Dir[d.original.Name] == nil {
		// The deviation removed this node from its parent
		// (not-supported); relink it.
		d.deviatedParent.Dir[d.original.Name] = target
	}
	restoreFields(target, d.original)
}

// applySingleDeviation re-runs the add/replace/delete/not-supported
// mutation recorded in d.Deviate against target, mirroring the logic
// in ApplyDeviate but scoped to a single already-validated deviation
// so it can be invoked outside the initial load pass.
func applySingleDeviation(e *Entry, d *DeviatedEntry, target *Entry) []error {
	var errs []error
	for dt, dv := range d.Deviate {
		for _, devSpec := range dv {
			switch dt {
			case DeviationAdd, DeviationReplace:
				if devSpec.Config != TSUnset {
					target.Config = devSpec.Config
				}
				if devSpec.Mandatory != TSUnset {
					target.Mandatory = devSpec.Mandatory
				}
				if devSpec.Units != "" {
					target.Units = devSpec.Units
				}
				if devSpec.Type != nil {
					target.Type = devSpec.Type
				}
				if devSpec.ListAttr != nil && target.ListAttr != nil {
					if devSpec.ListAttr.MinElements != nil {
						target.ListAttr.MinElements = devSpec.ListAttr.MinElements
					}
					if devSpec.ListAttr.MaxElements != nil {
						target.ListAttr.MaxElements = devSpec.ListAttr.MaxElements
					}
				}
			case DeviationNotSupported:
				dp := target.Parent
				if dp == nil {
					errs = append(errs, fmt.Errorf("%s: node %s has no parent to unlink from", Source(e.Node), target.Name))
					continue
				}
				if isListKeyLeaf(dp, target.Name) {
					errs = append(errs, &Error{
						Code:    CodeNotSupportedRemovesKey,
						Message: fmt.Sprintf("%s: deviate not-supported may not remove list key leaf %s", Source(e.Node), target.Name),
						Path:    d.DeviatedPath,
					})
					continue
				}
				dp.delete(target.Name)
			case DeviationDelete:
				if devSpec.Config != TSUnset {
					target.Config = TSUnset
				}
				if devSpec.Mandatory != TSUnset {
					target.Mandatory = TSUnset
				}
			default:
				errs = append(errs, fmt.Errorf("invalid deviation type %s", dt))
			}
		}
	}
	return errs
}

// restoreFields copies the mutable, deviation-relevant fields of
// original back onto target in place (target's identity/address must
// not change, since other Entries may hold a pointer to it).
func restoreFields(target, original *Entry) {
	target.Config = original.Config
	target.Mandatory = original.Mandatory
	target.Units = original.Units
	target.Type = original.Type
	target.Default = original.Default
	if target.ListAttr != nil && original.ListAttr != nil {
		*target.ListAttr = *original.ListAttr
	}
}
