package yang

// This file implements the feature graph named in spec.md §4.7:
// feature/if-feature state tracking, "*"-wildcard enable/disable, and
// recursive activation of a feature's own if-feature dependencies.
// goyang's statement parser already captures Feature.IfFeature as a
// list of (possibly prefixed) Values (pkg/yang/yang.go); this file is
// the runtime layer the loader never had.

import "fmt"

// findFeature returns the Feature named name within m, or within the
// module m's prefix resolves to if name is prefixed.
func findFeature(m *Module, name string) (*Module, *Feature, error) {
	prefix, bare := getPrefix(name)
	owner := m
	if prefix != "" && prefix != m.GetPrefix() {
		owner = FindModuleByPrefix(m, prefix)
		if owner == nil {
			return nil, nil, fmt.Errorf("yang: unknown prefix %q looking up feature %q", prefix, name)
		}
	}
	for _, f := range owner.Feature {
		if f.Name == bare {
			return owner, f, nil
		}
	}
	return nil, nil, fmt.Errorf("yang: module %s has no feature %q", owner.Name, bare)
}

// featuresEnable enables the named feature of m, or every feature
// directly defined in m when name is "*", recursively enabling
// whatever those features' if-feature statements reference.
func featuresEnable(m *Module, name string) error {
	if name == "*" {
		for _, f := range m.Feature {
			if err := enableFeature(m, f); err != nil {
				return err
			}
		}
		return nil
	}
	_, f, err := findFeature(m, name)
	if err != nil {
		return err
	}
	return enableFeature(m, f)
}

func enableFeature(owner *Module, f *Feature) error {
	if f.Enabled == TSTrue {
		return nil
	}
	f.Enabled = TSTrue
	for _, dep := range f.IfFeature {
		depOwner, depFeature, err := findFeature(owner, dep.Name)
		if err != nil {
			return err
		}
		if err := enableFeature(depOwner, depFeature); err != nil {
			return err
		}
	}
	return nil
}

// featuresDisable disables the named feature of m ("*" disables every
// feature directly defined in m). Disabling does not cascade to
// dependents the way enabling cascades to dependencies: a feature
// that depends on a disabled one keeps its own Enabled flag (which is
// what featureState reports) but no longer satisfies NodeActive.
func featuresDisable(m *Module, name string) error {
	if name == "*" {
		for _, f := range m.Feature {
			f.Enabled = TSFalse
		}
		return nil
	}
	_, f, err := findFeature(m, name)
	if err != nil {
		return err
	}
	f.Enabled = TSFalse
	return nil
}

// featureState reports whether name is enabled in m.
func featureState(m *Module, name string) (TriState, error) {
	_, f, err := findFeature(m, name)
	if err != nil {
		return TSUnset, err
	}
	return f.Enabled, nil
}

// ifFeatureSatisfied reports whether every if-feature reference in
// ifFeatures (interpreted as an AND, per SPEC_FULL.md §4.7) is
// enabled, together with every feature those features reach through
// their own if-feature statements. Unparseable/unresolvable references are treated as
// disabled rather than erroring, since XPath-like boolean
// combinations of if-feature are outside this module's scope (syntax-
// only, per spec.md §1's "only syntactic well-formedness is required
// during load").
func ifFeatureSatisfied(m *Module, ifFeatures []*Value) bool {
	seen := map[*Feature]bool{}
	var satisfied func(m *Module, ifFeatures []*Value) bool
	satisfied = func(m *Module, ifFeatures []*Value) bool {
		for _, v := range ifFeatures {
			owner, f, err := findFeature(m, v.Name)
			if err != nil || f.Enabled != TSTrue {
				return false
			}
			if !seen[f] {
				seen[f] = true
				if !satisfied(owner, f.IfFeature) {
					return false
				}
			}
		}
		return true
	}
	return satisfied(m, ifFeatures)
}

// ifFeaturesOf returns the if-feature list carried by n, for the node
// kinds that may carry one (RFC 7950 §7.20.2). Kinds with no
// if-feature substatement return nil, which is vacuously satisfied.
func ifFeaturesOf(n Node) []*Value {
	switch s := n.(type) {
	case *Container:
		return s.IfFeature
	case *Leaf:
		return s.IfFeature
	case *LeafList:
		return s.IfFeature
	case *List:
		return s.IfFeature
	case *Choice:
		return s.IfFeature
	case *Case:
		return s.IfFeature
	case *AnyXML:
		return s.IfFeature
	case *AnyData:
		return s.IfFeature
	case *Uses:
		return s.IfFeature
	case *RPC:
		return s.IfFeature
	case *Notification:
		return s.IfFeature
	case *Augment:
		return s.IfFeature
	case *Action:
		return s.IfFeature
	case *Feature:
		return s.IfFeature
	default:
		return nil
	}
}

// NodeActive reports whether every if-feature statement on n (if any)
// is currently satisfied in n's owning module, per spec.md §4.7's
// node-gating rule. Nodes with no if-feature, or whose owning module
// could not be determined, are always active.
func NodeActive(n Node) bool {
	ifs := ifFeaturesOf(n)
	if len(ifs) == 0 {
		return true
	}
	m := RootNode(n)
	if m == nil {
		return true
	}
	return ifFeatureSatisfied(m, ifs)
}

// EntryActive reports whether e's underlying Node is feature-active.
func EntryActive(e *Entry) bool {
	if e == nil || e.Node == nil {
		return true
	}
	return NodeActive(e.Node)
}
