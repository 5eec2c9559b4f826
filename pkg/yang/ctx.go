// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package yang

// This file implements Ctx, the Repository described in the loader's
// design: the registry of loaded modules keyed by (name, revision)
// that enforces "at most one implemented revision of a given module
// name" and owns the feature/metrics/logging collaborators injected
// by the embedding application.

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/schemaforge/yangkit/pkg/dict"
)

// Format names the surface syntax handed to Ctx.ParseModule.
type Format int

// The two surface syntaxes named in the loader's external interfaces.
const (
	FormatYANG Format = iota
	FormatYIN
)

// A YINDecoder turns YIN (XML) source into the same generic Statement
// tree the YANG lexer/parser produce. The YIN surface syntax itself is
// an external collaborator of this module (see package doc); Ctx only
// needs somewhere to plug one in. ParseModule returns ErrNoYINDecoder
// if format is FormatYIN and no decoder has been set with
// Ctx.SetYINDecoder.
type YINDecoder interface {
	DecodeYIN(data []byte, name string) (*Statement, error)
}

// ErrNoYINDecoder is returned by ParseModule when asked to parse YIN
// source without a YINDecoder configured.
var ErrNoYINDecoder = fmt.Errorf("yang: no YINDecoder configured; YIN source cannot be parsed")

// Ctx is the Repository of loaded modules. It owns a Modules registry,
// the per-module "implemented" bookkeeping spec.md calls out, and the
// collaborators (Logger, Metrics) the embedding application injects.
// The zero Ctx is not usable; use NewCtx.
type Ctx struct {
	mu sync.Mutex

	ms *Modules

	// implemented maps a bare module name to the revision string
	// ("" if the module has no revision statements) of the single
	// revision of that name currently marked implemented.
	implemented map[string]string

	log     Logger
	metrics Metrics
	yin     YINDecoder

	unres *unresTracker

	// src interns the raw source buffer handed to each successful
	// ParseModule call, and moduleSrc records which Handle a given
	// Modules/SubModules registry key's source came from, so it can be
	// released when that module is rolled back or unloaded. A module
	// registered under both a bare name and a "name@revision" key (see
	// Modules.add) holds two references to the same Handle.
	src       *dict.Dict
	moduleSrc map[string]dict.Handle
}

// NewCtx returns an empty, ready to use Ctx. Logger and Metrics
// default to no-ops; set them with SetLogger/SetMetrics before
// parsing if the embedder wants diagnostics.
func NewCtx() *Ctx {
	return &Ctx{
		ms:          NewModules(),
		implemented: map[string]string{},
		log:         NoopLogger{},
		metrics:     NoopMetrics{},
		unres:       newUnresTracker(),
		src:         dict.New(),
		moduleSrc:   map[string]dict.Handle{},
	}
}

// SourcePoolLen reports the number of distinct source buffers currently
// interned across every loaded module, for tests and accounting.
func (c *Ctx) SourcePoolLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.src.Len()
}

// SetLogger installs the Logger used for diagnostics produced while
// parsing and resolving. A nil logger restores the no-op default.
func (c *Ctx) SetLogger(l Logger) {
	if l == nil {
		l = NoopLogger{}
	}
	c.log = l
}

// SetMetrics installs the Metrics collaborator. A nil value restores
// the no-op default.
func (c *Ctx) SetMetrics(m Metrics) {
	if m == nil {
		m = NoopMetrics{}
	}
	c.metrics = m
}

// SetYINDecoder installs the collaborator used to turn YIN source into
// a Statement tree for ParseModule(_, FormatYIN).
func (c *Ctx) SetYINDecoder(d YINDecoder) { c.yin = d }

// Modules returns the underlying Modules registry, for callers that
// need the lower-level Read/Process API (e.g. the CLI, which reads
// whole directories of files at once rather than one buffer at a
// time).
func (c *Ctx) Modules() *Modules { return c.ms }

// ParseModule parses bytes as a module or submodule using the given
// surface syntax, links it into the Repository, resolves every
// forward reference against the whole Repository, and returns the
// resulting Module. On any failure the partially built module and
// every Dict-owned string it acquired are released and the Repository
// is left exactly as it was before the call (spec.md §2's rollback
// rule).
//
// name is used only for diagnostics (error locations, LoadID
// correlation); it need not be the module's YANG name.
func (c *Ctx) ParseModule(data []byte, format Format, name string) (*Module, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	loadID := uuid.New().String()
	c.metrics.LoadStarted()
	c.log.Debugf("parsing module %s (load %s)", name, loadID)

	stmts, err := c.parseStatements(data, format, name)
	if err != nil {
		c.metrics.LoadFailed("parse")
		if err == ErrNoYINDecoder {
			return nil, err
		}
		return nil, &Error{Code: classifyParseError(err), Message: err.Error(), LoadID: loadID}
	}

	// Snapshot so a failed load can be rolled back without touching
	// modules that were already registered.
	before := c.snapshotNames()

	var built []Node
	for _, s := range stmts {
		n, err := BuildAST(s)
		if err != nil {
			c.metrics.LoadFailed("build")
			return nil, &Error{Code: classifyBuildError(err), Message: err.Error(), LoadID: loadID}
		}
		built = append(built, n)
	}
	for _, n := range built {
		if m, ok := n.(*Module); ok {
			m.LoadID = loadID
		}
		if err := c.ms.add(n); err != nil {
			c.rollback(before)
			c.metrics.LoadFailed("register")
			return nil, &Error{Code: CodeDuplicateIdentifier, Message: err.Error(), LoadID: loadID}
		}
	}

	if errs := c.resolveLocked(); len(errs) > 0 {
		c.rollback(before)
		c.metrics.LoadFailed("resolve")
		return nil, &Error{Code: classifyResolveError(errs[0]), Message: errs[0].Error(), LoadID: loadID}
	}

	if errs := c.applyDeviationBookkeepingLocked(); len(errs) > 0 {
		c.rollback(before)
		c.metrics.LoadFailed("deviation")
		return nil, &Error{Code: CodeDeviationOfOwnModule, Message: errs[0].Error(), LoadID: loadID}
	}

	if errs := c.unres.drainLeafrefs(built, c.metrics, c.log); len(errs) > 0 {
		c.rollback(before)
		c.metrics.LoadFailed("leafref")
		return nil, &Error{Code: leafrefFailureCode(errs), Message: errs[0].Error(), LoadID: loadID}
	}

	var last *Module
	for _, n := range built {
		if m, ok := n.(*Module); ok {
			last = m
		}
	}
	if last == nil {
		// Every other failure path above returns a typed *Error;
		// reaching here with no *Module built from a fully resolved,
		// successfully registered set of statements means data was
		// submodule-only, which callers should pass through
		// ms.Process()/GetModule instead of ParseModule. That should
		// never happen given a correct caller, per spec.md §7.
		c.rollback(before)
		c.metrics.LoadFailed("internal")
		return nil, &Error{Code: CodeInternal, Message: fmt.Sprintf("%s: parsed no module (submodule-only input?)", name), LoadID: loadID}
	}

	c.internSourceLocked(data, before)

	c.metrics.LoadSucceeded()
	return last, nil
}

// internSourceLocked interns data once and associates the resulting
// Handle with every Modules/SubModules registry key this load just
// added (computed as the keys present now but absent from before),
// giving pkg/dict a real owner with a real teardown path (UnloadModule)
// instead of sitting unwired.
func (c *Ctx) internSourceLocked(data []byte, before map[string]bool) {
	added := c.addedNames(before)
	if len(added) == 0 {
		return
	}
	h := c.src.InsertCopy(string(data))
	first := true
	for _, k := range added {
		if !first {
			c.src.Retain(h)
		}
		first = false
		c.moduleSrc[k] = h
	}
}

// addedNames returns the Modules/SubModules registry keys present now
// but absent from before, in deterministic order.
func (c *Ctx) addedNames(before map[string]bool) []string {
	var added []string
	for k := range c.ms.Modules {
		if !before[k] {
			added = append(added, k)
		}
	}
	for k := range c.ms.SubModules {
		if !before[k] {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	return added
}

// applyDeviationBookkeepingLocked implements spec.md §4.5's rule that
// a module declaring deviations is forced implemented and copied into
// the deviated module's import table with External=ExternalViaDeviation,
// and that the deviated module is marked Deviated.
func (c *Ctx) applyDeviationBookkeepingLocked() []error {
	var errs []error
	for _, m := range c.ms.Modules {
		if len(m.Deviation) == 0 {
			continue
		}
		if err := c.setImplementLocked(m); err != nil {
			// A conflicting implemented revision here is a
			// pre-existing condition, not something deviation
			// bookkeeping should fail the load over.
			m.Implemented = true
		}
		e := ToEntry(m)
		for _, d := range e.Deviations {
			target := e.Find(d.DeviatedPath)
			if target == nil || target.Node == nil {
				continue
			}
			tm := RootNode(target.Node)
			if tm == nil {
				continue
			}
			if tm == m {
				errs = append(errs, fmt.Errorf("yang: module %s may not deviate itself (%s)", m.Name, d.DeviatedPath))
				continue
			}
			tm.Deviated = true
			addSyntheticImport(tm, m, ExternalViaDeviation)
		}
	}
	return errs
}

// addSyntheticImport records that deviating was copied into target's
// import table for bookkeeping, without requiring an explicit "import"
// statement in target's source text.
func addSyntheticImport(target, deviating *Module, how External) {
	for _, imp := range target.Import {
		if imp.Module == deviating {
			return
		}
	}
	target.Import = append(target.Import, &Import{
		Name:     deviating.Name,
		Module:   deviating,
		External: how,
	})
}

func (c *Ctx) parseStatements(data []byte, format Format, name string) ([]*Statement, error) {
	switch format {
	case FormatYANG:
		return Parse(string(data), name)
	case FormatYIN:
		if c.yin == nil {
			return nil, ErrNoYINDecoder
		}
		s, err := c.yin.DecodeYIN(data, name)
		if err != nil {
			return nil, err
		}
		return []*Statement{s}, nil
	default:
		return nil, fmt.Errorf("yang: unknown format %d", format)
	}
}

func (c *Ctx) snapshotNames() map[string]bool {
	names := map[string]bool{}
	for k := range c.ms.Modules {
		names[k] = true
	}
	for k := range c.ms.SubModules {
		names[k] = true
	}
	return names
}

// rollback removes every module/submodule registered since before was
// captured, per the "load either completes or fails with the original
// Repository unchanged" rule.
func (c *Ctx) rollback(before map[string]bool) {
	for _, k := range c.addedNames(before) {
		c.releaseSourceLocked(k)
	}
	for k := range c.ms.Modules {
		if !before[k] {
			delete(c.ms.Modules, k)
		}
	}
	for k := range c.ms.SubModules {
		if !before[k] {
			delete(c.ms.SubModules, k)
		}
	}
	c.ms.byPrefix = map[string]*Module{}
	c.ms.byNS = map[string]*Module{}
}

// releaseSourceLocked releases key's interned source Handle, if any.
// Safe to call for a key that was never interned (e.g. a load that
// failed before reaching internSourceLocked).
func (c *Ctx) releaseSourceLocked(key string) {
	h, ok := c.moduleSrc[key]
	if !ok {
		return
	}
	c.src.Release(h)
	delete(c.moduleSrc, key)
}

// UnloadModule removes the module or submodule named name from the
// Repository, releasing its interned source text, and reports whether
// it was present. This is the Dict teardown path: every Handle
// internSourceLocked hands out is eventually released either here or
// by rollback, never leaked.
func (c *Ctx) UnloadModule(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	if m, ok := c.ms.Modules[name]; ok {
		found = true
		c.releaseSourceLocked(name)
		c.releaseSourceLocked(m.FullName())
		delete(c.ms.Modules, name)
		delete(c.ms.Modules, m.FullName())
	}
	if m, ok := c.ms.SubModules[name]; ok {
		found = true
		c.releaseSourceLocked(name)
		c.releaseSourceLocked(m.FullName())
		delete(c.ms.SubModules, name)
		delete(c.ms.SubModules, m.FullName())
	}
	if found {
		c.ms.byPrefix = map[string]*Module{}
		c.ms.byNS = map[string]*Module{}
	}
	return found
}

// resolveLocked drains the Repository's unresolved references to a
// fixed point (Modules.Process, the existing rewriter pipeline) and
// reports pass-by-pass progress through Metrics, matching §4.4's
// resolver algorithm: a pass is productive if at least one entry
// resolves, and termination is either an empty queue or a pass with
// zero progress.
func (c *Ctx) resolveLocked() []error {
	return c.unres.drain(c.ms, c.metrics, c.log)
}

// GetModule returns the module named name. If revision is "", it
// returns the implemented revision if one has been set, else the
// lexicographically largest known revision, matching spec.md §4.2.
func (c *Ctx) GetModule(name, revision string) (*Module, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if revision != "" {
		m, ok := c.ms.Modules[name+"@"+revision]
		return m, ok
	}
	if rev, ok := c.implemented[name]; ok {
		m, ok := c.ms.Modules[fullKey(name, rev)]
		return m, ok
	}
	// No implemented revision recorded: pick the lexicographically
	// largest revision known for name.
	var best *Module
	var bestRev string
	for full, m := range c.ms.Modules {
		if m.Name != name {
			continue
		}
		rev := m.Current()
		if best == nil || rev > bestRev {
			best, bestRev = m, rev
		}
		_ = full
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

func fullKey(name, rev string) string {
	if rev == "" {
		return name
	}
	return name + "@" + rev
}

// SetImplement marks m as the implemented revision of its module
// name. It fails if a different revision of the same name is already
// implemented, per spec.md's "at most one implemented revision"
// invariant.
func (c *Ctx) SetImplement(m *Module) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setImplementLocked(m)
}

func (c *Ctx) setImplementLocked(m *Module) error {
	rev := m.Current()
	if existing, ok := c.implemented[m.Name]; ok && existing != rev {
		return &Error{
			Code:    CodeConflictingImplementedRevision,
			Message: fmt.Sprintf("module %s: revision %s is already implemented, cannot also implement %s", m.Name, existing, rev),
		}
	}
	c.implemented[m.Name] = rev
	m.Implemented = true
	return nil
}

// Seal finalizes m for read-only use: it propagates NACM flags down
// m's data tree (§4.8). Call it once every module m depends on
// (imports, includes, augments) has been parsed, since augmentation
// from a not-yet-loaded module would otherwise be invisible to the
// propagation pass.
func (c *Ctx) Seal(m *Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	PropagateNACM(ToEntry(m))
}

// FeaturesEnable enables the named feature of m ("*" enables all
// features defined directly in m), recursively enabling every feature
// referenced by its if-feature statements. See pkg/yang/features.go.
func (c *Ctx) FeaturesEnable(m *Module, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return featuresEnable(m, name)
}

// FeaturesDisable disables the named feature of m ("*" disables all).
func (c *Ctx) FeaturesDisable(m *Module, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return featuresDisable(m, name)
}

// FeatureState reports whether the named feature of m is enabled.
func (c *Ctx) FeatureState(m *Module, name string) (TriState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return featureState(m, name)
}

// FeatureList lists every feature name defined directly in m.
func (c *Ctx) FeatureList(m *Module) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(m.Feature))
	for _, f := range m.Feature {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// SwitchDeviations toggles every deviation owned by the deviating
// module m: reversing previously applied deviations and reapplying
// previously reversed ones, flipping each target module's Deviated
// flag accordingly. See pkg/yang/deviate.go.
func (c *Ctx) SwitchDeviations(m *Module) []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return switchDeviations(m)
}
