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

import (
	"strings"
	"testing"
)

const simpleModule = `
module ctx-test-one {
  namespace "urn:ctx-test-one";
  prefix "one";

  container top {
    leaf a {
      type string;
    }
  }
}
`

func TestParseModuleRegistersAndResolves(t *testing.T) {
	c := NewCtx()
	m, err := c.ParseModule([]byte(simpleModule), FormatYANG, "ctx-test-one.yang")
	if err != nil {
		t.Fatalf("ParseModule: unexpected error: %v", err)
	}
	if m.Name != "ctx-test-one" {
		t.Fatalf("got module name %q, want ctx-test-one", m.Name)
	}
	if _, ok := c.GetModule("ctx-test-one", ""); !ok {
		t.Fatalf("GetModule could not find ctx-test-one after ParseModule")
	}
}

func TestParseModuleRollsBackOnFailure(t *testing.T) {
	c := NewCtx()
	if _, err := c.ParseModule([]byte(simpleModule), FormatYANG, "ctx-test-one.yang"); err != nil {
		t.Fatalf("initial ParseModule: unexpected error: %v", err)
	}

	broken := `
module ctx-test-broken {
  namespace "urn:ctx-test-broken";
  prefix "broken";

  container top {
    leaf a {
      type this-type-does-not-exist;
    }
  }
}
`
	if _, err := c.ParseModule([]byte(broken), FormatYANG, "ctx-test-broken.yang"); err == nil {
		t.Fatalf("ParseModule on broken module: got nil error, want failure")
	}
	if _, ok := c.GetModule("ctx-test-broken", ""); ok {
		t.Fatalf("GetModule found ctx-test-broken after its load was rolled back")
	}
	// The earlier, successful module must still be present.
	if _, ok := c.GetModule("ctx-test-one", ""); !ok {
		t.Fatalf("GetModule lost ctx-test-one after an unrelated rollback")
	}
}

func TestParseModuleYINWithoutDecoderFails(t *testing.T) {
	c := NewCtx()
	_, err := c.ParseModule([]byte("<module/>"), FormatYIN, "x.yin")
	if err != ErrNoYINDecoder {
		t.Fatalf("got error %v, want ErrNoYINDecoder", err)
	}
}

func TestParseModuleInternsSourceAndUnloadReleases(t *testing.T) {
	c := NewCtx()
	if _, err := c.ParseModule([]byte(simpleModule), FormatYANG, "ctx-test-one.yang"); err != nil {
		t.Fatalf("ParseModule: unexpected error: %v", err)
	}
	if got := c.SourcePoolLen(); got != 1 {
		t.Fatalf("SourcePoolLen after one load: got %d, want 1", got)
	}

	if !c.UnloadModule("ctx-test-one") {
		t.Fatalf("UnloadModule: module not found")
	}
	if got := c.SourcePoolLen(); got != 0 {
		t.Fatalf("SourcePoolLen after UnloadModule: got %d, want 0", got)
	}
	if _, ok := c.GetModule("ctx-test-one", ""); ok {
		t.Fatalf("GetModule found ctx-test-one after UnloadModule")
	}
	if c.UnloadModule("ctx-test-one") {
		t.Fatalf("UnloadModule: got true on a module already unloaded")
	}
}

func TestParseModuleRollbackReleasesSource(t *testing.T) {
	c := NewCtx()
	if _, err := c.ParseModule([]byte(simpleModule), FormatYANG, "ctx-test-one.yang"); err != nil {
		t.Fatalf("initial ParseModule: unexpected error: %v", err)
	}
	if got := c.SourcePoolLen(); got != 1 {
		t.Fatalf("SourcePoolLen after one load: got %d, want 1", got)
	}

	broken := `
module ctx-test-broken {
  namespace "urn:ctx-test-broken";
  prefix "broken";

  container top {
    leaf a {
      type this-type-does-not-exist;
    }
  }
}
`
	if _, err := c.ParseModule([]byte(broken), FormatYANG, "ctx-test-broken.yang"); err == nil {
		t.Fatalf("ParseModule on broken module: got nil error, want failure")
	}
	// The failed load's source must not end up interned: resolveLocked
	// fails before internSourceLocked ever runs, so the pool should
	// still hold only ctx-test-one's entry.
	if got := c.SourcePoolLen(); got != 1 {
		t.Fatalf("SourcePoolLen after rolled-back load: got %d, want 1", got)
	}
}

func TestSetImplementConflict(t *testing.T) {
	c := NewCtx()
	m1, err := c.ParseModule([]byte(`
module ctx-rev-test {
  namespace "urn:ctx-rev-test";
  prefix "r";
  revision 2020-01-01;
  leaf a { type string; }
}
`), FormatYANG, "r1.yang")
	if err != nil {
		t.Fatalf("ParseModule rev 1: %v", err)
	}
	if err := c.SetImplement(m1); err != nil {
		t.Fatalf("SetImplement: unexpected error: %v", err)
	}

	m2, err := c.ParseModule([]byte(`
module ctx-rev-test {
  namespace "urn:ctx-rev-test";
  prefix "r";
  revision 2021-01-01;
  leaf a { type string; }
}
`), FormatYANG, "r2.yang")
	if err != nil {
		t.Fatalf("ParseModule rev 2: %v", err)
	}
	if err := c.SetImplement(m2); err == nil {
		t.Fatalf("SetImplement on a conflicting implemented revision: got nil error")
	} else if !strings.Contains(err.Error(), "already implemented") {
		t.Fatalf("got error %q, want it to mention 'already implemented'", err.Error())
	}
}
