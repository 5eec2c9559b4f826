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

const mandatoryModule = `
module mandatory-test {
  namespace "urn:mandatory-test";
  prefix "mt";

  container config {
    presence "config exists";
    leaf required-once-present {
      type string;
      mandatory true;
    }
  }

  container always-there {
    leaf required {
      type string;
      mandatory true;
    }
  }

  list entries {
    key "name";
    min-elements 1;
    leaf name {
      type string;
    }
  }

  list backwards-bounds {
    key "name";
    min-elements 5;
    max-elements 2;
    leaf name {
      type string;
    }
  }
}
`

func TestCheckMandatoryFlagsBackwardsListBounds(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(mandatoryModule, "mandatory-test"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if errs := ms.Process(); len(errs) != 0 {
		t.Fatalf("Process: %v", errs)
	}
	m := ms.Modules["mandatory-test"]
	e := ToEntry(m)

	errs := CheckMandatory(e, false)
	if len(errs) != 1 {
		t.Fatalf("got %d violations, want exactly 1 (backwards-bounds): %v", len(errs), errs)
	}
	if got := errs[0].Error(); !strings.Contains(got, "backwards-bounds") {
		t.Errorf("violation = %q, want it to name backwards-bounds", got)
	}
}

const mandatoryWithDefaultModule = `
module mandatory-default-test {
  namespace "urn:mandatory-default-test";
  prefix "md";

  leaf bad {
    type string;
    mandatory true;
    default "x";
  }
}
`

func TestCheckMandatoryFlagsDefaultOnMandatoryLeaf(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(mandatoryWithDefaultModule, "mandatory-default-test"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if errs := ms.Process(); len(errs) != 0 {
		t.Fatalf("Process: %v", errs)
	}
	e := ToEntry(ms.Modules["mandatory-default-test"])

	errs := CheckMandatory(e, false)
	if len(errs) != 1 {
		t.Fatalf("got %d violations, want exactly 1 (bad): %v", len(errs), errs)
	}
	ye, ok := errs[0].(*Error)
	if !ok || ye.Code != CodeMandatoryWithDefault {
		t.Errorf("got %v, want a *Error with Code CodeMandatoryWithDefault", errs[0])
	}
}

func TestCheckMandatoryRequireOptionalDescendsIntoPresence(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(mandatoryModule, "mandatory-test"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if errs := ms.Process(); len(errs) != 0 {
		t.Fatalf("Process: %v", errs)
	}
	m := ms.Modules["mandatory-test"]
	e := ToEntry(m)

	// requireOptional additionally descends into the presence container,
	// but there is nothing wrong under it either, so the only violation
	// should still be the one from backwards-bounds.
	errs := CheckMandatory(e, true)
	if len(errs) != 1 {
		t.Fatalf("got %d violations with requireOptional, want exactly 1: %v", len(errs), errs)
	}
}
