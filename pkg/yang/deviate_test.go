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

import "testing"

const deviateTargetModule = `
module deviate-target {
  namespace "urn:deviate-target";
  prefix "dt";

  container top {
    leaf knob {
      type string;
      mandatory true;
    }
  }
}
`

const deviateModule = `
module deviate-applier {
  namespace "urn:deviate-applier";
  prefix "da";

  import deviate-target { prefix dt; }

  deviation "/dt:top/dt:knob" {
    deviate replace {
      mandatory false;
    }
  }
}
`

func TestSwitchDeviationsTogglesTarget(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(deviateTargetModule, "deviate-target"); err != nil {
		t.Fatalf("Parse(target): %v", err)
	}
	if err := ms.Parse(deviateModule, "deviate-applier"); err != nil {
		t.Fatalf("Parse(applier): %v", err)
	}
	if errs := ms.Process(); len(errs) != 0 {
		t.Fatalf("Process: %v", errs)
	}

	target := ms.Modules["deviate-target"]
	applier := ms.Modules["deviate-applier"]

	applierEntry := ToEntry(applier)
	if errs := applierEntry.ApplyDeviate(); len(errs) != 0 {
		t.Fatalf("ApplyDeviate: %v", errs)
	}

	targetEntry := ToEntry(target)
	knob := targetEntry.Dir["top"].Dir["knob"]
	if knob.Mandatory != TSFalse {
		t.Fatalf("after deviation: knob.Mandatory = %v, want TSFalse", knob.Mandatory)
	}

	if errs := switchDeviations(applier); len(errs) != 0 {
		t.Fatalf("switchDeviations (reverse): %v", errs)
	}
	if knob.Mandatory != TSTrue {
		t.Fatalf("after reversing deviation: knob.Mandatory = %v, want TSTrue", knob.Mandatory)
	}

	if errs := switchDeviations(applier); len(errs) != 0 {
		t.Fatalf("switchDeviations (reapply): %v", errs)
	}
	if knob.Mandatory != TSFalse {
		t.Fatalf("after reapplying deviation: knob.Mandatory = %v, want TSFalse", knob.Mandatory)
	}
}
