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

const nacmModule = `
module nacm-test {
  namespace "urn:nacm-test";
  prefix "nt";

  import ietf-netconf-acm-stub { prefix nacm; }

  container secret {
    nacm:default-deny-all;
    leaf inner {
      type string;
    }
  }

  container partial {
    nacm:default-deny-write;
    leaf writable-child {
      type string;
    }
  }

  container open {
    leaf plain {
      type string;
    }
  }
}
`

const nacmStubModule = `
module ietf-netconf-acm-stub {
  namespace "urn:ietf-netconf-acm-stub";
  prefix "nacm";

  extension default-deny-write;
  extension default-deny-all;
}
`

func TestPropagateNACM(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(nacmStubModule, "ietf-netconf-acm-stub"); err != nil {
		t.Fatalf("Parse(stub): %v", err)
	}
	if err := ms.Parse(nacmModule, "nacm-test"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if errs := ms.Process(); len(errs) != 0 {
		t.Fatalf("Process: %v", errs)
	}
	m := ms.Modules["nacm-test"]
	e := ToEntry(m)
	PropagateNACM(e)

	secret := e.Dir["secret"]
	if secret.NACM&NACMDenyAll == 0 {
		t.Errorf("secret container: got %v, want NACMDenyAll set", secret.NACM)
	}
	inner := secret.Dir["inner"]
	if inner.NACM&NACMDenyAll == 0 {
		t.Errorf("secret/inner leaf should inherit NACMDenyAll from its parent, got %v", inner.NACM)
	}

	partial := e.Dir["partial"]
	if partial.NACM != NACMDenyWrite {
		t.Errorf("partial container: got %v, want NACMDenyWrite", partial.NACM)
	}

	open := e.Dir["open"]
	if open.NACM != NACMNone {
		t.Errorf("open container: got %v, want NACMNone", open.NACM)
	}
	if open.Dir["plain"].NACM != NACMNone {
		t.Errorf("open/plain leaf: got %v, want NACMNone", open.Dir["plain"].NACM)
	}
}

func TestNACMFlagsString(t *testing.T) {
	tests := []struct {
		f    NACMFlags
		want string
	}{
		{NACMNone, "none"},
		{NACMDenyWrite, "deny-write"},
		{NACMDenyAll, "deny-all"},
		{NACMDenyWrite | NACMDenyAll, "deny-write|deny-all"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("NACMFlags(%d).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
