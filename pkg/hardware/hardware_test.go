package hardware

import "testing"

func TestGet(t *testing.T) {
	spec, err := Get(RTX4090)
	if err != nil {
		t.Fatalf("Get(RTX4090) error: %v", err)
	}
	if spec.MemoryGB != 24 {
		t.Errorf("RTX4090 MemoryGB = %v, want 24", spec.MemoryGB)
	}

	_, err = Get(Class("tpu-v9"))
	if err == nil {
		t.Fatal("Get(unknown) succeeded, want error")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("Get(unknown) error = %T, want *NotFoundError", err)
	}
}

func TestListStable(t *testing.T) {
	a := List()
	b := List()
	if len(a) != 5 {
		t.Fatalf("List() len = %d, want 5", len(a))
	}
	for i := range a {
		if a[i].Class != b[i].Class {
			t.Errorf("List() order unstable at %d: %q vs %q", i, a[i].Class, b[i].Class)
		}
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name         string
		memoryGB     float64
		consumerOnly bool
		wantClass    Class
		wantCount    int
		wantOK       bool
	}{
		{"small model picks cheapest card", 14, true, RTX3090, 1, true},
		{"small model any hardware", 14, false, RTX3090, 1, true},
		{"mid model multiple consumer cards", 48, true, RTX3090, 2, true},
		{"too large for consumer rigs", 560, true, "", 0, false},
		{"large model on datacenter gpus", 560, false, A100, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, count, ok := Select(tt.memoryGB, tt.consumerOnly)
			if ok != tt.wantOK {
				t.Fatalf("Select(%v, %v) ok = %v, want %v", tt.memoryGB, tt.consumerOnly, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if spec.Class != tt.wantClass || count != tt.wantCount {
				t.Errorf("Select(%v, %v) = (%s, %d), want (%s, %d)",
					tt.memoryGB, tt.consumerOnly, spec.Class, count, tt.wantClass, tt.wantCount)
			}
		})
	}
}

func TestFit(t *testing.T) {
	a100, _ := Get(A100)
	rtx, _ := Get(RTX4090)

	tests := []struct {
		name      string
		spec      Spec
		memoryGB  float64
		wantCount int
		wantOK    bool
	}{
		{"fits one device", rtx, 20, 1, true},
		{"exact boundary", rtx, 24, 1, true},
		{"needs two devices", rtx, 25, 2, true},
		{"zero requirement", rtx, 0, 1, true},
		{"large model on A100s", a100, 560, 7, true},
		{"exceeds rig limit", rtx, 24 * 9, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, ok := Fit(tt.spec, tt.memoryGB)
			if ok != tt.wantOK || count != tt.wantCount {
				t.Errorf("Fit(%s, %v) = (%d, %v), want (%d, %v)",
					tt.spec.Class, tt.memoryGB, count, ok, tt.wantCount, tt.wantOK)
			}
		})
	}
}
