package hostcap

import "testing"

func TestDetect_IsStable(t *testing.T) {
	first := Detect()
	for i := 0; i < 5; i++ {
		if Detect() != first {
			t.Fatal("capability probe must be stable across calls")
		}
	}
}
