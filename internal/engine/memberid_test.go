package engine

import "testing"

func TestRandomMemberIDRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := randomMemberID()
		if err != nil {
			t.Fatalf("randomMemberID() error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("member id outside range: %q", code)
		}
	}
}
