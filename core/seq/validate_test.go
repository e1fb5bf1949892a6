package seq

import "testing"

func TestValidate(t *testing.T) {
	got, err := Validate(" acg t'u ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ACGUU" {
		t.Fatalf("want ACGUU, got %q", got)
	}
	if _, err := Validate(""); err == nil {
		t.Fatalf("empty sequence should fail")
	}
	if _, err := Validate("ACXG"); err == nil {
		t.Fatalf("X should be rejected")
	}
}

func TestCanPair(t *testing.T) {
	cases := []struct {
		a, b byte
		noGU bool
		want bool
	}{
		{'G', 'C', false, true},
		{'A', 'U', false, true},
		{'G', 'U', false, true},
		{'U', 'G', true, false},
		{'A', 'G', false, false},
		{'N', 'N', false, false},
	}
	for _, c := range cases {
		if got := CanPair(c.a, c.b, c.noGU); got != c.want {
			t.Errorf("CanPair(%c,%c,noGU=%v)=%v want %v", c.a, c.b, c.noGU, got, c.want)
		}
	}
}

func TestReverse(t *testing.T) {
	if got := Reverse("ACGU"); got != "UGCA" {
		t.Fatalf("got %q", got)
	}
	if got := Reverse(""); got != "" {
		t.Fatalf("got %q", got)
	}
}
