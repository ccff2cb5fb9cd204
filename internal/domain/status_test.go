package domain

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"waiting", StatusWaiting, true},
		{"delivered", StatusDelivered, true},
		{"cancelled", StatusCancelled, true},
		{"canceled", StatusCancelled, true},
		{"shipped", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusWaiting.Terminal() {
		t.Errorf("waiting must not be terminal")
	}
	if !StatusDelivered.Terminal() || !StatusCancelled.Terminal() {
		t.Errorf("delivered and cancelled must be terminal")
	}
}

func TestStatusCanFollow(t *testing.T) {
	if !StatusWaiting.CanFollow(StatusDelivered) {
		t.Errorf("waiting -> delivered must be allowed")
	}
	if !StatusWaiting.CanFollow(StatusCancelled) {
		t.Errorf("waiting -> cancelled must be allowed")
	}
	if StatusDelivered.CanFollow(StatusWaiting) {
		t.Errorf("no transition back to waiting is defined")
	}
	if StatusWaiting.CanFollow(StatusWaiting) {
		t.Errorf("waiting -> waiting is not a transition")
	}
}
