package diag

import "testing"

func TestList(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Error("expected nil error for empty list")
	}
	l.Add(3, "unexpected %s", "pixel")
	l.Add(7, "second")
	if l.Err() == nil {
		t.Fatal("expected error")
	}
	if l[0].Error() != "Error at index 3: unexpected pixel" {
		t.Errorf("unexpected format: %s", l[0].Error())
	}
	want := "Error at index 3: unexpected pixel\nError at index 7: second"
	if l.Error() != want {
		t.Errorf("expected %q, got %q", want, l.Error())
	}
}
