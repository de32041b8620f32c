package commands

import "testing"

func TestParseTaskID_Numeric(t *testing.T) {
	id, err := ParseTaskID([]string{"42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "42" {
		t.Errorf("expected id 42, got %q", id)
	}
}

func TestParseTaskID_HashPrefix(t *testing.T) {
	id, err := ParseTaskID([]string{"#7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "7" {
		t.Errorf("expected id 7, got %q", id)
	}
}

func TestParseTaskID_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskID(nil)
	if err != ErrTaskIDRequired {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}
}

func TestParseTaskID_Blank_Error(t *testing.T) {
	_, err := ParseTaskID([]string{"  "})
	if err != ErrTaskIDRequired {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}
}

func TestParseTaskID_Invalid_Error(t *testing.T) {
	for _, arg := range []string{"abc", "1a", "-1", "#", "1.5", "٣"} {
		_, err := ParseTaskID([]string{arg})
		if err == nil {
			t.Errorf("expected error for %q", arg)
			continue
		}
		if want := "invalid task id: " + arg; err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	}
}

func TestOptString_TracksSet(t *testing.T) {
	var o optString
	if o.set {
		t.Fatal("zero value should be unset")
	}
	if err := o.Set(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.set || o.value != "" {
		t.Errorf("expected set empty value, got %+v", o)
	}
}
