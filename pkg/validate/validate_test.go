package validate

import "testing"

func TestPasswordPolicyListsEveryUnmetRule(t *testing.T) {
	failures := Password("abc")
	// Too short, no upper, no digit, no symbol.
	if len(failures) != 4 {
		t.Fatalf("expected 4 failures, got %d: %v", len(failures), failures)
	}
}

func TestPasswordPolicyAccepts(t *testing.T) {
	for _, password := range []string{"Str0ng!Pw", "Aa1!aaaa", "G0od#Pass"} {
		if failures := Password(password); len(failures) != 0 {
			t.Fatalf("expected %q to pass, got %v", password, failures)
		}
	}
}

func TestPasswordPolicyRejects(t *testing.T) {
	cases := map[string]string{
		"short":            "A1!a",
		"no uppercase":     "weak1!pass",
		"no lowercase":     "WEAK1!PASS",
		"no digit":         "Weakness!",
		"no symbol":        "Weakness1",
		"only one missing": "Str0ngPass",
	}
	for name, password := range cases {
		if failures := Password(password); len(failures) == 0 {
			t.Fatalf("%s: expected %q to fail", name, password)
		}
	}
}

func TestName(t *testing.T) {
	valid := []string{"Anna", "Jón", "Mary-Jane", "Anna María"}
	for _, name := range valid {
		if !Name(name) {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	invalid := []string{"", "Anna1", "O'Brien", "name!"}
	for _, name := range invalid {
		if Name(name) {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
}

func TestNationalID(t *testing.T) {
	valid := []string{
		"0101701234",  // plain digits
		"010170-1234", // hyphen at position 6
		"311299-0000", // day 31, month 12
	}
	for _, id := range valid {
		if !NationalID(id) {
			t.Fatalf("expected %q to be valid", id)
		}
	}

	invalid := []string{
		"010170123",    // 9 digits
		"01017012345",  // 11 digits
		"abcdefghij",   // alphabetic
		"3201701234",   // day 32
		"0013701234",   // month 13
		"0001701234",   // day 0
		"0100701234",   // month 0
		"0101-701234a", // trailing letter
		"",
	}
	for _, id := range invalid {
		if NationalID(id) {
			t.Fatalf("expected %q to be invalid", id)
		}
	}
}

func TestNormalizeNationalID(t *testing.T) {
	if got := NormalizeNationalID("010170-1234"); got != "0101701234" {
		t.Fatalf("expected separators stripped, got %q", got)
	}
}
