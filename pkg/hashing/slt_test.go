package hashing

import "testing"

// TestComputeSltHashGoldenVector pins the hash of a known slt pair to its
// expected value, guarding against accidental changes to the CBOR/Blake2b
// encoding.
func TestComputeSltHashGoldenVector(t *testing.T) {
	slts := []string{
		"I can mint an access token.",
		"I can complete an assignment to earn a credential.",
	}

	got, err := ComputeSltHash(slts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "8dcbe1b925d87e6c547bbd8071c23a712db4c32751454b0948f8c846e9246b5c"
	if got != want {
		t.Fatalf("ComputeSltHash(%v) = %s, want %s", slts, got, want)
	}
}

func TestComputeSltHashEmpty(t *testing.T) {
	got, err := ComputeSltHash(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsValidSltHash(got) {
		t.Fatalf("expected a valid 64-char hex hash for the empty SLT list, got %q", got)
	}
}

func TestVerifySltHashRoundTrip(t *testing.T) {
	cases := [][]string{
		nil,
		{"short"},
		{"a string long enough to exceed the sixty-four byte Plutus chunk boundary for sure"},
		{"first", "second", "third"},
	}

	for _, slts := range cases {
		hash, err := ComputeSltHash(slts)
		if err != nil {
			t.Fatalf("ComputeSltHash(%v): %v", slts, err)
		}
		if !VerifySltHash(slts, hash) {
			t.Fatalf("VerifySltHash(%v, %s) = false, want true", slts, hash)
		}
		if !VerifySltHash(slts, stringsToUpper(hash)) {
			t.Fatalf("VerifySltHash should be case-insensitive")
		}
	}
}

func TestIsValidSltHash(t *testing.T) {
	if IsValidSltHash("not-hex") {
		t.Fatal("expected false for non-hex string")
	}
	if IsValidSltHash("abc123") {
		t.Fatal("expected false for short string")
	}
	hash, _ := ComputeSltHash([]string{"x"})
	if !IsValidSltHash(hash) {
		t.Fatalf("expected %q to be valid", hash)
	}
}

func TestComputeSltHashDefiniteDiffersFromIndefiniteForLongStrings(t *testing.T) {
	long := []string{"this particular learning target description exceeds sixty-four bytes by design"}

	indef, err := ComputeSltHash(long)
	if err != nil {
		t.Fatal(err)
	}
	def, err := ComputeSltHashDefinite(long)
	if err != nil {
		t.Fatal(err)
	}
	if indef == def {
		t.Fatal("expected the definite and indefinite chunking variants to diverge for long strings")
	}

	short := []string{"short"}
	indefShort, _ := ComputeSltHash(short)
	defShort, _ := ComputeSltHashDefinite(short)
	if indefShort != defShort {
		t.Fatal("expected both variants to agree for strings under the 64-byte chunk size")
	}
}

func stringsToUpper(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'f' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
