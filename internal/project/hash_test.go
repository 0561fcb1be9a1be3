package project

import "testing"

func TestCombineSeparatesParts(t *testing.T) {
	var base Digest
	a := Combine(base, []byte("ab"), []byte("c"))
	b := Combine(base, []byte("a"), []byte("bc"))
	if a == b {
		t.Fatalf("part boundaries must affect the key")
	}
	if a != Combine(base, []byte("ab"), []byte("c")) {
		t.Fatalf("combine is not deterministic")
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	d := Combine(Digest{1}, []byte("x"))
	got, err := ParseDigest(d.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != d || got.IsZero() {
		t.Fatalf("round trip mismatch: %s vs %s", got, d)
	}
	if len(d.Short()) != 16 {
		t.Fatalf("short = %q", d.Short())
	}
	if _, err := ParseDigest("abc"); err == nil {
		t.Fatalf("odd-length input should fail")
	}
	if _, err := ParseDigest("abcd"); err == nil {
		t.Fatalf("short input should fail")
	}
}
