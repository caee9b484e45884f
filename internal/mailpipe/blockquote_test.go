package mailpipe

import "testing"

func TestNormalizeBlockquotesInsertsSpace(t *testing.T) {
	cases := map[string]string{
		">hello":    "> hello",
		"> hello":   "> hello",
		">>hello":   ">> hello",
		">":         ">",
		"no prefix": "no prefix",
		">>> deep":  ">>> deep",
		">  spaced": ">  spaced",
	}
	for in, want := range cases {
		if got := NormalizeBlockquotes(in); got != want {
			t.Errorf("NormalizeBlockquotes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitPrefixEquivalence(t *testing.T) {
	p1, _ := splitPrefix("> > hello")
	p2, _ := splitPrefix(">>hello")
	if !p1.equivalent(p2) {
		t.Errorf("expected equivalent prefixes regardless of spacing")
	}
	p3, _ := splitPrefix("> hello")
	if p1.equivalent(p3) {
		t.Errorf("expected different depths to be non-equivalent")
	}
}
