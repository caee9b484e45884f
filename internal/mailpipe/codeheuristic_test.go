package mailpipe

import "testing"

func TestLooksLikeCode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"operator arrow", "x -> y", true},
		{"double equals", "if (x == y)", true},
		{"brace open", "void foo() {", true},
		{"comment slash", "// a note", true},
		{"url not comment", "see https://example.test/path", false},
		{"word adjacent decrement", "a--;", true},
		{"bare separator dash", "--", false},
		{"typed decl", "int x = 5;", true},
		{"var decl identifier", "var count = 0;", true},
		{"simple assignment", "x = y;", true},
		{"bare declaration", "Widget w;", true},
		{"method call", "foo(bar, baz)", true},
		{"big-o excluded", "the algorithm is O(n log n) overall", false},
		{"generic call", "List<String> items = load();", true},
		{"plain prose", "Just a question, are you proposing that", false},
		{"markdown link stripped", "see [the docs](https://example.test)", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := looksLikeCode(c.in); got != c.want {
				t.Errorf("looksLikeCode(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestIsEmailHeaderLine(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"From: alice@example.test", true},
		{"*Subject:* hello", true},
		{"Reply-To: bob@example.test", true},
		{"not a header", false},
	}
	for _, c := range cases {
		if got := isEmailHeaderLine(c.in); got != c.want {
			t.Errorf("isEmailHeaderLine(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
