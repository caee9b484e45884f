package mailpipe

import "testing"

func TestNormalizeEntitiesDecodesOnce(t *testing.T) {
	got := NormalizeEntities("Tom &amp; Jerry")
	want := "Tom & Jerry"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeEntitiesDoesNotDoubleDecode(t *testing.T) {
	once := NormalizeEntities("&amp;lt;")
	if once != "&lt;" {
		t.Errorf("a single pass should decode one entity level only: got %q, want %q", once, "&lt;")
	}
}

func TestNormalizeEntitiesStripsItalicMarkers(t *testing.T) {
	got := NormalizeEntities("<i>quoted text</i>")
	if got != "quoted text" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeEntitiesReplacesNBSP(t *testing.T) {
	got := NormalizeEntities("a b")
	if got != "a b" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeEntitiesAttachmentNotice(t *testing.T) {
	got := NormalizeEntities("before\n----------next part----------\nbinary garbage")
	if got != "before\n" {
		t.Errorf("got %q, want text truncated at the attachment notice", got)
	}
}
