package merkle

import (
	"crypto/sha256"
	"testing"
)

func hashConcat(parts ...[]byte) Hash {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

func TestDigestEmptyTreeHasZeroRoot(t *testing.T) {
	tree := Digest("list", "2026-07", nil)
	var zero Hash
	if tree.MerkleRootHash != zero {
		t.Errorf("expected the all-zero root for an empty tree, got %s", tree.MerkleRootHash)
	}
	if tree.TotalMessages != 0 {
		t.Errorf("expected 0 total messages, got %d", tree.TotalMessages)
	}
}

func TestDigestSingletonRootEqualsContentHash(t *testing.T) {
	e := &Entry{ID: "001", Subject: "S", Author: "A"}
	tree := Digest("list", "2026-07", []*Entry{e})
	want := hashConcat([]byte("001"), []byte("S"), []byte("A"))
	if tree.MerkleRootHash != want {
		t.Errorf("got %s, want %s", tree.MerkleRootHash, want)
	}
	if e.ContentHash != want {
		t.Errorf("entry's own ContentHash must be stamped too: got %s, want %s", e.ContentHash, want)
	}
}

func TestDigestThreeEntryRootMatchesScenario(t *testing.T) {
	r := &Entry{ID: "001", Subject: "S", Author: "A", Replies: []*Entry{
		{ID: "002", Subject: "Re: S", Author: "B"},
		{ID: "003", Subject: "Re: S", Author: "C"},
	}}
	tree := Digest("list", "2026-07", []*Entry{r})

	h1 := hashConcat([]byte("001"), []byte("S"), []byte("A"))
	h2 := hashConcat([]byte("002"), []byte("Re: S"), []byte("B"))
	h3 := hashConcat([]byte("003"), []byte("Re: S"), []byte("C"))
	h23 := hashConcat(h2[:], h3[:])
	want := hashConcat(h1[:], h23[:])

	if tree.MerkleRootHash != want {
		t.Errorf("got %s, want %s", tree.MerkleRootHash, want)
	}
	if tree.TotalMessages != 3 {
		t.Errorf("expected 3 total messages, got %d", tree.TotalMessages)
	}
}

func TestDigestChangingAReplyChangesTheRoot(t *testing.T) {
	build := func(author002 string) Hash {
		r := &Entry{ID: "001", Subject: "S", Author: "A", Replies: []*Entry{
			{ID: "002", Subject: "Re: S", Author: author002},
			{ID: "003", Subject: "Re: S", Author: "C"},
		}}
		return Digest("list", "2026-07", []*Entry{r}).MerkleRootHash
	}
	if build("B") == build("C") {
		t.Error("changing entry 002's author must change the Merkle root")
	}
}

func TestDigestIsDeterministic(t *testing.T) {
	build := func() Hash {
		r := &Entry{ID: "001", Subject: "S", Author: "A", Replies: []*Entry{
			{ID: "002", Subject: "Re: S", Author: "B"},
		}}
		return Digest("list", "2026-07", []*Entry{r}).MerkleRootHash
	}
	if build() != build() {
		t.Error("Digest must be pure and deterministic given identical input")
	}
}
