package archive

import "testing"

func TestParseIndexPageExtractsRows(t *testing.T) {
	html := `<table class="archive-index">
		<tr data-id="001" data-author="Alice">
			<td class="subject"><a href="thread/001.html">Bug in parser</a></td>
			<td class="author">Alice</td>
			<td class="date">2026-07-01T12:00:00Z</td>
		</tr>
		<tr data-id="002" data-author="Bob">
			<td class="subject"><a href="thread/002.html">Re: Bug in parser</a></td>
			<td class="author">Bob</td>
			<td class="date">2026-07-02T09:30:00Z</td>
		</tr>
	</table>`

	entries, err := parseIndexPage(html)
	if err != nil {
		t.Fatalf("parseIndexPage returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "001" || entries[0].Subject != "Bug in parser" || entries[0].Path != "thread/001.html" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Author != "Bob" {
		t.Errorf("expected second entry author Bob, got %q", entries[1].Author)
	}
}

func TestParseThreadPageBuildsReplyTree(t *testing.T) {
	html := `<div class="message" data-id="001" data-author="Alice">
		<h2 class="subject">Bug in parser</h2>
		<pre class="body">It fails on empty input.</pre>
		<div class="replies">
			<div class="message" data-id="002" data-author="Bob">
				<h2 class="subject">Re: Bug in parser</h2>
				<pre class="body">Can confirm, looking into it.</pre>
			</div>
			<div class="message" data-id="003" data-author="Carol">
				<h2 class="subject">Re: Bug in parser</h2>
				<pre class="body">Fixed in r42.</pre>
			</div>
		</div>
	</div>`

	root, err := parseThreadPage(html)
	if err != nil {
		t.Fatalf("parseThreadPage returned error: %v", err)
	}
	if root.ID != "001" || root.Author != "Alice" {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(root.Replies))
	}
	if root.Replies[0].ID != "002" || root.Replies[1].ID != "003" {
		t.Errorf("replies out of order: %+v", root.Replies)
	}
}

func TestParseThreadPageReturnsErrorWhenNoMessage(t *testing.T) {
	_, err := parseThreadPage(`<html><body>empty</body></html>`)
	if err == nil {
		t.Fatal("expected error for a thread page with no root message")
	}
}
