package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// parseIndexPage parses a monthly archive index page. Expected shape:
//
//	<table class="archive-index">
//	  <tr data-id="..." data-author="...">
//	    <td class="subject"><a href="path">Subject</a></td>
//	    <td class="author">Author Name</td>
//	    <td class="date">2026-07-01T12:00:00Z</td>
//	  </tr>
//	  ...
//	</table>
func parseIndexPage(html string) ([]IndexEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse archive index page: %w", err)
	}

	var entries []IndexEntry
	doc.Find("table.archive-index tr").Each(func(i int, row *goquery.Selection) {
		id, hasID := row.Attr("data-id")
		if !hasID {
			return
		}

		link := row.Find("td.subject a")
		subject := strings.TrimSpace(link.Text())
		path, _ := link.Attr("href")

		author, _ := row.Attr("data-author")
		if author == "" {
			author = strings.TrimSpace(row.Find("td.author").Text())
		}

		dateText := strings.TrimSpace(row.Find("td.date").Text())
		date, _ := time.Parse(time.RFC3339, dateText)

		entries = append(entries, IndexEntry{
			ID:      id,
			Subject: subject,
			Author:  author,
			Date:    date,
			Path:    path,
		})
	})

	return entries, nil
}

// parseThreadPage parses a thread page into its nested reply tree. Expected
// shape:
//
//	<div class="message" data-id="..." data-author="...">
//	  <h2 class="subject">Subject</h2>
//	  <pre class="body">raw message body</pre>
//	  <div class="replies">
//	    <div class="message" data-id="..." data-author="...">...</div>
//	  </div>
//	</div>
func parseThreadPage(html string) (*ThreadEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse archive thread page: %w", err)
	}

	root := doc.Find("div.message").First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("no root message found in thread page")
	}

	return parseMessageNode(root), nil
}

func parseMessageNode(sel *goquery.Selection) *ThreadEntry {
	id, _ := sel.Attr("data-id")
	author, _ := sel.Attr("data-author")

	entry := &ThreadEntry{
		ID:      id,
		Subject: strings.TrimSpace(sel.Find("> h2.subject").Text()),
		Author:  author,
		Body:    sel.Find("> pre.body").Text(),
	}

	sel.Find("> div.replies > div.message").Each(func(i int, reply *goquery.Selection) {
		entry.Replies = append(entry.Replies, parseMessageNode(reply))
	})

	return entry
}
