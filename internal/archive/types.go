// Package archive provides the minimal HTML index/thread parsing spec.md
// §1 places out of scope as an "external collaborator" but which a runnable
// repository needs some real implementation of. It fetches a mailing-list
// archive's index and thread pages over HTTP and parses them with goquery
// into the (id, subject, author, date, replies) shape internal/merkle and
// internal/mailpipe expect.
package archive

import "time"

// IndexEntry is one row of a mailing-list archive's monthly index page.
type IndexEntry struct {
	ID      string
	Subject string
	Author  string
	Date    time.Time
	Path    string // relative thread-page path, passed to FetchThread
}

// ThreadEntry is one message within a thread page's reply tree. Body is the
// raw preformatted message body exactly as published by the archive,
// before mailpipe.Normalize runs over it.
type ThreadEntry struct {
	ID      string
	Subject string
	Author  string
	Body    string
	Replies []*ThreadEntry
}
