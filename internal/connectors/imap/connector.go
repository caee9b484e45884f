// Package imap supplements spec.md's HTTP-archive-only ingestion path
// (spec.md §1 names the archive's HTML as the only input) with a live mail
// connector: mailing lists are frequently also consumed by subscribing an
// IMAP mailbox to them. Fetched bodies feed the identical
// mailpipe.Normalize pipeline as archive-scraped bodies.
package imap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/mailarchive/beautifier/internal/common"
	"github.com/ternarybob/arbor"
)

// Message is a single fetched mailbox message, with its body still in raw
// archive-published form (not yet run through mailpipe.Normalize). SeqNum
// identifies it within the mailbox for a subsequent MarkRead call.
type Message struct {
	ID      string
	From    string
	Subject string
	Body    string
	Date    time.Time
	SeqNum  uint32
}

// Connector reads unseen messages from a configured IMAP mailbox.
type Connector struct {
	cfg    common.IMAPConfig
	logger arbor.ILogger
}

// NewConnector builds a Connector from the server's IMAP configuration.
func NewConnector(cfg common.IMAPConfig, logger arbor.ILogger) *Connector {
	return &Connector{cfg: cfg, logger: logger}
}

// Configured reports whether enough connection detail is present to dial
// the server at all.
func (c *Connector) Configured() bool {
	return c.cfg.Host != "" && c.cfg.Username != "" && c.cfg.Password != ""
}

func (c *Connector) dial() (*client.Client, error) {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	var cl *client.Client
	var err error
	if c.cfg.UseTLS {
		cl, err = client.DialTLS(addr, nil)
	} else {
		cl, err = client.Dial(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server %s: %w", addr, err)
	}

	if err := cl.Login(c.cfg.Username, c.cfg.Password); err != nil {
		cl.Logout()
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	return cl, nil
}

// FetchUnseen connects, fetches every unseen message in the configured
// mailbox, and returns it without marking it read. Call MarkRead
// afterward once the message has been durably stored.
func (c *Connector) FetchUnseen(ctx context.Context) ([]Message, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("IMAP connector not configured")
	}

	mailbox := c.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}

	cl, err := c.dial()
	if err != nil {
		return nil, err
	}
	defer cl.Logout()

	mbox, err := cl.Select(mailbox, false)
	if err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", mailbox, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}

	seqNums, err := cl.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search for unseen messages: %w", err)
	}
	if len(seqNums) == 0 {
		return nil, nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNums...)

	section := &imap.BodySectionName{Peek: true}
	messages := make(chan *imap.Message, len(seqNums))

	done := make(chan error, 1)
	go func() {
		done <- cl.Fetch(seqSet, []imap.FetchItem{imap.FetchEnvelope, imap.FetchFlags, section.FetchItem()}, messages)
	}()

	var fetched []Message
	for msg := range messages {
		if msg == nil {
			continue
		}

		body, err := parseTextBody(msg, section)
		if err != nil {
			c.logger.Warn().Err(err).Uint32("seq", msg.SeqNum).Msg("failed to parse message body, skipping")
			continue
		}

		from := ""
		if len(msg.Envelope.From) > 0 {
			from = msg.Envelope.From[0].Address()
		}

		id := msg.Envelope.MessageId
		if id == "" {
			id = common.NewMessageID()
		}

		fetched = append(fetched, Message{
			ID:      id,
			From:    from,
			Subject: msg.Envelope.Subject,
			Body:    body,
			Date:    msg.Envelope.Date,
			SeqNum:  msg.SeqNum,
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return fetched, nil
}

// MarkRead flags a message as seen so it is excluded from the next
// FetchUnseen call.
func (c *Connector) MarkRead(ctx context.Context, seqNum uint32) error {
	mailbox := c.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}

	cl, err := c.dial()
	if err != nil {
		return err
	}
	defer cl.Logout()

	if _, err := cl.Select(mailbox, false); err != nil {
		return fmt.Errorf("failed to select mailbox %s: %w", mailbox, err)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNum)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}

	if err := cl.Store(seqSet, item, flags, nil); err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}

	return nil
}

func parseTextBody(msg *imap.Message, section *imap.BodySectionName) (string, error) {
	r := msg.GetBody(section)
	if r == nil {
		return "", fmt.Errorf("no body section for message")
	}

	mr, err := mail.CreateReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to create mail reader: %w", err)
	}

	var body string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read next part: %w", err)
		}

		if h, ok := p.Header.(*mail.InlineHeader); ok {
			contentType, _, _ := h.ContentType()
			if strings.HasPrefix(contentType, "text/plain") {
				b, err := io.ReadAll(p.Body)
				if err != nil {
					return "", fmt.Errorf("failed to read body: %w", err)
				}
				body = string(b)
			}
		}
	}

	return strings.TrimSpace(body), nil
}
