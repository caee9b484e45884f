// Package jobs also runs the recurring IMAP poll that feeds live mail into
// the same normalization pipeline archive-scraped bodies go through.
package jobs

import (
	"context"
	"time"

	"github.com/mailarchive/beautifier/internal/cache"
	"github.com/mailarchive/beautifier/internal/common"
	"github.com/mailarchive/beautifier/internal/connectors/imap"
	"github.com/mailarchive/beautifier/internal/linkref"
	"github.com/mailarchive/beautifier/internal/mailpipe"
	"github.com/ternarybob/arbor"
)

// defaultIMAPPollPeriod is used when IMAPConfig.PollPeriod doesn't parse.
const defaultIMAPPollPeriod = 5 * time.Minute

// IMAPJob periodically fetches unseen messages from a configured mailbox,
// normalizes and renders each body exactly as the archive path does, caches
// the result, and marks the message read.
type IMAPJob struct {
	connector *imap.Connector
	pipeline  *mailpipe.Pipeline
	cache     *cache.Cache
	logger    arbor.ILogger
	list      string
	period    time.Duration

	cancel context.CancelFunc
}

// NewIMAPJob wires an IMAPJob from its collaborators.
func NewIMAPJob(connector *imap.Connector, pipeline *mailpipe.Pipeline, cacheStore *cache.Cache, list, pollPeriod string, logger arbor.ILogger) *IMAPJob {
	period, err := time.ParseDuration(pollPeriod)
	if err != nil || period <= 0 {
		period = defaultIMAPPollPeriod
	}
	return &IMAPJob{
		connector: connector,
		pipeline:  pipeline,
		cache:     cacheStore,
		logger:    logger,
		list:      list,
		period:    period,
	}
}

// Start runs the poll loop in a panic-protected background goroutine. A
// no-op if the connector isn't configured.
func (j *IMAPJob) Start() {
	if !j.connector.Configured() {
		j.logger.Debug().Msg("IMAP job not started, connector not configured")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	common.SafeGoWithContext(ctx, j.logger, "imap-poll", func() {
		j.logger.Info().Dur("period", j.period).Msg("IMAP poll job started")
		ticker := time.NewTicker(j.period)
		defer ticker.Stop()

		j.pollOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.pollOnce(ctx)
			}
		}
	})
}

// Stop cancels the poll loop.
func (j *IMAPJob) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
}

func (j *IMAPJob) pollOnce(ctx context.Context) {
	messages, err := j.connector.FetchUnseen(ctx)
	if err != nil {
		j.logger.Warn().Err(err).Msg("IMAP poll failed to fetch unseen messages")
		return
	}

	yearMonth := time.Now().Format("2006-01")
	for _, msg := range messages {
		markdown := j.pipeline.Normalize(msg.Body, j.list, yearMonth, msg.ID, true)
		html, err := linkref.Render(markdown)
		if err != nil {
			j.logger.Warn().Err(err).Str("message_id", msg.ID).Msg("IMAP message failed to render, leaving unread")
			continue
		}

		if err := j.cache.PutRenderedBody(msg.ID, html); err != nil {
			j.logger.Warn().Err(err).Str("message_id", msg.ID).Msg("IMAP message failed to cache, leaving unread")
			continue
		}

		if err := j.connector.MarkRead(ctx, msg.SeqNum); err != nil {
			j.logger.Warn().Err(err).Str("message_id", msg.ID).Msg("failed to mark IMAP message read")
		}
	}

	if len(messages) > 0 {
		j.logger.Info().Int("count", len(messages)).Msg("IMAP poll ingested messages")
	}
}
