// Package jobs schedules the recurring re-digest run spec.md leaves as a
// black box ("fingerprint a month's thread structure for integrity/change
// detection"): recompute the Merkle root for the current month, and when
// it differs from the last recorded root, write a fresh PDF digest and
// push a websocket event.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mailarchive/beautifier/internal/archive"
	"github.com/mailarchive/beautifier/internal/cache"
	"github.com/mailarchive/beautifier/internal/handlers"
	"github.com/mailarchive/beautifier/internal/merkle"
	"github.com/mailarchive/beautifier/internal/services/digestpdf"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// DigestJob recomputes a mailing list's current-month Merkle digest on a
// cron schedule.
type DigestJob struct {
	cron      *cron.Cron
	logger    arbor.ILogger
	archive   *archive.Client
	cache     *cache.Cache
	exporter  *digestpdf.Exporter
	ws        *handlers.WebSocketHandler
	list      string
	indexPath string
	outputDir string
	mu        sync.Mutex
	entryID   cron.EntryID
	running   bool
}

// NewDigestJob wires a DigestJob from its collaborators. indexPath is the
// archive-relative path to the current month's index page, e.g.
// "2026-07/index.html".
func NewDigestJob(
	archiveClient *archive.Client,
	cacheStore *cache.Cache,
	exporter *digestpdf.Exporter,
	ws *handlers.WebSocketHandler,
	list, indexPath, outputDir string,
	logger arbor.ILogger,
) *DigestJob {
	return &DigestJob{
		cron:      cron.New(),
		logger:    logger,
		archive:   archiveClient,
		cache:     cacheStore,
		exporter:  exporter,
		ws:        ws,
		list:      list,
		indexPath: indexPath,
		outputDir: outputDir,
	}
}

// Start registers the recurring run on the given cron expression and
// starts the scheduler.
func (j *DigestJob) Start(schedule string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return fmt.Errorf("digest job already running")
	}

	entryID, err := j.cron.AddFunc(schedule, j.runOnce)
	if err != nil {
		return fmt.Errorf("invalid digest job schedule %q: %w", schedule, err)
	}
	j.entryID = entryID

	j.cron.Start()
	j.running = true
	j.logger.Info().Str("schedule", schedule).Str("list", j.list).Msg("digest job scheduled")
	return nil
}

// Stop halts the scheduler, waiting for any in-flight run to finish.
func (j *DigestJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.running {
		return
	}
	<-j.cron.Stop().Done()
	j.running = false
}

// RunNow executes one digest pass immediately, outside the cron schedule.
// Used by the HTTP digest-trigger endpoint.
func (j *DigestJob) RunNow() {
	j.runOnce()
}

func (j *DigestJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	yearMonth := time.Now().Format("2006-01")

	roots, err := j.archive.FetchMonth(ctx, j.indexPath)
	if err != nil {
		j.logger.Warn().Err(err).Str("list", j.list).Msg("digest job failed to fetch archive month")
		return
	}

	entries := make([]*merkle.Entry, 0, len(roots))
	for _, r := range roots {
		entries = append(entries, convertThread(r))
	}

	tree := merkle.Digest(j.list, yearMonth, entries)
	newRoot := tree.MerkleRootHash.String()

	previousRoot, found, err := j.cache.GetDigestRoot(j.list, yearMonth)
	if err != nil {
		j.logger.Warn().Err(err).Msg("digest job failed to read previous root from cache")
	}

	if found && previousRoot == newRoot {
		j.logger.Debug().Str("list", j.list).Str("year_month", yearMonth).Msg("digest unchanged, skipping export")
		return
	}

	if err := j.cache.PutDigestRoot(j.list, yearMonth, newRoot); err != nil {
		j.logger.Warn().Err(err).Msg("digest job failed to record new root in cache")
	}

	if err := j.writePDF(tree); err != nil {
		j.logger.Warn().Err(err).Msg("digest job failed to write PDF export")
	}

	if j.ws != nil {
		j.ws.BroadcastDigestChanged(handlers.DigestChangedEvent{
			List:      j.list,
			YearMonth: yearMonth,
			RootHash:  newRoot,
			Timestamp: time.Now(),
		})
	}

	j.logger.Info().
		Str("list", j.list).
		Str("year_month", yearMonth).
		Str("root_hash", newRoot).
		Int("total_messages", tree.TotalMessages).
		Msg("digest root changed")
}

func (j *DigestJob) writePDF(tree *merkle.Tree) error {
	pdfBytes, err := j.exporter.Export(tree)
	if err != nil {
		return fmt.Errorf("failed to render digest PDF: %w", err)
	}

	if err := os.MkdirAll(j.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create digest output directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.pdf", tree.List, tree.YearMonth)
	path := filepath.Join(j.outputDir, filename)
	if err := os.WriteFile(path, pdfBytes, 0644); err != nil {
		return fmt.Errorf("failed to write digest PDF to %s: %w", path, err)
	}

	return nil
}

func convertThread(t *archive.ThreadEntry) *merkle.Entry {
	entry := &merkle.Entry{
		ID:      t.ID,
		Subject: t.Subject,
		Author:  t.Author,
	}
	for _, reply := range t.Replies {
		entry.Replies = append(entry.Replies, convertThread(reply))
	}
	return entry
}
