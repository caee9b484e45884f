// -----------------------------------------------------------------------
// App wiring - the mail archive beautifier's dependency graph
// -----------------------------------------------------------------------

package app

import (
	"fmt"

	"github.com/mailarchive/beautifier/internal/archive"
	"github.com/mailarchive/beautifier/internal/cache"
	"github.com/mailarchive/beautifier/internal/common"
	"github.com/mailarchive/beautifier/internal/connectors/imap"
	"github.com/mailarchive/beautifier/internal/handlers"
	"github.com/mailarchive/beautifier/internal/jobs"
	"github.com/mailarchive/beautifier/internal/mailpipe"
	"github.com/mailarchive/beautifier/internal/services/digestpdf"
	"github.com/ternarybob/arbor"
)

// App holds every long-lived component the HTTP server and background jobs
// share.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Cache         *cache.Cache
	ArchiveClient *archive.Client
	IMAP          *imap.Connector
	Pipeline      *mailpipe.Pipeline
	PDFExporter   *digestpdf.Exporter
	WSHandler     *handlers.WebSocketHandler
	DigestJob     *jobs.DigestJob
	IMAPJob       *jobs.IMAPJob

	APIHandler    *handlers.APIHandler
	ThreadHandler *handlers.ThreadHandler
}

// New initializes the application's dependency graph in the order each
// component requires.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	c, err := cache.Open(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	a.Cache = c

	a.ArchiveClient = archive.NewClient(cfg.Archive.Host, logger)
	a.IMAP = imap.NewConnector(cfg.IMAP, logger)
	a.Pipeline = mailpipe.NewPipeline(logger, mailpipe.Config{
		ArchiveHost:    cfg.Archive.Host,
		ArchivePrefix:  cfg.Archive.ArchivePrefix,
		RenderedPrefix: cfg.Archive.RenderedPrefix,
	})
	a.PDFExporter = digestpdf.NewExporter(logger)
	a.WSHandler = handlers.NewWebSocketHandler(logger)

	a.APIHandler = handlers.NewAPIHandler(cfg, logger)
	a.ThreadHandler = handlers.NewThreadHandler(a.ArchiveClient, a.Cache, a.Pipeline, cfg.Archive, logger)

	indexPath := cfg.Archive.ArchivePrefix
	a.DigestJob = jobs.NewDigestJob(
		a.ArchiveClient,
		a.Cache,
		a.PDFExporter,
		a.WSHandler,
		cfg.Archive.List,
		indexPath,
		cfg.Digest.OutputDir,
		logger,
	)

	if cfg.Digest.Schedule != "" {
		if err := a.DigestJob.Start(cfg.Digest.Schedule); err != nil {
			logger.Warn().Err(err).Msg("failed to start digest job")
		}
	}

	a.IMAPJob = jobs.NewIMAPJob(a.IMAP, a.Pipeline, a.Cache, cfg.Archive.List, cfg.IMAP.PollPeriod, logger)
	a.IMAPJob.Start()

	return a, nil
}

// Close releases every resource App opened.
func (a *App) Close() error {
	if a.DigestJob != nil {
		a.DigestJob.Stop()
	}
	if a.IMAPJob != nil {
		a.IMAPJob.Stop()
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			return fmt.Errorf("failed to close cache: %w", err)
		}
	}
	return nil
}
