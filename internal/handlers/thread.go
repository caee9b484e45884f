package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mailarchive/beautifier/internal/archive"
	"github.com/mailarchive/beautifier/internal/cache"
	"github.com/mailarchive/beautifier/internal/common"
	"github.com/mailarchive/beautifier/internal/linkref"
	"github.com/mailarchive/beautifier/internal/mailpipe"
	"github.com/ternarybob/arbor"
)

// ThreadHandler fetches an archived thread, runs every message body
// through the normalization pipeline, renders it to HTML via linkref, and
// serves it as JSON. Rendered bodies are cached so repeat requests for a
// popular thread don't re-run the pipeline.
type ThreadHandler struct {
	archive  *archive.Client
	cache    *cache.Cache
	pipeline *mailpipe.Pipeline
	cfg      common.ArchiveConfig
	logger   arbor.ILogger
}

// NewThreadHandler builds a ThreadHandler.
func NewThreadHandler(archiveClient *archive.Client, cacheStore *cache.Cache, pipeline *mailpipe.Pipeline, cfg common.ArchiveConfig, logger arbor.ILogger) *ThreadHandler {
	return &ThreadHandler{archive: archiveClient, cache: cacheStore, pipeline: pipeline, cfg: cfg, logger: logger}
}

// renderedMessage is one normalized, HTML-rendered message in a thread.
type renderedMessage struct {
	ID      string             `json:"id"`
	Subject string             `json:"subject"`
	Author  string             `json:"author"`
	HTML    string             `json:"html"`
	Replies []*renderedMessage `json:"replies,omitempty"`
}

// ThreadPageHandler serves a single archived thread as normalized,
// rendered HTML. Path: /thread/{path...}, where {path...} is the
// archive-relative path to the thread page.
func (h *ThreadHandler) ThreadPageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	threadPath := strings.TrimPrefix(r.URL.Path, "/thread/")
	if threadPath == "" {
		http.Error(w, "missing thread path", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	thread, err := h.archive.FetchThread(ctx, threadPath)
	if err != nil {
		h.logger.Warn().Err(err).Str("path", threadPath).Msg("failed to fetch thread")
		http.Error(w, "thread not found", http.StatusNotFound)
		return
	}

	list := h.cfg.List
	yearMonth := time.Now().Format("2006-01")

	rendered, err := h.renderMessage(thread, list, yearMonth)
	if err != nil {
		h.logger.Error().Err(err).Str("path", threadPath).Msg("failed to render thread")
		http.Error(w, "failed to render thread", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rendered)
}

func (h *ThreadHandler) renderMessage(t *archive.ThreadEntry, list, yearMonth string) (*renderedMessage, error) {
	html, cached, err := h.cache.GetRenderedBody(t.ID)
	if err != nil {
		return nil, err
	}
	if !cached {
		markdown := h.pipeline.Normalize(t.Body, list, yearMonth, t.ID, h.cfg.RewriteLinks)
		html, err = linkref.Render(markdown)
		if err != nil {
			return nil, err
		}
		if err := h.cache.PutRenderedBody(t.ID, html); err != nil {
			h.logger.Warn().Err(err).Str("id", t.ID).Msg("failed to cache rendered body")
		}
	}

	out := &renderedMessage{
		ID:      t.ID,
		Subject: t.Subject,
		Author:  t.Author,
		HTML:    html,
	}
	for _, reply := range t.Replies {
		child, err := h.renderMessage(reply, list, yearMonth)
		if err != nil {
			return nil, err
		}
		out.Replies = append(out.Replies, child)
	}
	return out, nil
}
