package main

import (
	"context"
	"fmt"

	"github.com/mailarchive/beautifier/internal/archive"
	"github.com/mailarchive/beautifier/internal/common"
	"github.com/mailarchive/beautifier/internal/mailpipe"
	"github.com/mailarchive/beautifier/internal/merkle"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
)

// handleNormalizeMailBody implements the normalize_mail_body tool.
func handleNormalizeMailBody(pipeline *mailpipe.Pipeline, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawBody, err := request.RequireString("raw_body")
		if err != nil || rawBody == "" {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: raw_body parameter is required"),
				},
			}, nil
		}

		messageID := request.GetString("message_id", "")
		if messageID == "" {
			messageID = common.NewMessageID()
		}
		rewriteLinks := request.GetBool("rewrite_links", config.Archive.RewriteLinks)

		markdown := pipeline.Normalize(rawBody, config.Archive.List, "", messageID, rewriteLinks)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(markdown),
			},
		}, nil
	}
}

// handleThreadDigest implements the thread_digest tool.
func handleThreadDigest(archiveClient *archive.Client, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		indexPath, err := request.RequireString("index_path")
		if err != nil || indexPath == "" {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: index_path parameter is required"),
				},
			}, nil
		}

		threads, err := archiveClient.FetchMonth(ctx, indexPath)
		if err != nil {
			logger.Error().Err(err).Str("index_path", indexPath).Msg("failed to fetch archive month")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("Error fetching %s: %v", indexPath, err)),
				},
			}, nil
		}

		entries := make([]*merkle.Entry, 0, len(threads))
		for _, t := range threads {
			entries = append(entries, convertThread(t))
		}

		yearMonth := yearMonthFromIndexPath(indexPath)
		tree := merkle.Digest(config.Archive.List, yearMonth, entries)

		result := fmt.Sprintf(
			"List: %s\nMonth: %s\nMerkle root: %s\nTotal messages: %d",
			tree.List, tree.YearMonth, tree.MerkleRootHash.String(), tree.TotalMessages,
		)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(result),
			},
		}, nil
	}
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

// yearMonthFromIndexPath returns the leading path segment of an index path
// like "2026-07/index.html" (everything before the first '/'), or the whole
// path when it has no '/'. The segment's shape is not checked.
func yearMonthFromIndexPath(indexPath string) string {
	for i, r := range indexPath {
		if r == '/' {
			return indexPath[:i]
		}
	}
	return indexPath
}
