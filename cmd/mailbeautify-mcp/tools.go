package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createNormalizeMailBodyTool returns the normalize_mail_body tool definition
func createNormalizeMailBodyTool() mcp.Tool {
	return mcp.NewTool("normalize_mail_body",
		mcp.WithDescription("Run a raw archived mail body through the normalization pipeline and return Markdown"),
		mcp.WithString("raw_body",
			mcp.Required(),
			mcp.Description("Raw preformatted message body as published in the archive"),
		),
		mcp.WithString("message_id",
			mcp.Description("Message ID (optional, generated when omitted); the returned Markdown does not depend on it"),
		),
		mcp.WithBoolean("rewrite_links",
			mcp.Description("Rewrite archive-internal links to the configured rendered prefix (default: config value)"),
		),
	)
}

// createThreadDigestTool returns the thread_digest tool definition
func createThreadDigestTool() mcp.Tool {
	return mcp.NewTool("thread_digest",
		mcp.WithDescription("Fetch an archive month's index and compute its current Merkle digest"),
		mcp.WithString("index_path",
			mcp.Required(),
			mcp.Description("Archive-relative path to the month's index page, e.g. \"2026-07/index.html\""),
		),
	)
}
