package main

import (
	"fmt"
	"os"

	"github.com/mailarchive/beautifier/internal/archive"
	"github.com/mailarchive/beautifier/internal/common"
	"github.com/mailarchive/beautifier/internal/mailpipe"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
)

func main() {
	configPath := os.Getenv("MAILBEAUTIFY_CONFIG")
	if configPath == "" {
		configPath = "mailbeautify.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging so stdio framing isn't polluted.
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	pipeline := mailpipe.NewPipeline(logger, mailpipe.Config{
		ArchiveHost:    config.Archive.Host,
		ArchivePrefix:  config.Archive.ArchivePrefix,
		RenderedPrefix: config.Archive.RenderedPrefix,
	})
	archiveClient := archive.NewClient(config.Archive.Host, logger)

	mcpServer := server.NewMCPServer(
		"mailbeautify",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createNormalizeMailBodyTool(), handleNormalizeMailBody(pipeline, config, logger))
	mcpServer.AddTool(createThreadDigestTool(), handleThreadDigest(archiveClient, config, logger))

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
