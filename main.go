// Telegraph MCP Server - A Model Context Protocol server for the Telegraph
// publishing platform (telegra.ph). Provides tools for creating, editing,
// and reading pages, and for managing the publishing account.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/telegraph-tools/telegraph-mcp-server/telegraph"
	"github.com/telegraph-tools/telegraph-mcp-server/tools"
	"github.com/telegraph-tools/telegraph-mcp-server/tracing"
)

const (
	ServerName    = "telegraph-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Telegraph MCP Server provides tools for publishing on telegra.ph.

Available tools:
- telegraph_create_page: Publish a new page
- telegraph_edit_page: Replace the title and content of an existing page
- telegraph_get_page: Fetch a page by its path
- telegraph_get_page_list: List the account's pages
- telegraph_get_views: Get a page's view count, optionally for a period
- telegraph_create_account: Create a new Telegraph account
- telegraph_edit_account_info: Update the account name or default byline
- telegraph_get_account_info: Fetch account details
- telegraph_revoke_access_token: Rotate the account's access token
- telegraph_status: Report server health

Page content is a JSON array of nodes, e.g. [{"tag":"p","children":["Hello"]}].
Allowed tags: a, aside, b, blockquote, br, code, em, figcaption, figure, h3, h4,
hr, i, iframe, img, li, ol, p, pre, s, strong, u, ul, video.
Allowed attributes: href, src.

Configure via environment variables:
- TELEGRAPH_ACCESS_TOKEN: Account access token (required for account-bound tools)
- TELEGRAPH_API_URL: API base URL (default https://api.telegra.ph)
- TELEGRAPH_TIMEOUT: HTTP timeout, e.g. "30s" (default 10s)
- TELEGRAPH_USER_AGENT: User-Agent header override`

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	config, err := telegraph.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !config.HasAccessToken() {
		logger.Warn("TELEGRAPH_ACCESS_TOKEN is not set; account-bound tools will fail until one is configured")
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	client := telegraph.NewClientFromConfig(config, telegraph.WithLogger(logger))
	defer client.Close()

	registry := tools.NewHandlerRegistry(client, logger)
	defer registry.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	registry.RegisterAll(server)

	logger.Info("Starting Telegraph MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"api_url", config.BaseURL,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
