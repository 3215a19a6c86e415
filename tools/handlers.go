package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/telegraph-tools/telegraph-mcp-server/internal/infra"
	"github.com/telegraph-tools/telegraph-mcp-server/metrics"
	"github.com/telegraph-tools/telegraph-mcp-server/telegraph"
	"github.com/telegraph-tools/telegraph-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Cache TTLs per operation. Pages are immutable until edited through this
// server, so they can live longer than listings and view counts.
const (
	pageTTL    = 5 * time.Minute
	listTTL    = time.Minute
	viewsTTL   = time.Minute
	accountTTL = 5 * time.Minute
)

const revokeWarning = "the configured token is now invalid; restart the server with the new access_token"

// HandlerRegistry provides type-safe tool registration. It wraps the
// Telegraph client with caching, request deduplication, and a circuit
// breaker guarding the upstream API.
type HandlerRegistry struct {
	client  *telegraph.Client
	cache   *infra.Cache
	dedup   *infra.Deduplicator
	breaker *infra.CircuitBreaker
	logger  *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *telegraph.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client:  client,
		cache:   infra.NewCache(infra.DefaultMaxCacheEntries),
		dedup:   infra.NewDeduplicator(),
		breaker: infra.NewCircuitBreaker(),
		logger:  logger,
	}
}

// Close releases the registry's background resources.
func (h *HandlerRegistry) Close() {
	h.cache.Close()
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "CreatePage":
		register(h, server, tool, spec, h.CreatePageMCP)
	case "EditPage":
		register(h, server, tool, spec, h.EditPageMCP)
	case "GetPage":
		register(h, server, tool, spec, h.GetPageMCP)
	case "GetPageList":
		register(h, server, tool, spec, h.GetPageListMCP)
	case "GetViews":
		register(h, server, tool, spec, h.GetViewsMCP)
	case "CreateAccount":
		register(h, server, tool, spec, h.CreateAccountMCP)
	case "EditAccountInfo":
		register(h, server, tool, spec, h.EditAccountInfoMCP)
	case "GetAccountInfo":
		register(h, server, tool, spec, h.GetAccountInfoMCP)
	case "RevokeAccessToken":
		register(h, server, tool, spec, h.RevokeAccessTokenMCP)
	case "Status":
		register(h, server, tool, spec, h.StatusMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the handler method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// callAPI runs one Telegraph API call through the circuit breaker and
// records its latency. Only transport and decode failures count against
// the breaker; API rejections and validation errors mean the upstream is
// healthy.
func (h *HandlerRegistry) callAPI(ctx context.Context, method, path string, fn func() (interface{}, error)) (interface{}, error) {
	if !h.breaker.Allow() {
		metrics.CircuitRejections.Inc()
		return nil, infra.ErrCircuitOpen{RetryAt: h.breaker.RetryAt()}
	}

	_, span := tracing.StartSpan(ctx, "telegraph.api."+method)
	defer span.End()
	tracing.AddAPIAttributes(span, method, path)

	start := time.Now()
	result, err := fn()
	duration := time.Since(start).Seconds()

	kind := errorKind(err)
	metrics.RecordAPICall(method, duration, err == nil, kind)

	switch kind {
	case "transport", "decode":
		h.breaker.RecordFailure()
	default:
		h.breaker.RecordSuccess()
	}

	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return result, nil
}

// cachedCall serves a read operation from the cache when possible, and
// otherwise coalesces concurrent identical calls before hitting the API.
func (h *HandlerRegistry) cachedCall(ctx context.Context, key string, ttl time.Duration, fn func() (interface{}, error)) (interface{}, bool, error) {
	if data, ok := h.cache.Get(key); ok {
		metrics.RecordCacheAccess(true)
		return data, true, nil
	}
	metrics.RecordCacheAccess(false)

	result, shared, err := h.dedup.Do(ctx, key, fn)
	if err != nil {
		return nil, false, err
	}
	if shared {
		metrics.DeduplicatedCalls.Inc()
	} else {
		h.cache.Set(key, result, ttl)
		metrics.SetCacheSize(h.cache.Size())
	}
	return result, false, nil
}

// errorKind maps an error to its metrics label.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case telegraph.IsValidation(err):
		return "validation"
	case telegraph.IsAPI(err):
		return "api"
	case telegraph.IsTransport(err):
		return "transport"
	case telegraph.IsDecode(err):
		return "decode"
	default:
		return "other"
	}
}

// CreatePageMCP is the MCP handler for telegraph_create_page
func (h *HandlerRegistry) CreatePageMCP(ctx context.Context, args CreatePageArgs) (CreatePageResult, error) {
	content, err := telegraph.ParseContent([]byte(args.Content))
	if err != nil {
		return CreatePageResult{}, err
	}
	metrics.ContentSize.WithLabelValues("create_page").Observe(float64(len(args.Content)))

	result, err := h.callAPI(ctx, "createPage", "", func() (interface{}, error) {
		return h.client.CreatePage(ctx, telegraph.CreatePageArgs{
			Title:         args.Title,
			AuthorName:    args.AuthorName,
			AuthorURL:     args.AuthorURL,
			Content:       content,
			ReturnContent: args.ReturnContent,
		})
	})
	if err != nil {
		return CreatePageResult{}, err
	}
	page := result.(*telegraph.Page)

	h.cache.DeletePrefix("pagelist:")
	h.cache.DeletePrefix("account:")

	summary, err := pageSummary(page)
	if err != nil {
		return CreatePageResult{}, err
	}
	return CreatePageResult{Page: summary}, nil
}

// EditPageMCP is the MCP handler for telegraph_edit_page
func (h *HandlerRegistry) EditPageMCP(ctx context.Context, args EditPageArgs) (EditPageResult, error) {
	content, err := telegraph.ParseContent([]byte(args.Content))
	if err != nil {
		return EditPageResult{}, err
	}
	metrics.ContentSize.WithLabelValues("edit_page").Observe(float64(len(args.Content)))

	result, err := h.callAPI(ctx, "editPage", args.Path, func() (interface{}, error) {
		return h.client.EditPage(ctx, telegraph.EditPageArgs{
			Path:          args.Path,
			Title:         args.Title,
			AuthorName:    args.AuthorName,
			AuthorURL:     args.AuthorURL,
			Content:       content,
			ReturnContent: args.ReturnContent,
		})
	})
	if err != nil {
		return EditPageResult{}, err
	}
	page := result.(*telegraph.Page)

	h.cache.DeletePrefix("page:" + args.Path)
	h.cache.DeletePrefix("pagelist:")

	summary, err := pageSummary(page)
	if err != nil {
		return EditPageResult{}, err
	}
	return EditPageResult{Page: summary}, nil
}

// GetPageMCP is the MCP handler for telegraph_get_page
func (h *HandlerRegistry) GetPageMCP(ctx context.Context, args GetPageArgs) (GetPageResult, error) {
	key := fmt.Sprintf("page:%s:content=%t", args.Path, args.ReturnContent)

	result, cached, err := h.cachedCall(ctx, key, pageTTL, func() (interface{}, error) {
		return h.callAPI(ctx, "getPage", args.Path, func() (interface{}, error) {
			return h.client.GetPage(ctx, telegraph.GetPageArgs{
				Path:          args.Path,
				ReturnContent: args.ReturnContent,
			})
		})
	})
	if err != nil {
		return GetPageResult{}, err
	}

	summary, err := pageSummary(result.(*telegraph.Page))
	if err != nil {
		return GetPageResult{}, err
	}
	return GetPageResult{Page: summary, Cached: cached}, nil
}

// GetPageListMCP is the MCP handler for telegraph_get_page_list
func (h *HandlerRegistry) GetPageListMCP(ctx context.Context, args GetPageListArgs) (GetPageListResult, error) {
	key := fmt.Sprintf("pagelist:%d:%d", args.Offset, args.Limit)

	result, cached, err := h.cachedCall(ctx, key, listTTL, func() (interface{}, error) {
		return h.callAPI(ctx, "getPageList", "", func() (interface{}, error) {
			return h.client.GetPageList(ctx, telegraph.GetPageListArgs{
				Offset: args.Offset,
				Limit:  args.Limit,
			})
		})
	})
	if err != nil {
		return GetPageListResult{}, err
	}
	list := result.(*telegraph.PageList)

	pages := make([]PageSummary, 0, len(list.Pages))
	for i := range list.Pages {
		summary, err := pageSummary(&list.Pages[i])
		if err != nil {
			return GetPageListResult{}, err
		}
		pages = append(pages, summary)
	}
	return GetPageListResult{TotalCount: list.TotalCount, Pages: pages, Cached: cached}, nil
}

// GetViewsMCP is the MCP handler for telegraph_get_views
func (h *HandlerRegistry) GetViewsMCP(ctx context.Context, args GetViewsArgs) (GetViewsResult, error) {
	key := fmt.Sprintf("views:%s:%s:%s:%s:%s",
		args.Path, fmtPeriod(args.Year), fmtPeriod(args.Month), fmtPeriod(args.Day), fmtPeriod(args.Hour))

	result, cached, err := h.cachedCall(ctx, key, viewsTTL, func() (interface{}, error) {
		return h.callAPI(ctx, "getViews", args.Path, func() (interface{}, error) {
			return h.client.GetViews(ctx, telegraph.GetViewsArgs{
				Path:  args.Path,
				Year:  args.Year,
				Month: args.Month,
				Day:   args.Day,
				Hour:  args.Hour,
			})
		})
	})
	if err != nil {
		return GetViewsResult{}, err
	}
	return GetViewsResult{Views: result.(*telegraph.PageViews).Views, Cached: cached}, nil
}

// CreateAccountMCP is the MCP handler for telegraph_create_account
func (h *HandlerRegistry) CreateAccountMCP(ctx context.Context, args CreateAccountArgs) (CreateAccountResult, error) {
	result, err := h.callAPI(ctx, "createAccount", "", func() (interface{}, error) {
		return h.client.CreateAccount(ctx, telegraph.CreateAccountArgs{
			ShortName:  args.ShortName,
			AuthorName: args.AuthorName,
			AuthorURL:  args.AuthorURL,
		})
	})
	if err != nil {
		return CreateAccountResult{}, err
	}
	return CreateAccountResult{Account: accountSummary(result.(*telegraph.Account))}, nil
}

// EditAccountInfoMCP is the MCP handler for telegraph_edit_account_info
func (h *HandlerRegistry) EditAccountInfoMCP(ctx context.Context, args EditAccountInfoArgs) (EditAccountInfoResult, error) {
	result, err := h.callAPI(ctx, "editAccountInfo", "", func() (interface{}, error) {
		return h.client.EditAccountInfo(ctx, telegraph.EditAccountInfoArgs{
			ShortName:  args.ShortName,
			AuthorName: args.AuthorName,
			AuthorURL:  args.AuthorURL,
		})
	})
	if err != nil {
		return EditAccountInfoResult{}, err
	}

	h.cache.DeletePrefix("account:")

	return EditAccountInfoResult{Account: accountSummary(result.(*telegraph.Account))}, nil
}

// GetAccountInfoMCP is the MCP handler for telegraph_get_account_info
func (h *HandlerRegistry) GetAccountInfoMCP(ctx context.Context, args GetAccountInfoArgs) (GetAccountInfoResult, error) {
	key := "account:" + strings.Join(args.Fields, ",")

	result, cached, err := h.cachedCall(ctx, key, accountTTL, func() (interface{}, error) {
		return h.callAPI(ctx, "getAccountInfo", "", func() (interface{}, error) {
			return h.client.GetAccountInfo(ctx, telegraph.GetAccountInfoArgs{Fields: args.Fields})
		})
	})
	if err != nil {
		return GetAccountInfoResult{}, err
	}
	return GetAccountInfoResult{Account: accountSummary(result.(*telegraph.Account)), Cached: cached}, nil
}

// RevokeAccessTokenMCP is the MCP handler for telegraph_revoke_access_token
func (h *HandlerRegistry) RevokeAccessTokenMCP(ctx context.Context, args RevokeAccessTokenArgs) (RevokeAccessTokenResult, error) {
	result, err := h.callAPI(ctx, "revokeAccessToken", "", func() (interface{}, error) {
		return h.client.RevokeAccessToken(ctx)
	})
	if err != nil {
		return RevokeAccessTokenResult{}, err
	}

	// Everything keyed to the old token is now stale.
	h.cache.DeletePrefix("account:")
	h.cache.DeletePrefix("pagelist:")

	return RevokeAccessTokenResult{
		Account: accountSummary(result.(*telegraph.Account)),
		Warning: revokeWarning,
	}, nil
}

// StatusMCP is the MCP handler for telegraph_status
func (h *HandlerRegistry) StatusMCP(ctx context.Context, args StatusArgs) (StatusResult, error) {
	stats := h.cache.Stats()
	metrics.SetCacheSize(stats.Entries)

	return StatusResult{
		Circuit:         h.breaker.Stats(),
		Cache:           stats,
		InFlight:        h.dedup.InFlight(),
		TokenConfigured: h.client.AccessToken() != "",
	}, nil
}

// pageSummary converts a page for MCP responses, re-serializing its content.
func pageSummary(p *telegraph.Page) (PageSummary, error) {
	summary := PageSummary{
		Path:        p.Path,
		URL:         p.URL,
		Title:       p.Title,
		Description: p.Description,
		AuthorName:  p.AuthorName,
		AuthorURL:   p.AuthorURL,
		ImageURL:    p.ImageURL,
		Views:       p.Views,
		CanEdit:     p.CanEdit,
	}
	if len(p.Content) > 0 {
		encoded, err := json.Marshal(p.Content)
		if err != nil {
			return PageSummary{}, err
		}
		summary.Content = string(encoded)
	}
	return summary, nil
}

func accountSummary(a *telegraph.Account) AccountSummary {
	return AccountSummary{
		ShortName:   a.ShortName,
		AuthorName:  a.AuthorName,
		AuthorURL:   a.AuthorURL,
		AccessToken: a.AccessToken,
		AuthURL:     a.AuthURL,
		PageCount:   a.PageCount,
	}
}

func fmtPeriod(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name}

	switch a := args.(type) {
	case CreatePageArgs:
		attrs = append(attrs, "title", a.Title, "content_bytes", len(a.Content))
	case EditPageArgs:
		attrs = append(attrs, "path", a.Path, "content_bytes", len(a.Content))
	case GetPageArgs:
		attrs = append(attrs, "path", a.Path)
	case GetPageListArgs:
		attrs = append(attrs, "offset", a.Offset, "limit", a.Limit)
	case GetViewsArgs:
		attrs = append(attrs, "path", a.Path)
	case CreateAccountArgs:
		attrs = append(attrs, "short_name", a.ShortName)
	case EditAccountInfoArgs:
		attrs = append(attrs, "short_name", a.ShortName)
	case GetAccountInfoArgs:
		attrs = append(attrs, "fields", strings.Join(a.Fields, ","))
	}

	switch r := result.(type) {
	case CreatePageResult:
		attrs = append(attrs, "path", r.Page.Path, "url", r.Page.URL)
	case EditPageResult:
		attrs = append(attrs, "url", r.Page.URL)
	case GetPageResult:
		attrs = append(attrs, "views", r.Page.Views, "cached", r.Cached)
	case GetPageListResult:
		attrs = append(attrs, "results_count", len(r.Pages), "total_count", r.TotalCount, "cached", r.Cached)
	case GetViewsResult:
		attrs = append(attrs, "views", r.Views, "cached", r.Cached)
	case StatusResult:
		attrs = append(attrs, "circuit", r.Circuit.State)
	}

	h.logger.Info("Tool executed", attrs...)
}
