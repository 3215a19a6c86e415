package tools

import (
	"github.com/telegraph-tools/telegraph-mcp-server/internal/infra"
)

// PageSummary is a page representation for MCP responses. Content is
// carried as a JSON string so results stay compact and schema-stable.
type PageSummary struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Content     string `json:"content,omitempty"`
	Views       int    `json:"views"`
	CanEdit     bool   `json:"can_edit,omitempty"`
}

// AccountSummary is an account representation for MCP responses.
type AccountSummary struct {
	ShortName   string `json:"short_name,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	AuthURL     string `json:"auth_url,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`
}

// CreatePageArgs contains parameters for creating a page
type CreatePageArgs struct {
	Title         string `json:"title" jsonschema:"required" jsonschema_description:"Page title (1-256 characters)"`
	Content       string `json:"content" jsonschema:"required" jsonschema_description:"Page content as a JSON array of nodes, e.g. [{\"tag\":\"p\",\"children\":[\"Hello\"]}]"`
	AuthorName    string `json:"author_name,omitempty" jsonschema_description:"Author name shown below the title (0-128 characters)"`
	AuthorURL     string `json:"author_url,omitempty" jsonschema_description:"Author link opened on author name tap (0-512 characters)"`
	ReturnContent bool   `json:"return_content,omitempty" jsonschema_description:"Return the created content in the response"`
}

// CreatePageResult is the result of creating a page
type CreatePageResult struct {
	Page PageSummary `json:"page"`
}

// EditPageArgs contains parameters for editing a page
type EditPageArgs struct {
	Path          string `json:"path" jsonschema:"required" jsonschema_description:"Path of the page to edit (from the page URL)"`
	Title         string `json:"title" jsonschema:"required" jsonschema_description:"New page title (1-256 characters)"`
	Content       string `json:"content" jsonschema:"required" jsonschema_description:"New page content as a JSON array of nodes"`
	AuthorName    string `json:"author_name,omitempty" jsonschema_description:"Author name shown below the title"`
	AuthorURL     string `json:"author_url,omitempty" jsonschema_description:"Author link opened on author name tap"`
	ReturnContent bool   `json:"return_content,omitempty" jsonschema_description:"Return the updated content in the response"`
}

// EditPageResult is the result of editing a page
type EditPageResult struct {
	Page PageSummary `json:"page"`
}

// GetPageArgs contains parameters for fetching a page
type GetPageArgs struct {
	Path          string `json:"path" jsonschema:"required" jsonschema_description:"Path of the page (from the page URL, e.g. Sample-Page-12-15)"`
	ReturnContent bool   `json:"return_content,omitempty" jsonschema_description:"Include the page content in the response"`
}

// GetPageResult is the result of fetching a page
type GetPageResult struct {
	Page   PageSummary `json:"page"`
	Cached bool        `json:"cached,omitempty"`
}

// GetPageListArgs contains parameters for listing account pages
type GetPageListArgs struct {
	Offset int `json:"offset,omitempty" jsonschema_description:"Sequence number of the first page to return (default 0)"`
	Limit  int `json:"limit,omitempty" jsonschema_description:"Number of pages to return, 0-200 (default 50)"`
}

// GetPageListResult is the result of listing account pages
type GetPageListResult struct {
	TotalCount int           `json:"total_count"`
	Pages      []PageSummary `json:"pages"`
	Cached     bool          `json:"cached,omitempty"`
}

// GetViewsArgs contains parameters for fetching page view counts
type GetViewsArgs struct {
	Path  string `json:"path" jsonschema:"required" jsonschema_description:"Path of the page"`
	Year  *int   `json:"year,omitempty" jsonschema_description:"Year to count views for (2000-2100); required if month is set"`
	Month *int   `json:"month,omitempty" jsonschema_description:"Month 1-12; required if day is set"`
	Day   *int   `json:"day,omitempty" jsonschema_description:"Day 1-31; required if hour is set"`
	Hour  *int   `json:"hour,omitempty" jsonschema_description:"Hour 0-24"`
}

// GetViewsResult is the result of fetching page view counts
type GetViewsResult struct {
	Views  int  `json:"views"`
	Cached bool `json:"cached,omitempty"`
}

// CreateAccountArgs contains parameters for creating an account
type CreateAccountArgs struct {
	ShortName  string `json:"short_name" jsonschema:"required" jsonschema_description:"Account name shown in the editor (1-32 characters)"`
	AuthorName string `json:"author_name,omitempty" jsonschema_description:"Default author name for new pages (0-128 characters)"`
	AuthorURL  string `json:"author_url,omitempty" jsonschema_description:"Default author link for new pages (0-512 characters)"`
}

// CreateAccountResult is the result of creating an account
type CreateAccountResult struct {
	Account AccountSummary `json:"account"`
}

// EditAccountInfoArgs contains parameters for updating account info
type EditAccountInfoArgs struct {
	ShortName  string `json:"short_name,omitempty" jsonschema_description:"New account name (1-32 characters)"`
	AuthorName string `json:"author_name,omitempty" jsonschema_description:"New default author name (0-128 characters)"`
	AuthorURL  string `json:"author_url,omitempty" jsonschema_description:"New default author link (0-512 characters)"`
}

// EditAccountInfoResult is the result of updating account info
type EditAccountInfoResult struct {
	Account AccountSummary `json:"account"`
}

// GetAccountInfoArgs contains parameters for fetching account info
type GetAccountInfoArgs struct {
	Fields []string `json:"fields,omitempty" jsonschema_description:"Fields to return: short_name, author_name, author_url, auth_url, page_count (default short_name, author_name, author_url)"`
}

// GetAccountInfoResult is the result of fetching account info
type GetAccountInfoResult struct {
	Account AccountSummary `json:"account"`
	Cached  bool           `json:"cached,omitempty"`
}

// RevokeAccessTokenArgs contains parameters for revoking the access token
type RevokeAccessTokenArgs struct{}

// RevokeAccessTokenResult is the result of revoking the access token.
// The server keeps using its configured token; the new token is only
// reported back to the caller.
type RevokeAccessTokenResult struct {
	Account AccountSummary `json:"account"`
	Warning string         `json:"warning,omitempty"`
}

// StatusArgs contains parameters for the status tool
type StatusArgs struct{}

// StatusResult reports server health for the status tool
type StatusResult struct {
	Circuit         infra.CircuitStats `json:"circuit"`
	Cache           infra.CacheStats   `json:"cache"`
	InFlight        int                `json:"in_flight"`
	TokenConfigured bool               `json:"token_configured"`
}
