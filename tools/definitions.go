package tools

// AllTools contains all tool specifications for the Telegraph MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// PAGE TOOLS
	// ==========================================================================
	{
		Name:     "telegraph_create_page",
		Method:   "CreatePage",
		Title:    "Create Page",
		Category: "pages",
		Description: `Publish a new Telegraph page.

USE WHEN: User says "publish this article", "create a telegraph page", "post this to telegra.ph".

NOT FOR: Changing an existing page (use telegraph_edit_page).

PARAMETERS:
- title: Page title (required, 1-256 characters)
- content: JSON array of content nodes (required), e.g. [{"tag":"p","children":["Hello"]}]
- author_name: Byline shown below the title (optional)
- author_url: Link opened when the byline is tapped (optional)
- return_content: Echo the stored content back (default false)

Allowed tags: a, aside, b, blockquote, br, code, em, figcaption, figure, h3, h4, hr, i, iframe, img, li, ol, p, pre, s, strong, u, ul, video. Allowed attributes: href, src.

RETURNS: The created page with its path and public URL.`,
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  false,
		OpenWorld:   true,
	},
	{
		Name:     "telegraph_edit_page",
		Method:   "EditPage",
		Title:    "Edit Page",
		Category: "pages",
		Description: `Replace the title and content of an existing Telegraph page.

USE WHEN: User says "update the article", "fix the published page", "change the title of X".

NOT FOR: Creating new pages (use telegraph_create_page).

PARAMETERS:
- path: Page path from its URL (required)
- title: New page title (required)
- content: New content as a JSON array of nodes (required)
- author_name, author_url: New byline (optional)
- return_content: Echo the stored content back (default false)

WARNING: The page content is replaced in full, not merged.

RETURNS: The updated page.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  false,
		OpenWorld:   true,
	},
	{
		Name:     "telegraph_get_page",
		Method:   "GetPage",
		Title:    "Get Page",
		Category: "pages",
		Description: `Fetch a Telegraph page by its path.

USE WHEN: User asks "show me the page", "read telegra.ph/Sample-Page-12-15", "what does the article say".

NOT FOR: Listing the account's pages (use telegraph_get_page_list).

PARAMETERS:
- path: Page path from its URL (required), e.g. "Sample-Page-12-15"
- return_content: Include the page content (default false)

RETURNS: Page metadata, view count, and optionally the content as JSON.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "telegraph_get_page_list",
		Method:   "GetPageList",
		Title:    "List Pages",
		Category: "pages",
		Description: `List pages belonging to the configured Telegraph account.

USE WHEN: User asks "what have I published", "list my telegraph pages", "show my articles".

NOT FOR: Fetching one page's content (use telegraph_get_page).

PARAMETERS:
- offset: Sequence number of the first page (default 0)
- limit: Pages to return, 0-200 (default 50)

RETURNS: Total page count and a page of results sorted by most recently created.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "telegraph_get_views",
		Method:   "GetViews",
		Title:    "Get Page Views",
		Category: "pages",
		Description: `Get the view count of a Telegraph page, optionally narrowed to a period.

USE WHEN: User asks "how many views does X have", "views for the article in December", "traffic stats".

PARAMETERS:
- path: Page path (required)
- year: 2000-2100 (optional; required if month is set)
- month: 1-12 (optional; required if day is set)
- day: 1-31 (optional; required if hour is set)
- hour: 0-24 (optional)

RETURNS: The number of views for the page in the requested period.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// ACCOUNT TOOLS
	// ==========================================================================
	{
		Name:     "telegraph_create_account",
		Method:   "CreateAccount",
		Title:    "Create Account",
		Category: "account",
		Description: `Create a new Telegraph account.

USE WHEN: User says "create a telegraph account", "I need a new publishing identity".

PARAMETERS:
- short_name: Account name shown in the editor (required, 1-32 characters)
- author_name: Default byline for new pages (optional)
- author_url: Default byline link (optional)

RETURNS: The new account including its access_token and auth_url. Store the token; the server keeps using its own configured token.`,
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  false,
		OpenWorld:   true,
	},
	{
		Name:     "telegraph_edit_account_info",
		Method:   "EditAccountInfo",
		Title:    "Edit Account Info",
		Category: "account",
		Description: `Update the configured account's name or default byline.

USE WHEN: User says "rename my account", "change my default author name".

PARAMETERS (at least one required):
- short_name: New account name (1-32 characters)
- author_name: New default byline (0-128 characters)
- author_url: New default byline link (0-512 characters)

RETURNS: The updated account info.`,
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:     "telegraph_get_account_info",
		Method:   "GetAccountInfo",
		Title:    "Get Account Info",
		Category: "account",
		Description: `Fetch information about the configured Telegraph account.

USE WHEN: User asks "what account am I publishing as", "how many pages do I have".

PARAMETERS:
- fields: Fields to return (optional): short_name, author_name, author_url, auth_url, page_count. Defaults to short_name, author_name, author_url.

RETURNS: The requested account fields.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "telegraph_revoke_access_token",
		Method:   "RevokeAccessToken",
		Title:    "Revoke Access Token",
		Category: "account",
		Description: `Revoke the configured account's access token and issue a fresh one.

USE WHEN: User says "my token leaked", "rotate the telegraph token", "revoke access".

PARAMETERS: None

WARNING: The configured token stops working immediately. The new token is returned but the server keeps using its configured token until restarted with the new one.

RETURNS: The account with its new access_token and auth_url.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  false,
		OpenWorld:   true,
	},

	// ==========================================================================
	// OPS TOOLS
	// ==========================================================================
	{
		Name:     "telegraph_status",
		Method:   "Status",
		Title:    "Server Status",
		Category: "ops",
		Description: `Report the server's health: circuit breaker state, cache usage, and in-flight calls.

USE WHEN: User asks "is the telegraph connection healthy", "why are my calls failing fast", "server status".

PARAMETERS: None

RETURNS: Circuit breaker state, cache hit/miss counters, and in-flight call count.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  false,
	},
}
