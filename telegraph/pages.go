package telegraph

import "context"

// Limits documented by the Telegraph API.
const (
	maxTitleLen      = 256
	maxAuthorNameLen = 128
	maxAuthorURLLen  = 512
	maxPageListLimit = 200
)

// CreatePageArgs contains parameters for the createPage method.
type CreatePageArgs struct {
	Title         string  `json:"title"`
	Content       Content `json:"content"`
	AuthorName    string  `json:"author_name,omitempty"`
	AuthorURL     string  `json:"author_url,omitempty"`
	ReturnContent bool    `json:"return_content,omitempty"`
}

// EditPageArgs contains parameters for the editPage method.
type EditPageArgs struct {
	Path          string  `json:"path"`
	Title         string  `json:"title"`
	Content       Content `json:"content"`
	AuthorName    string  `json:"author_name,omitempty"`
	AuthorURL     string  `json:"author_url,omitempty"`
	ReturnContent bool    `json:"return_content,omitempty"`
}

// GetPageArgs contains parameters for the getPage method.
type GetPageArgs struct {
	Path          string `json:"path"`
	ReturnContent bool   `json:"return_content,omitempty"`
}

// GetPageListArgs contains parameters for the getPageList method.
// Limit is clamped to the documented 0..200 range; zero means the service
// default of 50.
type GetPageListArgs struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

// GetViewsArgs contains parameters for the getViews method. The service
// requires year when month is passed, month when day is passed, and day
// when hour is passed.
type GetViewsArgs struct {
	Path  string `json:"path"`
	Year  *int   `json:"year,omitempty"`
	Month *int   `json:"month,omitempty"`
	Day   *int   `json:"day,omitempty"`
	Hour  *int   `json:"hour,omitempty"`
}

// CreatePage creates a new Telegraph page. The content tree is validated
// against the tag/attribute whitelist before any network call.
func (c *Client) CreatePage(ctx context.Context, args CreatePageArgs) (*Page, error) {
	if err := validatePageArgs(args.Title, args.Content, args.AuthorName, args.AuthorURL); err != nil {
		return nil, err
	}
	req := struct {
		AccessToken string `json:"access_token"`
		CreatePageArgs
	}{c.accessToken, args}

	raw, err := c.invoke(ctx, "createPage", req)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// EditPage edits an existing Telegraph page. The content tree is validated
// before any network call.
func (c *Client) EditPage(ctx context.Context, args EditPageArgs) (*Page, error) {
	if args.Path == "" {
		return nil, &ValidationError{Field: "path", Message: "must not be empty"}
	}
	if err := validatePageArgs(args.Title, args.Content, args.AuthorName, args.AuthorURL); err != nil {
		return nil, err
	}
	req := struct {
		AccessToken string `json:"access_token"`
		EditPageArgs
	}{c.accessToken, args}

	raw, err := c.invoke(ctx, "editPage", req)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// GetPage returns a Telegraph page by its path (the part after
// https://telegra.ph/). No access token is required.
func (c *Client) GetPage(ctx context.Context, args GetPageArgs) (*Page, error) {
	if args.Path == "" {
		return nil, &ValidationError{Field: "path", Message: "must not be empty"}
	}
	raw, err := c.invoke(ctx, "getPage", args)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// GetPageList returns pages belonging to the account, sorted by most
// recently created first.
func (c *Client) GetPageList(ctx context.Context, args GetPageListArgs) (*PageList, error) {
	if args.Offset < 0 {
		return nil, &ValidationError{Field: "offset", Message: "must be non-negative"}
	}
	if args.Limit < 0 || args.Limit > maxPageListLimit {
		return nil, &ValidationError{Field: "limit", Message: "must be between 0 and 200"}
	}
	req := struct {
		AccessToken string `json:"access_token"`
		GetPageListArgs
	}{c.accessToken, args}

	raw, err := c.invoke(ctx, "getPageList", req)
	if err != nil {
		return nil, err
	}
	return decodePageList(raw)
}

// GetViews returns the number of views of a page, optionally narrowed to a
// year, month, day or hour.
func (c *Client) GetViews(ctx context.Context, args GetViewsArgs) (*PageViews, error) {
	if args.Path == "" {
		return nil, &ValidationError{Field: "path", Message: "must not be empty"}
	}
	if err := validateViewsPeriod(args); err != nil {
		return nil, err
	}
	raw, err := c.invoke(ctx, "getViews", args)
	if err != nil {
		return nil, err
	}
	return decodePageViews(raw)
}

// validatePageArgs runs the local checks shared by createPage and editPage.
func validatePageArgs(title string, content Content, authorName, authorURL string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if len(title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: "must be at most 256 characters"}
	}
	if len(authorName) > maxAuthorNameLen {
		return &ValidationError{Field: "author_name", Message: "must be at most 128 characters"}
	}
	if len(authorURL) > maxAuthorURLLen {
		return &ValidationError{Field: "author_url", Message: "must be at most 512 characters"}
	}
	if len(content) == 0 {
		return &ValidationError{Field: "content", Message: "must not be empty"}
	}
	return content.Validate()
}

// validateViewsPeriod checks the period filters locally: ranges, and the
// service's rule that each finer unit requires the coarser one.
func validateViewsPeriod(args GetViewsArgs) error {
	if args.Hour != nil {
		if *args.Hour < 0 || *args.Hour > 23 {
			return &ValidationError{Field: "hour", Message: "must be between 0 and 23"}
		}
		if args.Day == nil {
			return &ValidationError{Field: "day", Message: "required when hour is passed"}
		}
	}
	if args.Day != nil {
		if *args.Day < 1 || *args.Day > 31 {
			return &ValidationError{Field: "day", Message: "must be between 1 and 31"}
		}
		if args.Month == nil {
			return &ValidationError{Field: "month", Message: "required when day is passed"}
		}
	}
	if args.Month != nil {
		if *args.Month < 1 || *args.Month > 12 {
			return &ValidationError{Field: "month", Message: "must be between 1 and 12"}
		}
		if args.Year == nil {
			return &ValidationError{Field: "year", Message: "required when month is passed"}
		}
	}
	if args.Year != nil && (*args.Year < 2000 || *args.Year > 2100) {
		return &ValidationError{Field: "year", Message: "must be between 2000 and 2100"}
	}
	return nil
}
