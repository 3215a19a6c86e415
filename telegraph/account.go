package telegraph

import "context"

const maxShortNameLen = 32

// accountFields is the set of field names getAccountInfo accepts.
var accountFields = map[string]bool{
	"short_name":  true,
	"author_name": true,
	"author_url":  true,
	"auth_url":    true,
	"page_count":  true,
}

// CreateAccountArgs contains parameters for the createAccount method.
type CreateAccountArgs struct {
	ShortName  string `json:"short_name"`
	AuthorName string `json:"author_name,omitempty"`
	AuthorURL  string `json:"author_url,omitempty"`
}

// EditAccountInfoArgs contains parameters for the editAccountInfo method.
// At least one field must be set.
type EditAccountInfoArgs struct {
	ShortName  string `json:"short_name,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	AuthorURL  string `json:"author_url,omitempty"`
}

// GetAccountInfoArgs contains parameters for the getAccountInfo method.
// Fields defaults to short_name and author_name on the service side.
type GetAccountInfoArgs struct {
	Fields []string `json:"fields,omitempty"`
}

// CreateAccount creates a new Telegraph account. This is the only method
// that does not send an access token; the returned Account carries the new
// token and auth_url, which the caller uses to construct a client for the
// new account.
func (c *Client) CreateAccount(ctx context.Context, args CreateAccountArgs) (*Account, error) {
	if args.ShortName == "" {
		return nil, &ValidationError{Field: "short_name", Message: "must not be empty"}
	}
	if err := validateAccountFields(args.ShortName, args.AuthorName, args.AuthorURL); err != nil {
		return nil, err
	}
	raw, err := c.invoke(ctx, "createAccount", args)
	if err != nil {
		return nil, err
	}
	account, err := decodeAccount(raw)
	if err != nil {
		return nil, err
	}
	if account.AccessToken == "" {
		return nil, &DecodeError{Type: "Account", Field: "access_token"}
	}
	return account, nil
}

// EditAccountInfo updates information about the account the client's token
// belongs to.
func (c *Client) EditAccountInfo(ctx context.Context, args EditAccountInfoArgs) (*Account, error) {
	if args.ShortName == "" && args.AuthorName == "" && args.AuthorURL == "" {
		return nil, &ValidationError{Field: "short_name", Message: "at least one of short_name, author_name, author_url must be set"}
	}
	if err := validateAccountFields(args.ShortName, args.AuthorName, args.AuthorURL); err != nil {
		return nil, err
	}
	req := struct {
		AccessToken string `json:"access_token"`
		EditAccountInfoArgs
	}{c.accessToken, args}

	raw, err := c.invoke(ctx, "editAccountInfo", req)
	if err != nil {
		return nil, err
	}
	return decodeAccount(raw)
}

// GetAccountInfo returns information about the account, optionally limited
// to the requested fields.
func (c *Client) GetAccountInfo(ctx context.Context, args GetAccountInfoArgs) (*Account, error) {
	for _, f := range args.Fields {
		if !accountFields[f] {
			return nil, &ValidationError{Field: "fields", Message: "unknown account field " + f}
		}
	}
	req := struct {
		AccessToken string `json:"access_token"`
		GetAccountInfoArgs
	}{c.accessToken, args}

	raw, err := c.invoke(ctx, "getAccountInfo", req)
	if err != nil {
		return nil, err
	}
	return decodeAccount(raw)
}

// RevokeAccessToken revokes the client's token and generates a new one, for
// example when the token may have been compromised. The returned Account
// carries the new access_token and auth_url; this client keeps operating
// with the old (now revoked) token until the caller replaces it.
func (c *Client) RevokeAccessToken(ctx context.Context) (*Account, error) {
	req := struct {
		AccessToken string `json:"access_token"`
	}{c.accessToken}

	raw, err := c.invoke(ctx, "revokeAccessToken", req)
	if err != nil {
		return nil, err
	}
	account, err := decodeAccount(raw)
	if err != nil {
		return nil, err
	}
	if account.AccessToken == "" {
		return nil, &DecodeError{Type: "Account", Field: "access_token"}
	}
	return account, nil
}

// validateAccountFields checks the documented length limits.
func validateAccountFields(shortName, authorName, authorURL string) error {
	if len(shortName) > maxShortNameLen {
		return &ValidationError{Field: "short_name", Message: "must be at most 32 characters"}
	}
	if len(authorName) > maxAuthorNameLen {
		return &ValidationError{Field: "author_name", Message: "must be at most 128 characters"}
	}
	if len(authorURL) > maxAuthorURLLen {
		return &ValidationError{Field: "author_url", Message: "must be at most 512 characters"}
	}
	return nil
}
