package telegraph

import (
	"encoding/json"
	"errors"
)

// Page represents a page on Telegraph.
type Page struct {
	Path        string  `json:"path"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	AuthorName  string  `json:"author_name,omitempty"`
	AuthorURL   string  `json:"author_url,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Content     Content `json:"content,omitempty"`
	Views       int     `json:"views,omitempty"`
	CanEdit     bool    `json:"can_edit,omitempty"`
}

// Account represents a Telegraph account. Fields may be absent when the
// caller requested a subset via getAccountInfo's fields parameter.
type Account struct {
	ShortName   string `json:"short_name,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	AuthURL     string `json:"auth_url,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`
}

// PageList is a list of pages belonging to an account, most recently
// created first.
type PageList struct {
	TotalCount int    `json:"total_count"`
	Pages      []Page `json:"pages"`
}

// PageViews is the number of views of a page.
type PageViews struct {
	Views int `json:"views"`
}

// decodePage builds a Page from a result payload, requiring path, url and
// title. Unknown fields are ignored for forward compatibility.
func decodePage(data json.RawMessage) (*Page, error) {
	var aux struct {
		Path        *string `json:"path"`
		URL         *string `json:"url"`
		Title       *string `json:"title"`
		Description string  `json:"description"`
		AuthorName  string  `json:"author_name"`
		AuthorURL   string  `json:"author_url"`
		ImageURL    string  `json:"image_url"`
		Content     Content `json:"content"`
		Views       int     `json:"views"`
		CanEdit     bool    `json:"can_edit"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, decodeFailure("Page", err)
	}
	switch {
	case aux.Path == nil:
		return nil, &DecodeError{Type: "Page", Field: "path"}
	case aux.URL == nil:
		return nil, &DecodeError{Type: "Page", Field: "url"}
	case aux.Title == nil:
		return nil, &DecodeError{Type: "Page", Field: "title"}
	}
	return &Page{
		Path:        *aux.Path,
		URL:         *aux.URL,
		Title:       *aux.Title,
		Description: aux.Description,
		AuthorName:  aux.AuthorName,
		AuthorURL:   aux.AuthorURL,
		ImageURL:    aux.ImageURL,
		Content:     aux.Content,
		Views:       aux.Views,
		CanEdit:     aux.CanEdit,
	}, nil
}

// decodeAccount builds an Account from a result payload. No field is
// strictly required because getAccountInfo may return an arbitrary subset.
func decodeAccount(data json.RawMessage) (*Account, error) {
	var account Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, decodeFailure("Account", err)
	}
	return &account, nil
}

// decodePageList builds a PageList, requiring total_count and pages and
// applying Page required-field checks to every entry.
func decodePageList(data json.RawMessage) (*PageList, error) {
	var aux struct {
		TotalCount *int              `json:"total_count"`
		Pages      []json.RawMessage `json:"pages"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, decodeFailure("PageList", err)
	}
	if aux.TotalCount == nil {
		return nil, &DecodeError{Type: "PageList", Field: "total_count"}
	}
	if aux.Pages == nil {
		return nil, &DecodeError{Type: "PageList", Field: "pages"}
	}
	pages := make([]Page, 0, len(aux.Pages))
	for _, raw := range aux.Pages {
		page, err := decodePage(raw)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return &PageList{TotalCount: *aux.TotalCount, Pages: pages}, nil
}

// decodePageViews builds a PageViews, requiring the views field.
func decodePageViews(data json.RawMessage) (*PageViews, error) {
	var aux struct {
		Views *int `json:"views"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, decodeFailure("PageViews", err)
	}
	if aux.Views == nil {
		return nil, &DecodeError{Type: "PageViews", Field: "views"}
	}
	return &PageViews{Views: *aux.Views}, nil
}

// decodeFailure passes nested *DecodeError values (from Content decoding)
// through unchanged and wraps everything else with the record type.
func decodeFailure(recordType string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	return &DecodeError{Type: recordType, Message: err.Error()}
}
