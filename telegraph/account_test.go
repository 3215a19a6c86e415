package telegraph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestCreateAccount(t *testing.T) {
	var gotBody map[string]json.RawMessage
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/createAccount" {
			t.Errorf("path = %q, want /createAccount", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": {
			"short_name": "sandbox",
			"author_name": "Anonymous",
			"access_token": "new-token",
			"auth_url": "https://edit.telegra.ph/auth/abc"
		}}`))
	})

	account, err := client.CreateAccount(context.Background(), CreateAccountArgs{
		ShortName:  "sandbox",
		AuthorName: "Anonymous",
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if account.AccessToken != "new-token" {
		t.Errorf("access_token = %q, want new-token", account.AccessToken)
	}

	// createAccount is the one method that must not sign with the token.
	if _, present := gotBody["access_token"]; present {
		t.Error("createAccount request must not carry access_token")
	}
	if string(gotBody["short_name"]) != `"sandbox"` {
		t.Errorf("short_name in body = %s", gotBody["short_name"])
	}
}

func TestCreateAccountValidation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be hit for invalid parameters")
	})

	tests := []struct {
		name string
		args CreateAccountArgs
	}{
		{name: "empty short_name", args: CreateAccountArgs{}},
		{name: "short_name too long", args: CreateAccountArgs{ShortName: strings.Repeat("x", 33)}},
		{name: "author_name too long", args: CreateAccountArgs{ShortName: "s", AuthorName: strings.Repeat("x", 129)}},
		{name: "author_url too long", args: CreateAccountArgs{ShortName: "s", AuthorURL: strings.Repeat("x", 513)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateAccount(context.Background(), tt.args)
			if !IsValidation(err) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateAccountMissingToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": {"short_name": "sandbox"}}`))
	})

	_, err := client.CreateAccount(context.Background(), CreateAccountArgs{ShortName: "sandbox"})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if de.Field != "access_token" {
		t.Errorf("DecodeError.Field = %q, want access_token", de.Field)
	}
}

func TestEditAccountInfo(t *testing.T) {
	var gotBody map[string]json.RawMessage
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/editAccountInfo" {
			t.Errorf("path = %q, want /editAccountInfo", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": {"short_name": "renamed", "author_name": "A"}}`))
	})

	account, err := client.EditAccountInfo(context.Background(), EditAccountInfoArgs{ShortName: "renamed"})
	if err != nil {
		t.Fatalf("EditAccountInfo failed: %v", err)
	}
	if account.ShortName != "renamed" {
		t.Errorf("short_name = %q, want renamed", account.ShortName)
	}
	if string(gotBody["access_token"]) != `"test-token"` {
		t.Errorf("access_token in body = %s", gotBody["access_token"])
	}

	_, err = client.EditAccountInfo(context.Background(), EditAccountInfoArgs{})
	if !IsValidation(err) {
		t.Errorf("empty args: error = %v, want ValidationError", err)
	}
}

func TestGetAccountInfo(t *testing.T) {
	var gotBody map[string]json.RawMessage
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getAccountInfo" {
			t.Errorf("path = %q, want /getAccountInfo", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": {"short_name": "sandbox", "page_count": 12}}`))
	})

	account, err := client.GetAccountInfo(context.Background(), GetAccountInfoArgs{
		Fields: []string{"short_name", "page_count"},
	})
	if err != nil {
		t.Fatalf("GetAccountInfo failed: %v", err)
	}
	if account.PageCount != 12 {
		t.Errorf("page_count = %d, want 12", account.PageCount)
	}
	if string(gotBody["fields"]) != `["short_name","page_count"]` {
		t.Errorf("fields in body = %s", gotBody["fields"])
	}
}

func TestGetAccountInfoRejectsUnknownField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be hit for invalid parameters")
	})

	_, err := client.GetAccountInfo(context.Background(), GetAccountInfoArgs{Fields: []string{"password"}})
	if !IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestRevokeAccessToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// The call must go to revokeAccessToken, not any other method.
		if r.URL.Path != "/revokeAccessToken" {
			t.Errorf("path = %q, want /revokeAccessToken", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": {
			"short_name": "sandbox",
			"access_token": "rotated-token",
			"auth_url": "https://edit.telegra.ph/auth/def"
		}}`))
	})

	account, err := client.RevokeAccessToken(context.Background())
	if err != nil {
		t.Fatalf("RevokeAccessToken failed: %v", err)
	}
	if account.AccessToken != "rotated-token" {
		t.Errorf("access_token = %q, want rotated-token", account.AccessToken)
	}
}
