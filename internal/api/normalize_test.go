package api

import (
	"testing"
)

func TestDecodeBodyParsesOK(t *testing.T) {
	out, err := decodeBody[playerPayload](200, []byte(`{"player_id":"p1","nickname":"s1mple"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.PlayerID != "p1" || out.Nickname != "s1mple" {
		t.Errorf("payload = %+v, want p1/s1mple", out)
	}
}

func TestDecodeBodyDegradesMalformedOK(t *testing.T) {
	out, err := decodeBody[playerPayload](200, []byte(`<html>502 from some proxy</html>`))
	if err != nil {
		t.Fatalf("malformed 200 body must degrade, got error: %v", err)
	}
	if out.PlayerID != "" {
		t.Errorf("payload = %+v, want zero value", out)
	}
}

func TestDecodeBodyErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantAuth bool
	}{
		{
			name:    "message field",
			status:  404,
			body:    `{"message":"player not found"}`,
			wantMsg: "player not found",
		},
		{
			name:    "error_description before error",
			status:  400,
			body:    `{"error_description":"bad offset","error":"invalid_request"}`,
			wantMsg: "bad offset",
		},
		{
			name:    "errors array envelope",
			status:  404,
			body:    `{"errors":[{"message":"resource not found","code":"err_nf"}]}`,
			wantMsg: "resource not found",
		},
		{
			name:     "401 is auth",
			status:   401,
			body:     `{"message":"invalid token"}`,
			wantMsg:  "invalid token",
			wantAuth: true,
		},
		{
			name:     "403 is auth",
			status:   403,
			body:     `{}`,
			wantMsg:  "forbidden",
			wantAuth: true,
		},
		{
			name:     "auth code marker on other status",
			status:   400,
			body:     `{"error":"invalid_token","error_description":"token expired long ago"}`,
			wantMsg:  "token expired long ago",
			wantAuth: true,
		},
		{
			name:    "plain text body",
			status:  500,
			body:    "  upstream exploded  ",
			wantMsg: "upstream exploded",
		},
		{
			name:    "empty body falls back to status text",
			status:  502,
			body:    "",
			wantMsg: "bad gateway",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeBody[playerPayload](tc.status, []byte(tc.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tc.wantMsg)
			}
			if apiErr.AuthError != tc.wantAuth {
				t.Errorf("auth = %v, want %v", apiErr.AuthError, tc.wantAuth)
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tc.status)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	notFound := &APIError{StatusCode: 404, Message: "nope"}
	auth := &APIError{StatusCode: 401, Message: "denied", AuthError: true}

	if !IsNotFound(notFound) || IsNotFound(auth) {
		t.Error("IsNotFound misclassified")
	}
	if !IsAuthError(auth) || IsAuthError(notFound) {
		t.Error("IsAuthError misclassified")
	}
	if IsAuthError(nil) || IsNotFound(nil) {
		t.Error("predicates must be false for nil")
	}
}
