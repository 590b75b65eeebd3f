// Package client implements the view capabilities against the
// artistcollab HTTP API and its websocket change feed.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// API is a thin JSON client for one backend instance. A zero token makes
// an anonymous client; reads of public data still work.
type API struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// StatusError reports a non-2xx API answer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Code, e.Message)
}

func IsStatus(err error, code int) bool {
	se, ok := err.(*StatusError)
	return ok && se.Code == code
}

func (a *API) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	res, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		return &StatusError{Code: res.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// CurrentIdentity implements view.Identity: the profile id behind the
// token, or empty for an anonymous client.
func (a *API) CurrentIdentity(ctx context.Context) (string, error) {
	if a.token == "" {
		return "", nil
	}
	var me struct {
		ID string `json:"id"`
	}
	if err := a.doJSON(ctx, http.MethodGet, "/api/v1/me", nil, &me); err != nil {
		return "", err
	}
	return me.ID, nil
}
