package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20
)

// RawResult is an HTTP response read to completion.
type RawResult struct {
	StatusCode int
	Body       []byte
}

// Transport sends requests to the API, attaching the stored token.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
}

// NewTransport builds a transport for baseURL, e.g. http://localhost:5000/api/v1.
func NewTransport(baseURL string, store CredentialStore, httpClient *http.Client) (*Transport, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
	}, nil
}

// Send performs one request. The bearer header is set only when the store
// holds a token. Send neither retries nor refreshes tokens.
func (t *Transport) Send(ctx context.Context, method, path string, params map[string]any, body any) (*RawResult, error) {
	target := t.baseURL + "/" + strings.TrimLeft(path, "/")
	if query := EncodeParams(params); query != "" {
		target += "?" + query
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := t.store.Get()
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return &RawResult{StatusCode: resp.StatusCode, Body: data}, nil
}

// EncodeParams serializes params as a query string with keys sorted, so
// equal maps always produce identical output. Nil values are dropped and
// slices become repeated keys.
func EncodeParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := 0; i < rv.Len(); i++ {
				values.Add(key, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		values.Set(key, fmt.Sprint(value))
	}
	return values.Encode()
}
