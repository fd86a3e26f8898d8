package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"byteapi/cmd/internal/domain/store"
)

const restPath = "/rest/v1/"

// Error is a PostgREST failure as reported in the response body.
type Error struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("postgrest %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("postgrest %d: %s", e.Status, e.Message)
}

// Unwrap maps Postgres data exceptions (class 22, e.g. invalid_text_representation)
// to store.ErrInvalidRecord.
func (e *Error) Unwrap() error {
	if strings.HasPrefix(e.Code, "22") {
		return store.ErrInvalidRecord
	}
	return nil
}

// Client talks to the Supabase table API. It implements store.Store.
type Client struct {
	baseURL    string
	apiKey     string
	authKey    string
	httpClient *http.Client
}

// NewClient builds a table client. serviceKey, when set, is sent as the bearer
// credential instead of the public key so row level security is bypassed.
func NewClient(baseURL, apiKey, serviceKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	authKey := apiKey
	if serviceKey != "" {
		authKey = serviceKey
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		authKey:    authKey,
		httpClient: httpClient,
	}
}

func (c *Client) Select(ctx context.Context, q *store.Query) ([]store.Record, error) {
	params := filterParams(q)
	params.Set("select", "*")
	if q.Order != nil {
		dir := "asc"
		if q.Order.Desc {
			dir = "desc"
		}
		params.Set("order", q.Order.Field+"."+dir)
	}

	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var rows []store.Record
	err := c.do(ctx, http.MethodGet, q.Table, params, nil, &rows)
	return rows, err
}

func (c *Client) Insert(ctx context.Context, table string, row store.Record) ([]store.Record, error) {
	var rows []store.Record
	err := c.do(ctx, http.MethodPost, table, nil, row, &rows)
	return rows, err
}

func (c *Client) Update(ctx context.Context, q *store.Query, patch store.Record) ([]store.Record, error) {
	var rows []store.Record
	err := c.do(ctx, http.MethodPatch, q.Table, filterParams(q), patch, &rows)
	return rows, err
}

func (c *Client) Delete(ctx context.Context, q *store.Query) error {
	return c.do(ctx, http.MethodDelete, q.Table, filterParams(q), nil, nil)
}

func (c *Client) do(ctx context.Context, method, table string, params url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + restPath + url.PathEscape(table)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.authKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if out != nil {
		req.Header.Set("Prefer", "return=representation")
	} else {
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return parseError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

func parseError(status int, data []byte) error {
	apiErr := &Error{Status: status}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func filterParams(q *store.Query) url.Values {
	params := url.Values{}
	for _, f := range q.Filters {
		switch f.Op {
		case store.OpEq:
			params.Add(f.Field, "eq."+formatValue(f.Value))
		case store.OpContains:
			params.Add(f.Field, "cs."+arrayLiteral(f.Values))
		}
	}
	return params
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// arrayLiteral renders values as a Postgres array literal, e.g. {"a","b"}.
func arrayLiteral(values []any) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}

		s := formatValue(v)
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		sb.WriteString(`"` + s + `"`)
	}
	sb.WriteByte('}')
	return sb.String()
}
