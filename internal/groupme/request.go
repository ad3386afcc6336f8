package groupme

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
)

const maxMessageLimit = 100

type queryParam struct {
	key   string
	value string
}

// request describes one API call before it is turned into an *http.Request.
type request struct {
	op     string
	method string
	path   string // relative to /v3, identifiers already interpolated
	query  []queryParam
	body   any
}

func get(op, path string, query ...queryParam) request {
	return request{op: op, method: http.MethodGet, path: path, query: query}
}

func post(op, path string, body any, query ...queryParam) request {
	return request{op: op, method: http.MethodPost, path: path, body: body, query: query}
}

func param(key, value string) queryParam {
	return queryParam{key: key, value: value}
}

// optionalParams drops entries whose value is empty, preserving order.
func optionalParams(params ...queryParam) []queryParam {
	out := make([]queryParam, 0, len(params))
	for _, p := range params {
		if strings.TrimSpace(p.value) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func intParam(key string, value int) queryParam {
	if value <= 0 {
		return queryParam{key: key}
	}
	return queryParam{key: key, value: strconv.Itoa(value)}
}

// clampLimit applies the message listing limit policy: non-positive values
// leave the server default in place and anything above 100 is capped.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > maxMessageLimit {
		return maxMessageLimit
	}
	return limit
}

// buildURL joins the base URL, the /v3 prefix and r.path, then appends the
// query parameters in order with the access token last. Path segments are
// used verbatim.
func (c *Client) buildURL(r request) string {
	var b strings.Builder
	b.WriteString(c.baseURL.Scheme)
	b.WriteString("://")
	b.WriteString(c.baseURL.Host)
	b.WriteString(apiPrefix)
	b.WriteString(r.path)
	b.WriteByte('?')
	for _, p := range r.query {
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
		b.WriteByte('&')
	}
	b.WriteString("token=")
	b.WriteString(url.QueryEscape(c.token))
	return b.String()
}

func (c *Client) newHTTPRequest(ctx context.Context, r request) (*http.Request, error) {
	var payload []byte
	if r.body != nil {
		encoded, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("groupme: %s: encode request body: %w", r.op, err)
		}
		payload = encoded
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.buildURL(r), body)
	if err != nil {
		return nil, fmt.Errorf("groupme: %s: create request: %w", r.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// messageBody is the inner object shared by group and direct message creation.
type messageBody struct {
	SourceGUID  string      `json:"source_guid"`
	RecipientID string      `json:"recipient_id,omitempty"`
	Text        string      `json:"text,omitempty"`
	Attachments Attachments `json:"attachments"`
}

// newMessageBody stamps a fresh source_guid on every call. Nil attachments
// are dropped so the array never carries null entries.
func (c *Client) newMessageBody(recipientID, text string, attachments Attachments) messageBody {
	kept := make(Attachments, 0, len(attachments))
	for _, a := range attachments {
		if a != nil {
			kept = append(kept, a)
		}
	}
	return messageBody{
		SourceGUID:  c.newGUID(),
		RecipientID: recipientID,
		Text:        text,
		Attachments: kept,
	}
}
