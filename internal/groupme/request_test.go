package groupme

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// captureClient records every request body and answers with body.
func captureClient(t *testing.T, body string, bodies *[]string) *Client {
	t.Helper()
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Body != nil {
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				t.Fatalf("read request body: %v", err)
			}
			*bodies = append(*bodies, string(raw))
		}
		return jsonResponse(http.StatusOK, body), nil
	})
	c, err := NewClient("tok", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestBuildURL_OrderedQueryWithTokenLast(t *testing.T) {
	c, err := NewClient("s3cret")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	r := get("messages", "/groups/42/messages", param("before_id", "9"), param("limit", "5"))

	got := c.buildURL(r)
	want := "https://api.groupme.com/v3/groups/42/messages?before_id=9&limit=5&token=s3cret"
	if got != want {
		t.Fatalf("buildURL = %q, want %q", got, want)
	}

	got = c.buildURL(get("groups", "/groups"))
	if got != "https://api.groupme.com/v3/groups?token=s3cret" {
		t.Fatalf("buildURL without query = %q", got)
	}
}

func TestBuildURL_EscapesQueryValuesOnly(t *testing.T) {
	c, err := NewClient("a b", WithBaseURL("http://localhost:9000/ignored?x=1"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	got := c.buildURL(get("blocks", "/blocks", param("user", "1&2")))
	want := "http://localhost:9000/v3/blocks?user=1%262&token=a+b"
	if got != want {
		t.Fatalf("buildURL = %q, want %q", got, want)
	}
}

func TestOptionalParamsKeepsOrderAndDropsEmpty(t *testing.T) {
	got := optionalParams(param("a", "1"), param("b", ""), intParam("c", 0), intParam("d", 7), param("e", "x"))
	var keys []string
	for _, p := range got {
		keys = append(keys, p.key+"="+p.value)
	}
	if strings.Join(keys, "&") != "a=1&d=7&e=x" {
		t.Fatalf("optionalParams = %v", keys)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{20, 20},
		{100, 100},
		{150, 100},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCreateAndUpdateGroupOmitUnsetFields(t *testing.T) {
	var bodies []string
	c := captureClient(t, `{"meta":{"code":201},"response":{"id":"7","name":"Crew"}}`, &bodies)
	ctx := context.Background()

	if _, err := c.CreateGroup(ctx, CreateGroupRequest{Name: "Crew"}); err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}
	if _, err := c.UpdateGroup(ctx, "7", UpdateGroupRequest{Name: String("Crew")}); err != nil {
		t.Fatalf("UpdateGroup returned error: %v", err)
	}
	if _, err := c.UpdateGroup(ctx, "7", UpdateGroupRequest{Share: Bool(false)}); err != nil {
		t.Fatalf("UpdateGroup returned error: %v", err)
	}

	want := []string{`{"name":"Crew"}`, `{"name":"Crew"}`, `{"share":false}`}
	if len(bodies) != len(want) {
		t.Fatalf("captured %d bodies, want %d", len(bodies), len(want))
	}
	for i := range want {
		if bodies[i] != want[i] {
			t.Errorf("body[%d] = %s, want %s", i, bodies[i], want[i])
		}
		if strings.Contains(bodies[i], "null") {
			t.Errorf("body[%d] = %s emits null", i, bodies[i])
		}
	}
}

func TestCreateMessage_FreshSourceGUIDPerCall(t *testing.T) {
	var bodies []string
	c := captureClient(t, `{"meta":{"code":201},"response":{"message":{"id":"m1","text":"hi"}}}`, &bodies)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		msg, err := c.CreateMessage(ctx, "42", "hi", nil)
		if err != nil {
			t.Fatalf("CreateMessage returned error: %v", err)
		}
		if msg.ID != "m1" {
			t.Fatalf("CreateMessage = %#v, want id m1", msg)
		}
	}

	var guids []string
	for _, raw := range bodies {
		var payload struct {
			Message struct {
				SourceGUID  string            `json:"source_guid"`
				Text        string            `json:"text"`
				Attachments []json.RawMessage `json:"attachments"`
			} `json:"message"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("unmarshal body %s: %v", raw, err)
		}
		if payload.Message.Text != "hi" || payload.Message.Attachments == nil {
			t.Fatalf("message body = %s, want text and empty attachments", raw)
		}
		guids = append(guids, payload.Message.SourceGUID)
	}
	if guids[0] == "" || guids[0] == guids[1] {
		t.Fatalf("source_guid values = %v, want two distinct values", guids)
	}
}

func TestCreateMessage_DropsNilAttachments(t *testing.T) {
	var bodies []string
	c := captureClient(t, `{"meta":{"code":201},"response":{"message":{"id":"m1"}}}`, &bodies)

	attachments := Attachments{nil, ImageAttachment{URL: "https://i.groupme.com/1"}, nil}
	if _, err := c.CreateMessage(context.Background(), "42", "", attachments); err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}

	want := `"attachments":[{"type":"image","url":"https://i.groupme.com/1"}]`
	if !strings.Contains(bodies[0], want) {
		t.Fatalf("body = %s, want %s", bodies[0], want)
	}
	if len(attachments) != 3 {
		t.Fatalf("caller's slice was modified: %#v", attachments)
	}
}

func TestCreateDirectMessage_CarriesRecipientAndGUID(t *testing.T) {
	var bodies []string
	c := captureClient(t, `{"meta":{"code":201},"response":{"direct_message":{"id":"d1","recipient_id":"99"}}}`, &bodies)
	c.newGUID = func() string { return "guid-1" }

	dm, err := c.CreateDirectMessage(context.Background(), "99", "yo", Attachments{ImageAttachment{URL: "https://i.groupme.com/x"}})
	if err != nil {
		t.Fatalf("CreateDirectMessage returned error: %v", err)
	}
	if dm.ID != "d1" || dm.RecipientID != "99" {
		t.Fatalf("direct message = %#v", dm)
	}
	want := `{"direct_message":{"source_guid":"guid-1","recipient_id":"99","text":"yo","attachments":[{"type":"image","url":"https://i.groupme.com/x"}]}}`
	if bodies[0] != want {
		t.Fatalf("body = %s\nwant %s", bodies[0], want)
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Clone()
		return jsonResponse(http.StatusOK, `{"meta":{"code":200},"response":{"id":"1"}}`), nil
	})
	c, err := NewClient("tok", WithHTTPClient(&http.Client{Transport: rt}), WithUserAgent("test/1"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.Group(context.Background(), "1"); err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if got.Get("Content-Type") != "" {
		t.Fatalf("GET sent Content-Type %q", got.Get("Content-Type"))
	}
	if got.Get("User-Agent") != "test/1" {
		t.Fatalf("User-Agent = %q, want test/1", got.Get("User-Agent"))
	}

	if _, err := c.UpdateNickname(context.Background(), "1", "Al"); err != nil {
		t.Fatalf("UpdateNickname returned error: %v", err)
	}
	if got.Get("Content-Type") != "application/json" {
		t.Fatalf("POST Content-Type = %q, want application/json", got.Get("Content-Type"))
	}
}
