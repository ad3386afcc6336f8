package groupme

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAttachments_DecodeKnownAndUnknown(t *testing.T) {
	data := []byte(`[
		{"type":"image","url":"https://i.groupme.com/1"},
		{"type":"location","lat":"40.738206","lng":"-73.993285","name":"GroupMe HQ"},
		{"type":"emoji","placeholder":"☃","charmap":[[1,42],[2,34]]},
		{"type":"mentions","user_ids":["1","2"],"loci":[[0,3],[4,5]]},
		{"type":"reply","reply_id":"r1","base_reply_id":"r0"},
		{"type":"poll","poll_id":"p1"},
		{"type":"event","event_id":"e1","view":"full"},
		{"type":"split","token":"abc"}
	]`)

	var got Attachments
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	want := []Attachment{
		ImageAttachment{URL: "https://i.groupme.com/1"},
		LocationAttachment{Lat: "40.738206", Lng: "-73.993285", Name: "GroupMe HQ"},
		EmojiAttachment{Placeholder: "☃", Charmap: [][]int{{1, 42}, {2, 34}}},
		MentionsAttachment{UserIDs: []string{"1", "2"}, Loci: [][]int{{0, 3}, {4, 5}}},
		ReplyAttachment{ReplyID: "r1", BaseReplyID: "r0"},
		PollAttachment{PollID: "p1"},
		EventAttachment{EventID: "e1", View: "full"},
	}
	if len(got) != len(want)+1 {
		t.Fatalf("decoded %d attachments, want %d", len(got), len(want)+1)
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("attachment %d = %#v, want %#v", i, got[i], want[i])
		}
	}

	unknown, ok := got[len(got)-1].(UnknownAttachment)
	if !ok || unknown.AttachmentType() != "split" {
		t.Fatalf("last attachment = %#v, want UnknownAttachment split", got[len(got)-1])
	}
	encoded, err := json.Marshal(unknown)
	if err != nil {
		t.Fatalf("Marshal unknown returned error: %v", err)
	}
	if string(encoded) != `{"type":"split","token":"abc"}` {
		t.Fatalf("unknown re-encoded as %s", encoded)
	}
}

func TestAttachments_EncodeIncludesType(t *testing.T) {
	tests := []struct {
		in   Attachment
		want string
	}{
		{ImageAttachment{URL: "u"}, `{"type":"image","url":"u"}`},
		{LocationAttachment{Lat: "1", Lng: "2", Name: "n"}, `{"type":"location","lat":"1","lng":"2","name":"n"}`},
		{MentionsAttachment{UserIDs: []string{"9"}, Loci: [][]int{{0, 4}}}, `{"type":"mentions","user_ids":["9"],"loci":[[0,4]]}`},
		{ReplyAttachment{ReplyID: "a", BaseReplyID: "b"}, `{"type":"reply","reply_id":"a","base_reply_id":"b"}`},
		{UnknownAttachment{Type: "split"}, `{"type":"split"}`},
		{UnknownAttachment{Type: "renamed", Raw: json.RawMessage(`{"type":"split","token":"x"}`)}, `{"type":"split","token":"x"}`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("Marshal(%#v) returned error: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%T) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAttachments_NullAndEmpty(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"id":"1","attachments":null}`), &msg); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if msg.Attachments != nil {
		t.Fatalf("null attachments = %#v, want nil", msg.Attachments)
	}

	if err := json.Unmarshal([]byte(`{"id":"1","attachments":[]}`), &msg); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if msg.Attachments == nil || len(msg.Attachments) != 0 {
		t.Fatalf("empty attachments = %#v, want empty slice", msg.Attachments)
	}
}

func TestAttachments_BadElementReportsIndex(t *testing.T) {
	var got Attachments
	err := json.Unmarshal([]byte(`[{"type":"image","url":"ok"},{"type":"image","url":5}]`), &got)
	if err == nil {
		t.Fatalf("Unmarshal should fail on a malformed element")
	}
	if want := "attachment 1:"; len(err.Error()) < len(want) || err.Error()[:len(want)] != want {
		t.Fatalf("error = %q, want prefix %q", err.Error(), want)
	}
}
