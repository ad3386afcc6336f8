package groupme

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Attachment type discriminators.
const (
	AttachmentImage    = "image"
	AttachmentLocation = "location"
	AttachmentEmoji    = "emoji"
	AttachmentMentions = "mentions"
	AttachmentEvent    = "event"
	AttachmentPoll     = "poll"
	AttachmentReply    = "reply"
)

// Attachment is one element of a message's polymorphic attachment list.
// The concrete type is chosen by the "type" field on the wire.
type Attachment interface {
	AttachmentType() string
}

// ImageAttachment references an image processed by the GroupMe image service.
type ImageAttachment struct {
	URL string `json:"url"`
}

// LocationAttachment is a named point. GroupMe sends coordinates as strings.
type LocationAttachment struct {
	Lat  string `json:"lat"`
	Lng  string `json:"lng"`
	Name string `json:"name"`
}

// EmojiAttachment maps placeholder characters in the text to emoji
// PowerUp runes. Each Charmap entry is a [pack_id, offset] pair.
type EmojiAttachment struct {
	Placeholder string  `json:"placeholder"`
	Charmap     [][]int `json:"charmap"`
}

// MentionsAttachment marks users mentioned in the text. Loci holds one
// [start, length] pair per entry of UserIDs.
type MentionsAttachment struct {
	UserIDs []string `json:"user_ids"`
	Loci    [][]int  `json:"loci"`
}

// EventAttachment links a calendar event.
type EventAttachment struct {
	EventID string `json:"event_id"`
	View    string `json:"view"`
}

// PollAttachment links a poll.
type PollAttachment struct {
	PollID string `json:"poll_id"`
}

// ReplyAttachment marks a message as a reply.
type ReplyAttachment struct {
	ReplyID     string `json:"reply_id"`
	BaseReplyID string `json:"base_reply_id"`
}

// UnknownAttachment keeps an attachment of an unrecognised type verbatim.
// When Raw is set it is encoded as is and Type is ignored; only a value
// without Raw is encoded from Type.
type UnknownAttachment struct {
	Type string
	Raw  json.RawMessage
}

func (ImageAttachment) AttachmentType() string    { return AttachmentImage }
func (LocationAttachment) AttachmentType() string { return AttachmentLocation }
func (EmojiAttachment) AttachmentType() string    { return AttachmentEmoji }
func (MentionsAttachment) AttachmentType() string { return AttachmentMentions }
func (EventAttachment) AttachmentType() string    { return AttachmentEvent }
func (PollAttachment) AttachmentType() string     { return AttachmentPoll }
func (ReplyAttachment) AttachmentType() string    { return AttachmentReply }
func (a UnknownAttachment) AttachmentType() string {
	return a.Type
}

func (a ImageAttachment) MarshalJSON() ([]byte, error) {
	type wire ImageAttachment
	return marshalTagged(AttachmentImage, wire(a))
}

func (a LocationAttachment) MarshalJSON() ([]byte, error) {
	type wire LocationAttachment
	return marshalTagged(AttachmentLocation, wire(a))
}

func (a EmojiAttachment) MarshalJSON() ([]byte, error) {
	type wire EmojiAttachment
	return marshalTagged(AttachmentEmoji, wire(a))
}

func (a MentionsAttachment) MarshalJSON() ([]byte, error) {
	type wire MentionsAttachment
	return marshalTagged(AttachmentMentions, wire(a))
}

func (a EventAttachment) MarshalJSON() ([]byte, error) {
	type wire EventAttachment
	return marshalTagged(AttachmentEvent, wire(a))
}

func (a PollAttachment) MarshalJSON() ([]byte, error) {
	type wire PollAttachment
	return marshalTagged(AttachmentPoll, wire(a))
}

func (a ReplyAttachment) MarshalJSON() ([]byte, error) {
	type wire ReplyAttachment
	return marshalTagged(AttachmentReply, wire(a))
}

func (a UnknownAttachment) MarshalJSON() ([]byte, error) {
	if len(a.Raw) == 0 {
		return json.Marshal(struct {
			Type string `json:"type"`
		}{a.Type})
	}
	return a.Raw, nil
}

// marshalTagged encodes v as an object and prepends the type field.
func marshalTagged(kind string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	typeField, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(typeField)
	inner := bytes.TrimSpace(body)
	inner = bytes.TrimPrefix(inner, []byte("{"))
	if len(bytes.TrimSpace(inner)) > 1 {
		buf.WriteByte(',')
	}
	buf.Write(inner)
	return buf.Bytes(), nil
}

// Attachments is a list of attachments that decodes each element by its
// type discriminator.
type Attachments []Attachment

func (as *Attachments) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*as = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Attachments, 0, len(raws))
	for i, raw := range raws {
		a, err := decodeAttachment(raw)
		if err != nil {
			return fmt.Errorf("attachment %d: %w", i, err)
		}
		out = append(out, a)
	}
	*as = out
	return nil
}

func decodeAttachment(raw json.RawMessage) (Attachment, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case AttachmentImage:
		var a ImageAttachment
		err := json.Unmarshal(raw, &a)
		return a, err
	case AttachmentLocation:
		var a LocationAttachment
		err := json.Unmarshal(raw, &a)
		return a, err
	case AttachmentEmoji:
		var a EmojiAttachment
		err := json.Unmarshal(raw, &a)
		return a, err
	case AttachmentMentions:
		var a MentionsAttachment
		err := json.Unmarshal(raw, &a)
		return a, err
	case AttachmentEvent:
		var a EventAttachment
		err := json.Unmarshal(raw, &a)
		return a, err
	case AttachmentPoll:
		var a PollAttachment
		err := json.Unmarshal(raw, &a)
		return a, err
	case AttachmentReply:
		var a ReplyAttachment
		err := json.Unmarshal(raw, &a)
		return a, err
	default:
		dup := make(json.RawMessage, len(raw))
		copy(dup, raw)
		return UnknownAttachment{Type: head.Type, Raw: dup}, nil
	}
}
