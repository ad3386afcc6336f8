package groupme

import (
	"context"
	"fmt"
)

// Messages retrieves messages for a group, newest first unless AfterID is
// set. A page with no messages is returned as an empty slice.
func (c *Client) Messages(ctx context.Context, groupID string, q MessagesQuery) ([]Message, error) {
	query := optionalParams(
		param("before_id", q.BeforeID),
		param("since_id", q.SinceID),
		param("after_id", q.AfterID),
		intParam("limit", clampLimit(q.Limit)),
	)
	msgs, err := callListingField[[]Message](ctx, c, get("messages", fmt.Sprintf("/groups/%s/messages", groupID), query...), "messages")
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		return []Message{}, nil
	}
	return msgs, nil
}

// CreateMessage posts a message to a group. text may be empty when at
// least one attachment is present. Every call carries a new source_guid.
func (c *Client) CreateMessage(ctx context.Context, groupID, text string, attachments Attachments) (Message, error) {
	if c == nil {
		return Message{}, fmt.Errorf("groupme: client is nil")
	}
	body := createMessageRequest{Message: c.newMessageBody("", text, attachments)}
	return callField[Message](ctx, c, post("create message", fmt.Sprintf("/groups/%s/messages", groupID), body), "message")
}
