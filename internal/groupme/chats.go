package groupme

import (
	"context"
	"fmt"
)

// Chats lists direct message conversations, most recently updated first.
func (c *Client) Chats(ctx context.Context, q ChatsQuery) ([]Chat, error) {
	query := optionalParams(
		intParam("page", q.Page),
		intParam("per_page", q.PerPage),
	)
	return call[[]Chat](ctx, c, get("chats", "/chats", query...))
}

// DirectMessages fetches up to 20 messages exchanged with otherUserID,
// newest first. An empty page is returned as an empty slice.
func (c *Client) DirectMessages(ctx context.Context, otherUserID string, q DirectMessagesQuery) ([]DirectMessage, error) {
	query := append([]queryParam{param("other_user_id", otherUserID)}, optionalParams(
		param("before_id", q.BeforeID),
		param("since_id", q.SinceID),
	)...)
	dms, err := callListingField[[]DirectMessage](ctx, c, get("direct messages", "/direct_messages", query...), "direct_messages")
	if err != nil {
		return nil, err
	}
	if dms == nil {
		return []DirectMessage{}, nil
	}
	return dms, nil
}

// CreateDirectMessage sends a direct message to recipientID. Every call
// carries a new source_guid.
func (c *Client) CreateDirectMessage(ctx context.Context, recipientID, text string, attachments Attachments) (DirectMessage, error) {
	if c == nil {
		return DirectMessage{}, fmt.Errorf("groupme: client is nil")
	}
	body := createDirectMessageRequest{DirectMessage: c.newMessageBody(recipientID, text, attachments)}
	return callField[DirectMessage](ctx, c, post("create direct message", "/direct_messages", body), "direct_message")
}
