package groupme

import (
	"context"
	"fmt"
)

// Like likes a message. conversationID is the group id for group messages
// and the conversation id for direct messages.
func (c *Client) Like(ctx context.Context, conversationID, messageID string) error {
	return c.exec(ctx, post("like message", fmt.Sprintf("/messages/%s/%s/like", conversationID, messageID), nil))
}

// Unlike removes a like from a message.
func (c *Client) Unlike(ctx context.Context, conversationID, messageID string) error {
	return c.exec(ctx, post("unlike message", fmt.Sprintf("/messages/%s/%s/unlike", conversationID, messageID), nil))
}

// Leaderboard returns the group's most liked messages for period, ranked by
// number of likes.
func (c *Client) Leaderboard(ctx context.Context, groupID string, period Period) ([]Message, error) {
	if period == "" {
		period = PeriodDay
	}
	return callField[[]Message](ctx, c, get("leaderboard",
		fmt.Sprintf("/groups/%s/likes", groupID), param("period", string(period))), "messages")
}

// MyLikes returns the messages the user has liked in a group, newest first.
func (c *Client) MyLikes(ctx context.Context, groupID string) ([]Message, error) {
	return callField[[]Message](ctx, c, get("my likes", fmt.Sprintf("/groups/%s/likes/mine", groupID)), "messages")
}

// MyHits returns the user's messages that others have liked in a group.
func (c *Client) MyHits(ctx context.Context, groupID string) ([]Message, error) {
	return callField[[]Message](ctx, c, get("my hits", fmt.Sprintf("/groups/%s/likes/for_me", groupID)), "messages")
}
