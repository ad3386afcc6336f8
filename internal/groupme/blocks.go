package groupme

import "context"

// Blocks lists the users userID has blocked.
func (c *Client) Blocks(ctx context.Context, userID string) ([]Block, error) {
	return callField[[]Block](ctx, c, get("blocks", "/blocks", param("user", userID)), "blocks")
}

// BlockBetween reports whether a block exists between userID and otherUserID.
// It calls GET /blocks/between as documented by GroupMe rather than GET
// /blocks with both users, which answers with the block list instead.
func (c *Client) BlockBetween(ctx context.Context, userID, otherUserID string) (bool, error) {
	return callField[bool](ctx, c, get("block between", "/blocks/between", param("user", userID), param("otherUser", otherUserID)), "between")
}

// CreateBlock blocks otherUserID on behalf of userID.
func (c *Client) CreateBlock(ctx context.Context, userID, otherUserID string) (Block, error) {
	return callField[Block](ctx, c, post("create block", "/blocks", nil, param("user", userID), param("otherUser", otherUserID)), "block")
}

// Unblock removes the block between userID and otherUserID.
func (c *Client) Unblock(ctx context.Context, userID, otherUserID string) error {
	return c.exec(ctx, post("unblock", "/blocks/delete", nil, param("user", userID), param("otherUser", otherUserID)))
}
