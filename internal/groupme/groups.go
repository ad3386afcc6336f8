package groupme

import (
	"context"
	"fmt"
)

// Groups lists the authenticated user's active groups.
func (c *Client) Groups(ctx context.Context, opts ListGroupsOptions) ([]Group, error) {
	query := optionalParams(
		intParam("page", opts.Page),
		intParam("per_page", opts.PerPage),
		param("omit", opts.Omit),
	)
	return call[[]Group](ctx, c, get("groups", "/groups", query...))
}

// FormerGroups lists groups the user has left but can rejoin.
func (c *Client) FormerGroups(ctx context.Context) ([]Group, error) {
	return call[[]Group](ctx, c, get("former groups", "/groups/former"))
}

// Group loads a single group.
func (c *Client) Group(ctx context.Context, groupID string) (Group, error) {
	return call[Group](ctx, c, get("group", "/groups/"+groupID))
}

// CreateGroup creates a group. With Share set, GroupMe generates a share URL
// anybody can use to join.
func (c *Client) CreateGroup(ctx context.Context, req CreateGroupRequest) (Group, error) {
	return call[Group](ctx, c, post("create group", "/groups", req))
}

// UpdateGroup changes the fields set in req and leaves the rest untouched.
func (c *Client) UpdateGroup(ctx context.Context, groupID string, req UpdateGroupRequest) (Group, error) {
	return call[Group](ctx, c, post("update group", fmt.Sprintf("/groups/%s/update", groupID), req))
}

// DestroyGroup disbands a group. Only the creator may do this.
func (c *Client) DestroyGroup(ctx context.Context, groupID string) error {
	return c.exec(ctx, post("destroy group", fmt.Sprintf("/groups/%s/destroy", groupID), nil))
}

// JoinGroup joins a shared group using its share token.
func (c *Client) JoinGroup(ctx context.Context, groupID, shareToken string) (Group, error) {
	return callField[Group](ctx, c, post("join group", fmt.Sprintf("/groups/%s/join/%s", groupID, shareToken), nil), "group")
}

// RejoinGroup rejoins a group the user previously left on their own.
func (c *Client) RejoinGroup(ctx context.Context, groupID string) (Group, error) {
	return call[Group](ctx, c, post("rejoin group", "/groups/join", rejoinGroupRequest{GroupID: groupID}))
}

// ChangeOwners transfers ownership of one or more groups. Each change is
// reported separately; a failed change does not fail the call.
func (c *Client) ChangeOwners(ctx context.Context, changes []OwnerChange) ([]OwnerChangeResult, error) {
	if changes == nil {
		changes = []OwnerChange{}
	}
	return callField[[]OwnerChangeResult](ctx, c, post("change owners", "/groups/change_owners", changeOwnersRequest{Requests: changes}), "results")
}
