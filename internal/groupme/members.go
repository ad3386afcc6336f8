package groupme

import (
	"context"
	"fmt"
)

// AddMembers adds members to a group. Memberships are processed
// asynchronously; the returned results id is passed to MembershipResults.
func (c *Client) AddMembers(ctx context.Context, groupID string, members []NewMember) (string, error) {
	if members == nil {
		members = []NewMember{}
	}
	return callField[string](ctx, c, post("add members", fmt.Sprintf("/groups/%s/members/add", groupID), addMembersRequest{Members: members}), "results_id")
}

// MembershipResults fetches the memberships created by an AddMembers call.
// Failed memberships are omitted. Results are kept for one hour; GroupMe
// answers 503 while they are still being processed and 404 once expired.
func (c *Client) MembershipResults(ctx context.Context, groupID, resultsID string) ([]MembershipResult, error) {
	return callField[[]MembershipResult](ctx, c, get("membership results", fmt.Sprintf("/groups/%s/members/results/%s", groupID, resultsID)), "members")
}

// RemoveMember removes a membership from a group. membershipID is the
// membership id (Member.ID), not the user id.
func (c *Client) RemoveMember(ctx context.Context, groupID, membershipID string) error {
	return c.exec(ctx, post("remove member", fmt.Sprintf("/groups/%s/members/%s/remove", groupID, membershipID), nil))
}

// UpdateNickname changes the authenticated user's nickname in a group.
func (c *Client) UpdateNickname(ctx context.Context, groupID, nickname string) (Member, error) {
	var body updateMembershipRequest
	body.Membership.Nickname = nickname
	return call[Member](ctx, c, post("update nickname", fmt.Sprintf("/groups/%s/memberships/update", groupID), body))
}
