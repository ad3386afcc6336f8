package groupme

import "context"

// API is the set of GroupMe operations implemented by *Client. Consumers
// depend on the subset they need so tests can substitute fakes.
type API interface {
	Groups(ctx context.Context, opts ListGroupsOptions) ([]Group, error)
	FormerGroups(ctx context.Context) ([]Group, error)
	Group(ctx context.Context, groupID string) (Group, error)
	CreateGroup(ctx context.Context, req CreateGroupRequest) (Group, error)
	UpdateGroup(ctx context.Context, groupID string, req UpdateGroupRequest) (Group, error)
	DestroyGroup(ctx context.Context, groupID string) error
	JoinGroup(ctx context.Context, groupID, shareToken string) (Group, error)
	RejoinGroup(ctx context.Context, groupID string) (Group, error)
	ChangeOwners(ctx context.Context, changes []OwnerChange) ([]OwnerChangeResult, error)

	AddMembers(ctx context.Context, groupID string, members []NewMember) (string, error)
	MembershipResults(ctx context.Context, groupID, resultsID string) ([]MembershipResult, error)
	RemoveMember(ctx context.Context, groupID, membershipID string) error
	UpdateNickname(ctx context.Context, groupID, nickname string) (Member, error)

	Messages(ctx context.Context, groupID string, q MessagesQuery) ([]Message, error)
	CreateMessage(ctx context.Context, groupID, text string, attachments Attachments) (Message, error)

	Chats(ctx context.Context, q ChatsQuery) ([]Chat, error)
	DirectMessages(ctx context.Context, otherUserID string, q DirectMessagesQuery) ([]DirectMessage, error)
	CreateDirectMessage(ctx context.Context, recipientID, text string, attachments Attachments) (DirectMessage, error)

	Like(ctx context.Context, conversationID, messageID string) error
	Unlike(ctx context.Context, conversationID, messageID string) error
	Leaderboard(ctx context.Context, groupID string, period Period) ([]Message, error)
	MyLikes(ctx context.Context, groupID string) ([]Message, error)
	MyHits(ctx context.Context, groupID string) ([]Message, error)

	Me(ctx context.Context) (CurrentUser, error)
	UpdateMe(ctx context.Context, req UpdateUserRequest) (CurrentUser, error)
	EnableSMS(ctx context.Context, hours int, registrationID string) error
	DisableSMS(ctx context.Context) error

	Blocks(ctx context.Context, userID string) ([]Block, error)
	BlockBetween(ctx context.Context, userID, otherUserID string) (bool, error)
	CreateBlock(ctx context.Context, userID, otherUserID string) (Block, error)
	Unblock(ctx context.Context, userID, otherUserID string) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)
