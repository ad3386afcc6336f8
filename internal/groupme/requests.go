package groupme

// Request bodies use pointer fields with omitempty so that fields the caller
// did not set are left out of the JSON entirely. GroupMe treats a missing
// field as "unchanged" and an explicit null or zero value as a change.

// CreateGroupRequest is the body of POST /groups.
type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Share       *bool   `json:"share,omitempty"`
}

// UpdateGroupRequest is the body of POST /groups/{id}/update.
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	OfficeMode  *bool   `json:"office_mode,omitempty"`
	Share       *bool   `json:"share,omitempty"`
}

// NewMember is one entry of an AddMembers call. Nickname is required along
// with one of UserID, PhoneNumber or Email. GUID is echoed back in the
// membership results so callers can correlate them.
type NewMember struct {
	Nickname    string `json:"nickname"`
	UserID      string `json:"user_id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	GUID        string `json:"guid,omitempty"`
}

// UpdateUserRequest is the body of POST /users/update.
type UpdateUserRequest struct {
	AvatarURL *string `json:"avatar_url,omitempty"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	ZipCode   *string `json:"zip_code,omitempty"`
}

// OwnerChange transfers ownership of GroupID to OwnerID.
type OwnerChange struct {
	GroupID string `json:"group_id"`
	OwnerID string `json:"owner_id"`
}

// ListGroupsOptions are passed through to GET /groups.
type ListGroupsOptions struct {
	Page    int
	PerPage int
	// Omit is a comma separated list of fields to leave out, e.g. "memberships".
	Omit string
}

// MessagesQuery pages through a group's messages. At most one of BeforeID,
// SinceID and AfterID is normally set. Limit is clamped to 100; zero keeps
// the server default of 20.
type MessagesQuery struct {
	BeforeID string
	SinceID  string
	AfterID  string
	Limit    int
}

// DirectMessagesQuery pages through a conversation with another user.
type DirectMessagesQuery struct {
	BeforeID string
	SinceID  string
}

// ChatsQuery pages through direct message conversations.
type ChatsQuery struct {
	Page    int
	PerPage int
}

type updateMembershipRequest struct {
	Membership struct {
		Nickname string `json:"nickname"`
	} `json:"membership"`
}

type addMembersRequest struct {
	Members []NewMember `json:"members"`
}

type rejoinGroupRequest struct {
	GroupID string `json:"group_id"`
}

type changeOwnersRequest struct {
	Requests []OwnerChange `json:"requests"`
}

type createMessageRequest struct {
	Message messageBody `json:"message"`
}

type createDirectMessageRequest struct {
	DirectMessage messageBody `json:"direct_message"`
}

type enableSMSRequest struct {
	Duration       int    `json:"duration"`
	RegistrationID string `json:"registration_id,omitempty"`
}

// String returns a pointer to s for optional request fields.
func String(s string) *string { return &s }

// Bool returns a pointer to b for optional request fields.
func Bool(b bool) *bool { return &b }
