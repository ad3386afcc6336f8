package groupme

import "time"

// GroupType is the visibility of a group.
type GroupType string

const (
	GroupTypePrivate GroupType = "private"
	GroupTypeClosed  GroupType = "closed"
)

// Group mirrors the group object returned by /groups endpoints.
type Group struct {
	ID             string        `json:"id"`
	GroupID        string        `json:"group_id"`
	Name           string        `json:"name"`
	PhoneNumber    string        `json:"phone_number"`
	Type           GroupType     `json:"type"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"image_url"`
	CreatorUserID  string        `json:"creator_user_id"`
	CreatedAt      int64         `json:"created_at"`
	UpdatedAt      int64         `json:"updated_at"`
	MutedUntil     *int64        `json:"muted_until"`
	OfficeMode     bool          `json:"office_mode"`
	ShareURL       string        `json:"share_url"`
	ShareQRCodeURL string        `json:"share_qr_code_url"`
	Members        []Member      `json:"members"`
	Messages       GroupMessages `json:"messages"`
	MaxMembers     int           `json:"max_members"`
}

// Created returns the creation time of the group.
func (g Group) Created() time.Time { return unixTime(g.CreatedAt) }

// Updated returns the last activity time of the group.
func (g Group) Updated() time.Time { return unixTime(g.UpdatedAt) }

// GroupMessages is the message summary embedded in a Group.
type GroupMessages struct {
	Count                int          `json:"count"`
	LastMessageID        string       `json:"last_message_id"`
	LastMessageCreatedAt int64        `json:"last_message_created_at"`
	Preview              GroupPreview `json:"preview"`
}

// GroupPreview is the last message preview embedded in a Group.
type GroupPreview struct {
	Nickname    string      `json:"nickname"`
	Text        string      `json:"text"`
	ImageURL    string      `json:"image_url"`
	Attachments Attachments `json:"attachments"`
}

// MemberRole is a membership role within a group.
type MemberRole string

const (
	RoleAdmin MemberRole = "admin"
	RoleOwner MemberRole = "owner"
	RoleUser  MemberRole = "user"
)

// Member is a group membership. ID is the membership id, not the user id.
type Member struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	Nickname   string       `json:"nickname"`
	ImageURL   string       `json:"image_url"`
	Muted      bool         `json:"muted"`
	Autokicked bool         `json:"autokicked"`
	Roles      []MemberRole `json:"roles"`
	Name       string       `json:"name"`
}

// HasRole reports whether the member holds role.
func (m Member) HasRole(role MemberRole) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SenderType identifies who produced a message.
type SenderType string

const (
	SenderSystem  SenderType = "system"
	SenderUser    SenderType = "user"
	SenderService SenderType = "service"
)

// Message is a message posted to a group.
// For historical reasons likes are reported as user ids in FavoritedBy.
type Message struct {
	ID          string        `json:"id"`
	SourceGUID  string        `json:"source_guid"`
	CreatedAt   int64         `json:"created_at"`
	UserID      string        `json:"user_id"`
	GroupID     string        `json:"group_id"`
	Name        string        `json:"name"`
	AvatarURL   string        `json:"avatar_url"`
	Text        string        `json:"text"`
	System      bool          `json:"system"`
	SenderID    string        `json:"sender_id"`
	SenderType  SenderType    `json:"sender_type"`
	Platform    string        `json:"platform"`
	FavoritedBy []string      `json:"favorited_by"`
	Attachments Attachments   `json:"attachments"`
	Event       *MessageEvent `json:"event,omitempty"`
}

// Created returns the time the message was posted.
func (m Message) Created() time.Time { return unixTime(m.CreatedAt) }

// LikedBy reports whether userID has liked the message.
func (m Message) LikedBy(userID string) bool {
	for _, id := range m.FavoritedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// MessageEvent describes a system event attached to a message.
type MessageEvent struct {
	Type string           `json:"type"`
	Data MessageEventData `json:"data"`
}

// MessageEventData is the payload of a MessageEvent.
type MessageEventData struct {
	Event        *EventRef          `json:"event,omitempty"`
	User         EventUser          `json:"user"`
	Conversation *EventConversation `json:"conversation,omitempty"`
	Poll         *PollRef           `json:"poll,omitempty"`
	URL          string             `json:"url,omitempty"`
}

// EventUser names the user an event refers to.
type EventUser struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// EventConversation identifies the conversation an event happened in.
type EventConversation struct {
	ID string `json:"id"`
}

// EventRef references a calendar event.
type EventRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PollRef references a poll.
type PollRef struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
}

// Chat is a direct message conversation summary.
type Chat struct {
	CreatedAt     int64           `json:"created_at"`
	UpdatedAt     int64           `json:"updated_at"`
	MessagesCount int             `json:"messages_count"`
	LastMessage   ChatLastMessage `json:"last_message"`
	OtherUser     ChatUser        `json:"other_user"`
}

// ChatLastMessage is the newest message of a Chat.
type ChatLastMessage struct {
	ID             string      `json:"id"`
	SourceGUID     string      `json:"source_guid"`
	ConversationID string      `json:"conversation_id"`
	CreatedAt      int64       `json:"created_at"`
	UserID         string      `json:"user_id"`
	SenderID       string      `json:"sender_id"`
	SenderType     string      `json:"sender_type"`
	RecipientID    string      `json:"recipient_id"`
	Name           string      `json:"name"`
	AvatarURL      string      `json:"avatar_url"`
	Text           string      `json:"text"`
	FavoritedBy    []string    `json:"favorited_by"`
	Attachments    Attachments `json:"attachments"`
}

// ChatUser is the other participant of a Chat.
type ChatUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// DirectMessage is a message exchanged between two users.
type DirectMessage struct {
	ID             string        `json:"id"`
	SourceGUID     string        `json:"source_guid"`
	ConversationID string        `json:"conversation_id"`
	RecipientID    string        `json:"recipient_id"`
	CreatedAt      int64         `json:"created_at"`
	UserID         string        `json:"user_id"`
	SenderID       string        `json:"sender_id"`
	SenderType     SenderType    `json:"sender_type"`
	Name           string        `json:"name"`
	AvatarURL      string        `json:"avatar_url"`
	Text           string        `json:"text"`
	FavoritedBy    []string      `json:"favorited_by"`
	Attachments    Attachments   `json:"attachments"`
	Event          *MessageEvent `json:"event,omitempty"`
}

// Created returns the time the direct message was sent.
func (m DirectMessage) Created() time.Time { return unixTime(m.CreatedAt) }

// ReadReceipt marks how far a user has read a chat.
type ReadReceipt struct {
	ID        string `json:"id"`
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	ReadAt    int64  `json:"read_at"`
}

// CurrentUser is the authenticated user.
type CurrentUser struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	PhoneNumber       string   `json:"phone_number"`
	ImageURL          string   `json:"image_url"`
	Locale            string   `json:"locale"`
	ZipCode           *string  `json:"zip_code"`
	SMS               bool     `json:"sms"`
	FacebookConnected bool     `json:"facebook_connected"`
	TwitterConnected  bool     `json:"twitter_connected"`
	CreatedAt         int64    `json:"created_at"`
	UpdatedAt         int64    `json:"updated_at"`
	ShareURL          string   `json:"share_url"`
	ShareQRCodeURL    string   `json:"share_qr_code_url"`
	MFA               MFA      `json:"mfa"`
	Tags              []string `json:"tags"`
	PromptForSurvey   bool     `json:"prompt_for_survey"`
	ShowAgeGate       bool     `json:"show_age_gate"`
}

// MFA describes the multi-factor authentication setup of a user.
type MFA struct {
	Enabled  bool         `json:"enabled"`
	Channels []MFAChannel `json:"channels"`
}

// MFAChannel is one enrolled MFA channel.
type MFAChannel struct {
	Type      string `json:"type"`
	CreatedAt int64  `json:"created_at"`
}

// Block records that UserID has blocked BlockedUserID.
type Block struct {
	UserID        string `json:"user_id"`
	BlockedUserID string `json:"blocked_user_id"`
	CreatedAt     int64  `json:"created_at"`
}

// MembershipResult is one membership created by an AddMembers call.
type MembershipResult struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Nickname     string `json:"nickname"`
	Muted        bool   `json:"muted"`
	ImageURL     string `json:"image_url"`
	Autokicked   bool   `json:"autokicked"`
	AppInstalled bool   `json:"app_installed"`
	GUID         string `json:"guid"`
}

// OwnerChangeResult reports the outcome of one ownership transfer.
// Status follows HTTP semantics: "200" means the change was applied.
type OwnerChangeResult struct {
	GroupID string `json:"group_id"`
	OwnerID string `json:"owner_id"`
	Status  string `json:"status"`
}

// Period selects the leaderboard window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Next cycles day → week → month → day.
func (p Period) Next() Period {
	switch p {
	case PeriodDay:
		return PeriodWeek
	case PeriodWeek:
		return PeriodMonth
	default:
		return PeriodDay
	}
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
