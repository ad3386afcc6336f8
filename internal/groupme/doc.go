// Package groupme provides a typed client for the GroupMe v3 REST API.
//
// # Overview
//
// Every operation maps one method call to one HTTP request and one parsed
// response. There is no caching, no retrying and no pagination helper; query
// parameters such as before_id or page are passed through to the API.
//
// # Architecture
//
//   - client.go: Client construction, options and the single-exchange transport
//   - request.go: URL and body construction, source_guid generation
//   - envelope.go: the {meta, response} decoder and outcome classification
//   - errors.go: typed errors
//   - types.go, requests.go, attachments.go: wire shapes
//   - groups.go, members.go, messages.go, chats.go, likes.go, users.go, blocks.go: operations
//
// # Client Usage
//
//	client, err := groupme.NewClient(token)
//	if err != nil {
//		log.Fatalf("groupme: %v", err)
//	}
//
//	groups, err := client.Groups(ctx, groupme.ListGroupsOptions{PerPage: 50})
//	msgs, err := client.Messages(ctx, groups[0].ID, groupme.MessagesQuery{Limit: 20})
//	sent, err := client.CreateMessage(ctx, groups[0].ID, "hello", nil)
//
// # Requests
//
// URLs are https://api.groupme.com/v3 followed by the endpoint path and the
// query parameters in the order the operation lists them. The access token is
// always appended last as the token parameter. Identifiers are interpolated
// into paths verbatim and must not contain "/".
//
// Request bodies leave out every optional field the caller did not set, so
// UpdateGroup and UpdateMe only change what they are given. Message creation
// stamps each request with a fresh random source_guid.
//
// Message listings clamp Limit to 100, the server maximum. A zero Limit omits
// the parameter and the server returns 20 messages.
//
// # Responses and Errors
//
// Every response body is an envelope:
//
//	{"meta": {"code": 200, "errors": ["..."]}, "response": ...}
//
// The decoder applies the same rule to every operation:
//
//  1. body is not valid JSON for the expected shape → *DecodeError
//  2. meta.errors is non-empty → *RemoteError, payload ignored
//  3. response is missing or null → *ContractViolationError
//  4. otherwise the payload is returned
//
// Operations that return one member of the payload, such as JoinGroup
// (.group) or BlockBetween (.between), treat a missing or null member the
// same way as step 3, with Field naming the member.
//
// An empty body on a non-2xx status is a *RemoteError carrying the HTTP
// status, for every operation. An empty body on a 2xx status is KindNoData
// where a payload was expected.
//
// Network failures are reported as *TransportError with a Kind of
// KindConnection, KindInvalidResponse or KindNoData. HTTP status codes are not
// checked by the transport because GroupMe reports errors inside the body.
//
// Operations without a payload (DestroyGroup, Like, DisableSMS, ...) accept an
// empty body on a 2xx status. A non-empty body still goes through step 2.
//
// Message listings treat HTTP 304 as an empty page.
//
// # Attachments
//
// Attachments are a tagged union keyed by "type". Known variants decode into
// ImageAttachment, LocationAttachment, EmojiAttachment, MentionsAttachment,
// EventAttachment, PollAttachment and ReplyAttachment. Anything else is kept
// as an UnknownAttachment and re-encoded unchanged.
//
// # Thread Safety
//
// A Client holds only immutable configuration and is safe for concurrent use.
// Each Client carries its own token, so several sessions can run side by side.
package groupme
