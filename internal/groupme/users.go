package groupme

import "context"

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (CurrentUser, error) {
	return call[CurrentUser](ctx, c, get("current user", "/users/me"))
}

// UpdateMe updates the fields set in req on the authenticated user.
func (c *Client) UpdateMe(ctx context.Context, req UpdateUserRequest) (CurrentUser, error) {
	return call[CurrentUser](ctx, c, post("update current user", "/users/update", req))
}

// EnableSMS switches the user to SMS mode for the given number of hours
// (at most 48). When registrationID is set, push notifications to that
// device are suppressed for the duration.
func (c *Client) EnableSMS(ctx context.Context, hours int, registrationID string) error {
	body := enableSMSRequest{Duration: hours, RegistrationID: registrationID}
	return c.exec(ctx, post("enable sms mode", "/users/sms_mode", body))
}

// DisableSMS turns SMS mode off.
func (c *Client) DisableSMS(ctx context.Context) error {
	return c.exec(ctx, post("disable sms mode", "/users/sms_mode/delete", nil))
}
