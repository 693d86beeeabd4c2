package orbitsdk

import (
	"context"
)

const (
	orgs           = "/orgs"
	groupsChildren = "/groups/{group_id}/children"
)

// ListOrgs lists all orgs of the logged in user
func (c *Client) ListOrgs(ctx context.Context) (int, any) {
	return c.getJSON(c.request(ctx), orgs)
}

// ListGroupChildren lists the children of a group
func (c *Client) ListGroupChildren(ctx context.Context, groupID string) (int, any) {
	r := c.request(ctx).SetPathParam("group_id", groupID)
	return c.getJSON(r, groupsChildren)
}
