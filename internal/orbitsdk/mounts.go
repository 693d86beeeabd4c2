package orbitsdk

import (
	"context"
)

const (
	mounts      = "/mounts"
	mountsFiles = "/mounts/{mount_id}/files"
)

// ListMounts lists the mounts visible to a group
func (c *Client) ListMounts(ctx context.Context, groupID string) (int, any) {
	return c.getJSON(c.groupRequest(ctx, groupID), mounts)
}

// ListMountFiles lists the files of a mount. An empty path lists the mount root.
func (c *Client) ListMountFiles(ctx context.Context, groupID, mountID, path string) (int, any) {
	r := c.groupRequest(ctx, groupID).SetPathParam("mount_id", mountID)
	if path != "" {
		r.SetQueryParam("path", path)
	}
	return c.getJSON(r, mountsFiles)
}
