package orbitsdk

import (
	"context"
	"net/http"
)

const (
	assetsLogo = "/logo"
)

// GetLogo fetches the service logo
func (c *Client) GetLogo(ctx context.Context) (int, any) {
	return c.getJSON(c.request(ctx), assetsLogo)
}

// IsRunning reports whether the service answers on its logo route
func (c *Client) IsRunning(ctx context.Context) bool {
	status, _ := c.GetLogo(ctx)
	return status == http.StatusOK
}
