package orbitsdk

import (
	"context"
	"net/http"
)

const (
	mountsSync            = "/mounts/{mount_id}/sync"
	mountsSyncTransaction = "/mounts/{mount_id}/sync/{transaction_id}"
)

// RequestSync asks the service to run the sync described by payload. The
// service starts one transaction per source, keyed by its transaction id.
//
// The response body is never decoded. The only error is a *SerializationError,
// returned before anything is sent.
func (c *Client) RequestSync(ctx context.Context, groupID, mountID string, payload *SyncPayload) (int, error) {
	if payload == nil {
		return 0, &SerializationError{Path: "$", Err: ErrNilPayload}
	}

	body, err := MarshalPayload(payload)
	if err != nil {
		return 0, err
	}
	c.log.Debug("orbit: sync request", "mount", mountID, "payload", string(body))

	r := c.groupRequest(ctx, groupID).
		SetPathParam("mount_id", mountID).
		SetBodyJsonBytes(body)

	resp, status := c.send(r, http.MethodPost, mountsSync)
	if resp != nil && len(resp.Bytes()) > 0 {
		c.log.Debug("orbit: sync response", "status", status, "body", resp.String())
	}

	return status, nil
}

// GetSyncStatus returns every known transaction of the mount, or a single one
// when transactionID is set.
func (c *Client) GetSyncStatus(ctx context.Context, groupID, mountID, transactionID string) (int, any) {
	r := c.groupRequest(ctx, groupID).SetPathParam("mount_id", mountID)
	if transactionID == "" {
		return c.getJSON(r, mountsSync)
	}

	r.SetPathParam("transaction_id", transactionID)
	return c.getJSON(r, mountsSyncTransaction)
}
