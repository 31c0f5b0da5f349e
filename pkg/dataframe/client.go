package dataframe

import (
	"context"

	"github.com/rbell517/systemlink-go/pkg/core"
	"github.com/rbell517/systemlink-go/pkg/dataframe/types"
)

const servicePath = "/nidataframe/v1"

// Client calls the SystemLink DataFrame service. Methods are safe for
// concurrent use; each call is an independent blocking round trip.
type Client struct {
	core *core.Client
}

// NewClient creates a DataFrame service client. When config is nil, the
// configuration installed on the local system is used.
func NewClient(config *core.HTTPConfiguration, opts ...core.ClientOption) (*Client, error) {
	c, err := core.NewClient(config, servicePath, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{core: c}, nil
}

// APIInfo returns information about available API operations.
func (c *Client) APIInfo(ctx context.Context) (*types.APIInfo, error) {
	info := types.APIInfo{}
	if err := c.core.Get(ctx, "", nil, &info); err != nil {
		return nil, err
	}

	return &info, nil
}
