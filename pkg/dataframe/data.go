package dataframe

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rbell517/systemlink-go/pkg/dataframe/types"
)

// GetTableData reads one page of raw data from a table. Follow the
// returned continuation token with the same arguments to fetch the next
// page; a nil token means the data is exhausted.
func (c *Client) GetTableData(ctx context.Context, id string, req types.GetTableDataRequest) (*types.PagedTableRows, error) {
	if id == "" {
		return nil, errors.New("table id is required")
	}

	query := url.Values{}
	for _, column := range req.Columns {
		query.Add("columns", column)
	}
	for _, column := range req.OrderBy {
		query.Add("orderBy", column)
	}
	if req.OrderByDescending {
		query.Set("orderByDescending", "true")
	}
	if req.Take != nil {
		query.Set("take", strconv.FormatInt(int64(*req.Take), 10))
	}
	if req.ContinuationToken != "" {
		query.Set("continuationToken", req.ContinuationToken)
	}

	page := types.PagedTableRows{}
	if err := c.core.Get(ctx, "tables/"+url.PathEscape(id)+"/data", query, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// AppendTableData appends one or more rows of data to a table.
func (c *Client) AppendTableData(ctx context.Context, id string, req types.AppendTableDataRequest) error {
	if id == "" {
		return errors.New("table id is required")
	}

	return c.core.Post(ctx, "tables/"+url.PathEscape(id)+"/data", req, nil)
}

// QueryTableData reads one page of rows matching a filter. Paging works
// as in GetTableData.
func (c *Client) QueryTableData(ctx context.Context, id string, req types.QueryTableDataRequest) (*types.PagedTableRows, error) {
	if id == "" {
		return nil, errors.New("table id is required")
	}

	page := types.PagedTableRows{}
	if err := c.core.Post(ctx, "tables/"+url.PathEscape(id)+"/query-data", req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// QueryDecimatedData reads a decimated view of rows matching a filter.
func (c *Client) QueryDecimatedData(ctx context.Context, id string, req types.QueryDecimatedDataRequest) (*types.TableRows, error) {
	if id == "" {
		return nil, errors.New("table id is required")
	}

	rows := types.TableRows{}
	if err := c.core.Post(ctx, "tables/"+url.PathEscape(id)+"/query-decimated-data", req, &rows); err != nil {
		return nil, err
	}

	return &rows, nil
}
