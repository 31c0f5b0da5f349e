package dataframe

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rbell517/systemlink-go/pkg/core"
	"github.com/rbell517/systemlink-go/pkg/dataframe/types"
)

// ListTables fetches one page of the table listing. Follow the returned
// continuation token with the same filter arguments to fetch the next
// page; a nil token means the listing is exhausted.
func (c *Client) ListTables(ctx context.Context, req types.ListTablesRequest) (*types.PagedTables, error) {
	query := url.Values{}
	if req.Take != nil {
		query.Set("take", strconv.FormatInt(int64(*req.Take), 10))
	}
	for _, id := range req.ID {
		query.Add("id", id)
	}
	if req.OrderBy != "" {
		query.Set("orderBy", string(req.OrderBy))
	}
	if req.OrderByDescending {
		query.Set("orderByDescending", "true")
	}
	if req.ContinuationToken != "" {
		query.Set("continuationToken", req.ContinuationToken)
	}
	for _, workspace := range req.Workspace {
		query.Add("workspace", workspace)
	}

	page := types.PagedTables{}
	if err := c.core.Get(ctx, "tables", query, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// CreateTable creates a table with the given schema and metadata and
// returns the new table's ID.
func (c *Client) CreateTable(ctx context.Context, req types.CreateTableRequest) (string, error) {
	if len(req.Columns) == 0 {
		return "", errors.New("at least one column is required")
	}

	created := struct {
		ID string `json:"id"`
	}{}
	if err := c.core.Post(ctx, "tables", req, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

// QueryTables fetches one page of tables matching the query. Paging
// works as in ListTables.
func (c *Client) QueryTables(ctx context.Context, req types.QueryTablesRequest) (*types.PagedTables, error) {
	page := types.PagedTables{}
	if err := c.core.Post(ctx, "query-tables", req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetTableMetadata returns the metadata and column information of one
// table.
func (c *Client) GetTableMetadata(ctx context.Context, id string) (*types.TableMetadata, error) {
	if id == "" {
		return nil, errors.New("table id is required")
	}

	metadata := types.TableMetadata{}
	if err := c.core.Get(ctx, "tables/"+url.PathEscape(id), nil, &metadata); err != nil {
		return nil, err
	}

	return &metadata, nil
}

// ModifyTable updates properties of a table or its columns.
func (c *Client) ModifyTable(ctx context.Context, id string, req types.ModifyTableRequest) error {
	if id == "" {
		return errors.New("table id is required")
	}

	return c.core.Patch(ctx, "tables/"+url.PathEscape(id), req)
}

// DeleteTable deletes one table.
func (c *Client) DeleteTable(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("table id is required")
	}

	return c.core.Delete(ctx, "tables/"+url.PathEscape(id))
}

// DeleteTables deletes several tables. A nil result means every table
// was deleted; otherwise the result reports which deletes succeeded and
// which failed. Item-level failures are data, not an error.
func (c *Client) DeleteTables(ctx context.Context, ids []string) (*types.DeleteTablesPartialSuccess, error) {
	if len(ids) == 0 {
		return nil, errors.New("at least one table id is required")
	}

	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}

	result := bulkResponse{}
	status, err := c.core.Do(ctx, http.MethodPost, "delete-tables", nil, body, &result)
	if err != nil {
		return nil, err
	}

	succeeded, failed := aggregatePartial(ids, status, result)
	if failed == nil {
		return nil, nil
	}

	return &types.DeleteTablesPartialSuccess{
		Succeeded: succeeded,
		Failed:    failed,
	}, nil
}

// ModifyTables applies metadata updates to several tables. A nil result
// means every update was applied; otherwise the result reports which
// updates succeeded and which failed.
func (c *Client) ModifyTables(ctx context.Context, req types.ModifyTablesRequest) (*types.ModifyTablesPartialSuccess, error) {
	if len(req.Tables) == 0 {
		return nil, errors.New("at least one table update is required")
	}

	submitted := make([]string, 0, len(req.Tables))
	for _, update := range req.Tables {
		if update.ID == "" {
			return nil, errors.New("every table update requires an id")
		}
		submitted = append(submitted, update.ID)
	}

	result := bulkResponse{}
	status, err := c.core.Do(ctx, http.MethodPost, "modify-tables", nil, req, &result)
	if err != nil {
		return nil, err
	}

	succeeded, failed := aggregatePartial(submitted, status, result)
	if failed == nil {
		return nil, nil
	}

	return &types.ModifyTablesPartialSuccess{
		Succeeded: succeeded,
		Failed:    failed,
	}, nil
}

// bulkResponse is the service's report of a bulk mutation. On full
// success the service answers 204 with no body.
type bulkResponse struct {
	FailedTableIDs []string       `json:"failedTableIds"`
	Error          *core.APIError `json:"error"`
}

// aggregatePartial splits the submitted IDs into succeeded and failed
// per the service's report. Failed is nil when every ID succeeded. Each
// failed ID is paired with the inner error naming it, or the top-level
// error when none does.
func aggregatePartial(submitted []string, status int, resp bulkResponse) ([]string, []types.TableError) {
	if status == http.StatusNoContent || len(resp.FailedTableIDs) == 0 {
		return nil, nil
	}

	failedSet := map[string]bool{}
	failed := make([]types.TableError, 0, len(resp.FailedTableIDs))
	for _, id := range resp.FailedTableIDs {
		failedSet[id] = true
		failed = append(failed, types.TableError{
			ID:    id,
			Error: errorForTable(id, resp.Error),
		})
	}

	succeeded := make([]string, 0, len(submitted))
	for _, id := range submitted {
		if !failedSet[id] {
			succeeded = append(succeeded, id)
		}
	}

	return succeeded, failed
}

func errorForTable(id string, err *core.APIError) core.APIError {
	if err == nil {
		return core.APIError{}
	}
	for _, inner := range err.InnerErrors {
		if inner.ResourceID == id {
			return inner
		}
	}

	return *err
}
