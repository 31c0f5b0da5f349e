package types

// DataFrame is a set of rows in column order. Values are their string
// representation; a nil value is null.
type DataFrame struct {
	Columns []string    `json:"columns,omitempty"`
	Data    [][]*string `json:"data"`
}

// AppendTableDataRequest is one batch of rows to append. Setting
// EndOfData marks the table as complete so no further rows may be
// appended.
type AppendTableDataRequest struct {
	Frame     DataFrame `json:"frame"`
	EndOfData *bool     `json:"endOfData,omitempty"`
}

// GetTableDataRequest is the column selection and paging arguments of
// one read of raw table data.
type GetTableDataRequest struct {
	// Columns selects and orders the returned columns. Nil returns all.
	Columns []string

	// OrderBy sorts rows by the given columns, later columns breaking
	// ties in earlier ones.
	OrderBy           []string
	OrderByDescending bool

	// Take limits the page to the given number of rows. Nil applies
	// the service default of 500.
	Take *int32

	// ContinuationToken is the token of the previous page, passed back
	// verbatim.
	ContinuationToken string
}

// FilterOperation compares a column to a filter value.
type FilterOperation string

const (
	FilterOperationEquals            FilterOperation = "EQUALS"
	FilterOperationNotEquals         FilterOperation = "NOT_EQUALS"
	FilterOperationLessThan          FilterOperation = "LESS_THAN"
	FilterOperationLessThanEquals    FilterOperation = "LESS_THAN_EQUALS"
	FilterOperationGreaterThan       FilterOperation = "GREATER_THAN"
	FilterOperationGreaterThanEquals FilterOperation = "GREATER_THAN_EQUALS"
	FilterOperationContains          FilterOperation = "CONTAINS"
	FilterOperationNotContains       FilterOperation = "NOT_CONTAINS"
)

// ColumnFilter keeps rows whose column value passes the comparison. A
// nil value matches null.
type ColumnFilter struct {
	Column    string          `json:"column"`
	Operation FilterOperation `json:"operation"`
	Value     *string         `json:"value"`
}

// ColumnOrderBy sorts rows by one column.
type ColumnOrderBy struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending,omitempty"`
}

// QueryTableDataRequest reads rows matching a filter.
type QueryTableDataRequest struct {
	Columns           []string        `json:"columns,omitempty"`
	Filters           []ColumnFilter  `json:"filters,omitempty"`
	OrderBy           []ColumnOrderBy `json:"orderBy,omitempty"`
	Take              *int32          `json:"take,omitempty"`
	ContinuationToken string          `json:"continuationToken,omitempty"`
}

// DecimationMethod is the algorithm used to decimate data.
type DecimationMethod string

const (
	// DecimationMethodLossy picks evenly spaced rows.
	DecimationMethodLossy DecimationMethod = "LOSSY"

	// DecimationMethodMaxMin keeps the local extremes of each interval.
	DecimationMethodMaxMin DecimationMethod = "MAX_MIN"

	// DecimationMethodEntryExit keeps the first and last rows of each
	// interval in addition to the extremes.
	DecimationMethodEntryExit DecimationMethod = "ENTRY_EXIT"
)

// DecimationOptions configure how rows are reduced before returning.
type DecimationOptions struct {
	XColumn   string           `json:"xColumn,omitempty"`
	YColumns  []string         `json:"yColumns,omitempty"`
	Intervals int64            `json:"intervals,omitempty"`
	Method    DecimationMethod `json:"method,omitempty"`
}

// QueryDecimatedDataRequest reads a decimated view of rows matching a
// filter.
type QueryDecimatedDataRequest struct {
	Columns    []string           `json:"columns,omitempty"`
	Filters    []ColumnFilter     `json:"filters,omitempty"`
	Decimation *DecimationOptions `json:"decimation,omitempty"`
}

// PagedTableRows is one page of row data. A nil ContinuationToken means
// the data is exhausted.
type PagedTableRows struct {
	Frame             DataFrame `json:"frame"`
	TotalRowCount     int64     `json:"totalRowCount"`
	ContinuationToken *string   `json:"continuationToken,omitempty"`
}

// TableRows is a non-paged set of row data.
type TableRows struct {
	Frame         DataFrame `json:"frame"`
	TotalRowCount int64     `json:"totalRowCount"`
}

// ExportFormat is the file format of exported data.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "CSV"
)

// ExportTableDataRequest exports rows matching a filter in the given
// format.
type ExportTableDataRequest struct {
	Columns        []string        `json:"columns,omitempty"`
	Filters        []ColumnFilter  `json:"filters,omitempty"`
	OrderBy        []ColumnOrderBy `json:"orderBy,omitempty"`
	ResponseFormat ExportFormat    `json:"responseFormat"`
}
