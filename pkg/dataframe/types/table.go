package types

import "time"

// OrderBy is a sortable field for table listings.
type OrderBy string

const (
	OrderByCreatedAt          OrderBy = "CREATED_AT"
	OrderByMetadataModifiedAt OrderBy = "METADATA_MODIFIED_AT"
	OrderByName               OrderBy = "NAME"
	OrderByNumberOfRows       OrderBy = "NUMBER_OF_ROWS"
	OrderByRowsModifiedAt     OrderBy = "ROWS_MODIFIED_AT"
)

// TableMetadata describes one table and its schema.
type TableMetadata struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Columns            []Column          `json:"columns"`
	Workspace          string            `json:"workspace"`
	CreatedAt          time.Time         `json:"createdAt"`
	MetadataModifiedAt time.Time         `json:"metadataModifiedAt"`
	RowsModifiedAt     time.Time         `json:"rowsModifiedAt"`
	RowCount           int64             `json:"rowCount"`
	SupportsAppend     bool              `json:"supportsAppend"`
	Properties         map[string]string `json:"properties,omitempty"`
}

// CreateTableRequest is the schema and metadata of a table to create.
type CreateTableRequest struct {
	Columns    []Column          `json:"columns"`
	Name       string            `json:"name,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Workspace  string            `json:"workspace,omitempty"`
}

// ListTablesRequest is the filter and paging arguments of one
// list-tables page fetch. A zero value lists everything with service
// defaults.
type ListTablesRequest struct {
	// Take limits the page to the given number of tables. Nil applies
	// the service default of 1000.
	Take *int32

	// ID restricts the listing to the given table IDs.
	ID []string

	OrderBy           OrderBy
	OrderByDescending bool

	// ContinuationToken is the token of the previous page, passed back
	// verbatim. Empty requests the first page.
	ContinuationToken string

	// Workspace restricts the listing to the given workspace IDs.
	Workspace []string
}

// QueryTablesRequest queries table metadata with a Dynamic LINQ filter.
type QueryTablesRequest struct {
	Filter            string        `json:"filter"`
	Substitutions     []interface{} `json:"substitutions,omitempty"`
	ReferenceTime     *time.Time    `json:"referenceTime,omitempty"`
	Take              *int32        `json:"take,omitempty"`
	OrderBy           OrderBy       `json:"orderBy,omitempty"`
	OrderByDescending bool          `json:"orderByDescending,omitempty"`
	ContinuationToken string        `json:"continuationToken,omitempty"`
}

// PagedTables is one page of a table listing. A nil ContinuationToken
// means the listing is exhausted.
type PagedTables struct {
	Tables            []TableMetadata `json:"tables"`
	ContinuationToken *string         `json:"continuationToken,omitempty"`
}

// ColumnMetadataModification updates the properties of one column. A
// nil property value deletes that property.
type ColumnMetadataModification struct {
	Name       string             `json:"name"`
	Properties map[string]*string `json:"properties,omitempty"`
}

// ModifyTableRequest updates the metadata of a table or its columns. A
// nil property value deletes that property.
type ModifyTableRequest struct {
	MetadataRevision int                          `json:"metadataRevision,omitempty"`
	Name             *string                      `json:"name,omitempty"`
	Properties       map[string]*string           `json:"properties,omitempty"`
	Columns          []ColumnMetadataModification `json:"columns,omitempty"`
}

// TableMetadataModification is one table's update within a bulk modify.
type TableMetadataModification struct {
	ID               string                       `json:"id"`
	MetadataRevision int                          `json:"metadataRevision,omitempty"`
	Name             *string                      `json:"name,omitempty"`
	Properties       map[string]*string           `json:"properties,omitempty"`
	Columns          []ColumnMetadataModification `json:"columns,omitempty"`
}

// ModifyTablesRequest updates the metadata of several tables at once.
// When Replace is set, each table's properties are replaced instead of
// merged.
type ModifyTablesRequest struct {
	Tables  []TableMetadataModification `json:"tables"`
	Replace bool                        `json:"replace,omitempty"`
}
