package types

// DataType is the data type of a column's values.
type DataType string

const (
	DataTypeBool      DataType = "BOOL"
	DataTypeInt32     DataType = "INT32"
	DataTypeInt64     DataType = "INT64"
	DataTypeFloat32   DataType = "FLOAT32"
	DataTypeFloat64   DataType = "FLOAT64"
	DataTypeString    DataType = "STRING"
	DataTypeTimestamp DataType = "TIMESTAMP"
)

// ColumnType is the role a column plays within its table.
type ColumnType string

const (
	// ColumnTypeNormal values are required on every appended row.
	ColumnTypeNormal ColumnType = "NORMAL"

	// ColumnTypeIndex marks the table's index column. Each table has
	// exactly one, and its values must be unique and ascending.
	ColumnTypeIndex ColumnType = "INDEX"

	// ColumnTypeNullable values may be omitted when appending rows.
	ColumnTypeNullable ColumnType = "NULLABLE"
)

// Column defines one column of a table's schema.
type Column struct {
	Name       string            `json:"name"`
	DataType   DataType          `json:"dataType"`
	ColumnType ColumnType        `json:"columnType,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}
