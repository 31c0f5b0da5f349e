package types

import "github.com/rbell517/systemlink-go/pkg/core"

// Operation is the availability of one API operation for the caller.
type Operation struct {
	Available bool `json:"available"`
	Version   int  `json:"version"`
}

// Operations lists the API operations the caller may perform.
type Operations struct {
	CreateTables   Operation `json:"createTables"`
	DeleteTables   Operation `json:"deleteTables"`
	ModifyMetadata Operation `json:"modifyMetadata"`
	ListTables     Operation `json:"listTables"`
	ReadData       Operation `json:"readData"`
	WriteData      Operation `json:"writeData"`
}

// APIInfo describes the available API operations.
type APIInfo struct {
	Operations Operations `json:"operations"`
}

// TableError pairs a table ID with the error that failed it within a
// bulk operation.
type TableError struct {
	ID    string
	Error core.APIError
}

// DeleteTablesPartialSuccess reports a bulk delete where some tables
// failed. Every submitted ID appears in exactly one of Succeeded or
// Failed.
type DeleteTablesPartialSuccess struct {
	Succeeded []string
	Failed    []TableError
}

// ModifyTablesPartialSuccess reports a bulk modify where some tables
// failed. Every submitted ID appears in exactly one of Succeeded or
// Failed.
type ModifyTablesPartialSuccess struct {
	Succeeded []string
	Failed    []TableError
}
