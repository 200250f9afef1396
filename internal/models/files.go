package models

import "gtfsreader.onebusaway.org/gtfs"

// FileSummary describes one known file of the loaded feed
type FileSummary struct {
	File      string   `json:"file"`
	Presence  string   `json:"presence"`
	Present   bool     `json:"present"`
	Records   int      `json:"records"`
	RowErrors int      `json:"rowErrors"`
	IDColumn  string   `json:"idColumn,omitempty"`
	Required  []string `json:"requiredColumns"`
}

// NewFileSummary summarises schema against the feed and its skipped rows
func NewFileSummary(schema gtfs.FileSchema, feed *gtfs.Feed, rowErrors int) FileSummary {
	required := schema.RequiredColumns()
	if required == nil {
		required = []string{}
	}
	return FileSummary{
		File:      string(schema.Kind),
		Presence:  schema.Presence.String(),
		Present:   feed.Has(schema.Kind),
		Records:   feed.Count(schema.Kind),
		RowErrors: rowErrors,
		IDColumn:  schema.IDColumn,
		Required:  required,
	}
}

// RowErrorEntry is a skipped row as reported by the API
type RowErrorEntry struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

func NewRowErrorEntry(err *gtfs.RowError) RowErrorEntry {
	entry := RowErrorEntry{
		File:   err.File,
		Line:   err.Line,
		Column: err.Column,
	}
	if err.Err != nil {
		entry.Message = err.Err.Error()
	}
	return entry
}
