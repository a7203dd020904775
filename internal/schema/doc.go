// Package schema turns whatever payload sits in durable storage into a valid
// current-generation model.Root, and writes roots back.
//
// Three generations of persisted state are recognized:
//
//	legacy-v0  a flat JSON array of tasks under the legacy key
//	legacy-v1  {"boards": [...]} whose boards predate day-mode (no useDays)
//	current    {"boards": [...], "backgroundUrl": "", "backgroundPreset": ""}
//
// Each is decoded into its own variant and normalized with explicit
// default-fill rules. Loading never fails and never writes; unusable data
// degrades to a single empty board.
package schema
