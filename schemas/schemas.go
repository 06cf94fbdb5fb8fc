// Package schemas embeds the JSON Schemas for documents accepted by the API and CLI.
package schemas

import _ "embed"

// Resume is the JSON Schema for a resume document.
//
//go:embed resume.schema.json
var Resume []byte
