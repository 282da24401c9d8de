// Package symbolsources carries the presentation catalog for externally
// integrated symbol-file repositories: display labels and the searchable
// form fields per repository kind. Pure data, no protocol.
package symbolsources

import "github.com/goliatone/go-monitor/pkg/keypath"

// SourceType identifies one supported repository backend.
type SourceType string

const (
	SourceHTTP SourceType = "http"
	SourceGCS  SourceType = "gcs"
	SourceS3   SourceType = "s3"
)

// SourceTypeInfo is the UI-facing description of a repository kind.
type SourceTypeInfo struct {
	Type       SourceType
	Label      string
	SearchKeys []string
}

var sourceTypes = []SourceTypeInfo{
	{
		Type:       SourceHTTP,
		Label:      "SymbolServer (HTTP)",
		SearchKeys: []string{"url", "username"},
	},
	{
		Type:       SourceGCS,
		Label:      "Google Cloud Storage",
		SearchKeys: []string{"bucket", "client_email"},
	},
	{
		Type:       SourceS3,
		Label:      "Amazon S3",
		SearchKeys: []string{"bucket", "region", "access_key"},
	},
}

// Types returns every supported repository kind in display order.
func Types() []SourceTypeInfo {
	return append([]SourceTypeInfo(nil), sourceTypes...)
}

// Label returns the display label for a repository kind, or the raw type
// string when the kind is not in the catalog.
func Label(t SourceType) string {
	for _, info := range sourceTypes {
		if info.Type == t {
			return info.Label
		}
	}
	return string(t)
}

// SearchKeys returns the searchable form field names for a repository kind.
func SearchKeys(t SourceType) []string {
	for _, info := range sourceTypes {
		if info.Type == t {
			return append([]string(nil), info.SearchKeys...)
		}
	}
	return nil
}

// PrepareSubmission converts a flat form state ("settings.bucket" keys) into
// the nested payload shape the repository endpoint expects.
func PrepareSubmission(fields map[string]any) map[string]any {
	return keypath.Expand(fields)
}
