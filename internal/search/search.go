// Package search implements the free-text node filter used by the search box.
package search

import (
	"strings"

	"github.com/alexanderramin/docketflow/internal/domain"
)

// Field names reported by MatchedFields.
const (
	FieldName     = "name"
	FieldRule     = "rule"
	FieldStage    = "stage"
	FieldOwner    = "owner"
	FieldDocument = "documents"
)

// Search returns the nodes whose name, rule, stage, owner or any document
// contains query as a case-insensitive substring. The query is trimmed; an
// empty query matches nothing. Input order is preserved.
func Search(nodes []domain.Node, query string) []domain.Node {
	q := normalize(query)
	if q == "" {
		return []domain.Node{}
	}
	out := []domain.Node{}
	for _, n := range nodes {
		if len(matched(n, q)) > 0 {
			out = append(out, n)
		}
	}
	return out
}

// MatchedFields lists the fields of n that contain query, in the fixed
// order name, rule, stage, owner, documents.
func MatchedFields(n domain.Node, query string) []string {
	q := normalize(query)
	if q == "" {
		return nil
	}
	return matched(n, q)
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func contains(value, q string) bool {
	return value != "" && strings.Contains(strings.ToLower(value), q)
}

func matched(n domain.Node, q string) []string {
	var fields []string
	for _, f := range []struct{ name, value string }{
		{FieldName, n.Name},
		{FieldRule, n.Rule},
		{FieldStage, n.Stage},
		{FieldOwner, n.Owner},
	} {
		if contains(f.value, q) {
			fields = append(fields, f.name)
		}
	}
	for _, doc := range n.Documents {
		if contains(doc, q) {
			fields = append(fields, FieldDocument)
			break
		}
	}
	return fields
}
