// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "github.com/pdiddy/reag/pkg/types"

// Record is one entry of the query_results payload.
type Record struct {
	Content      string         `json:"content" yaml:"content"`
	Reasoning    string         `json:"reasoning" yaml:"reasoning"`
	IsIrrelevant bool           `json:"is_irrelevant" yaml:"is_irrelevant"`
	Document     DocumentRecord `json:"document" yaml:"document"`
}

// DocumentRecord is the source document embedded in a Record.
type DocumentRecord struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// Aggregate converts verdicts into payload records, preserving order. The
// result is never nil.
func Aggregate(verdicts []types.Verdict) []Record {
	records := make([]Record, 0, len(verdicts))
	for _, v := range verdicts {
		records = append(records, Record{
			Content:      v.Content,
			Reasoning:    v.Reasoning,
			IsIrrelevant: v.IsIrrelevant,
			Document: DocumentRecord{
				Name:    v.Document.Name,
				Content: v.Document.Content,
			},
		})
	}
	return records
}
