// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reag/internal/query"
	"github.com/pdiddy/reag/pkg/types"
)

func TestReagTool_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{name: "no files", p: Params{Query: "capital?"}},
		{name: "no query", p: Params{Files: []types.File{file("a.txt", "paris")}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msgs := collect(newReagTool().Invoke(context.Background(), tc.p))
			require.Len(t, msgs, 1)
			assert.Equal(t, KindText, msgs[0].Kind)
			assert.Contains(t, msgs[0].Text, ErrEmptyInput.Error())
		})
	}
}

func TestReagTool_RelevantResults(t *testing.T) {
	p := Params{
		Query: "What is the capital of France?",
		Files: []types.File{
			file("france.txt", "paris is the capital"),
			file("spain.txt", "madrid is the capital"),
		},
	}

	msgs := collect(newReagTool().Invoke(context.Background(), p))
	require.Len(t, msgs, 2)

	assert.Equal(t, KindVariable, msgs[0].Kind)
	assert.Equal(t, ResultsVariable, msgs[0].Variable)
	records, ok := msgs[0].Value.([]query.Record)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, query.Record{
		Content:   "Paris",
		Reasoning: "mentions the city",
		Document:  query.DocumentRecord{Name: "france.txt", Content: "PARIS IS THE CAPITAL"},
	}, records[0])

	assert.Equal(t, KindJSON, msgs[1].Kind)
	summary, ok := msgs[1].Object.(Summary)
	require.True(t, ok)
	_, err := uuid.Parse(summary.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 2, summary.Converted)
	assert.Equal(t, query.Stats{Documents: 2, Dispatched: 2, Relevant: 1, Irrelevant: 1}, summary.Query)
}

func TestReagTool_ConversionFailuresReported(t *testing.T) {
	p := Params{
		Query: "capital?",
		Files: []types.File{
			file("broken.pdf", "fail"),
			file("france.txt", "paris"),
			file("blank.txt", "empty"),
		},
	}

	msgs := collect(newReagTool().Invoke(context.Background(), p))
	require.Len(t, msgs, 4)

	assert.Equal(t, KindText, msgs[0].Kind)
	assert.Contains(t, msgs[0].Text, "broken.pdf")
	assert.Contains(t, msgs[0].Text, "unsupported format")
	assert.Contains(t, msgs[1].Text, "blank.txt")

	records := msgs[2].Value.([]query.Record)
	require.Len(t, records, 1)
	assert.Equal(t, "france.txt", records[0].Document.Name)

	summary := msgs[3].Object.(Summary)
	assert.Equal(t, 1, summary.Converted)
	assert.Equal(t, 2, summary.ConversionFailures)
}

func TestReagTool_NothingRelevant(t *testing.T) {
	p := Params{Query: "capital?", Files: []types.File{file("spain.txt", "madrid")}}

	msgs := collect(newReagTool().Invoke(context.Background(), p))
	require.Len(t, msgs, 3)

	records := msgs[0].Value.([]query.Record)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, TextMessage(NoResultsText), msgs[1])
	assert.Equal(t, KindJSON, msgs[2].Kind)
}

func TestReagTool_AllConversionsFail(t *testing.T) {
	p := Params{Query: "capital?", Files: []types.File{file("a.bin", "fail")}}

	msgs := collect(newReagTool().Invoke(context.Background(), p))
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[0].Text, "a.bin")
	assert.Empty(t, msgs[1].Value)
	assert.Equal(t, NoResultsText, msgs[2].Text)
	assert.Equal(t, 0, msgs[3].Object.(Summary).Query.Dispatched)
}

func TestReagTool_StopsWhenConsumerStops(t *testing.T) {
	p := Params{
		Query: "capital?",
		Files: []types.File{file("a", "fail"), file("b", "fail"), file("c", "paris")},
	}

	var seen int
	for range newReagTool().Invoke(context.Background(), p) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}
