// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/reag/internal/llm"
	"github.com/pdiddy/reag/pkg/types"
)

// systemPromptTmpl is the system message sent with every document. It asks
// for a JSON verdict but the extractor tolerates the markdown form too.
var systemPromptTmpl = template.Must(template.New("reag").Parse(`You are a careful research assistant. You are given exactly one source document and a question from the user.

Read the whole document and decide whether it contains information that helps answer the question.

- If it does, answer the question using only what the document says. Quote or closely paraphrase the relevant passages and keep every detail needed to answer.
- If it does not, mark the document as irrelevant and leave the answer empty. Do not answer from general knowledge.

You may think before answering. If you do, put your thinking inside <think></think> tags before the answer.

Respond with a single JSON object and nothing else:
{"content": "<answer drawn from the document, or empty>", "isIrrelevant": <true or false>}

If you cannot produce JSON, use this exact form instead:
**Answer:** <answer on one line>
isIrrelevant: <true or false>

# Available source

Document Name: {{.Name}}
Document Content: {{.Content}}`))

// buildPrompt renders the two-message prompt for one document.
func buildPrompt(doc types.Document, query string) ([]llm.Message, error) {
	var buf bytes.Buffer
	if err := systemPromptTmpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: buf.String()},
		{Role: llm.RoleUser, Content: query},
	}, nil
}
