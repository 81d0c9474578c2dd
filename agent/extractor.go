// Package agent extracts transactions from unstructured fund-report text
// with a Gemini model.
//
// It is the fallback path: tables the deterministic classifier cannot place
// are handed to the model, and everything the model returns still goes
// through the same parsing and validation as a regular table row. The model
// suggests, the validator decides.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/fundsight/fundsight"
)

const extractionPrompt = `You extract financial transactions from private equity fund report text.
Respond with a JSON array only, no prose. Each element:
{"kind": "capital-call" | "distribution" | "adjustment",
 "date": "YYYY-MM-DD",
 "amount": number (signed for adjustments, positive otherwise),
 "type": "optional label",
 "recallable": optional bool (distributions only),
 "description": "optional free text"}
If the text contains no transactions, respond with [].

Text:
`

// Extractor holds a chat session with the extraction model.
type Extractor struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewExtractor creates an Extractor for the given model, e.g. "gemini-2.5-flash".
func NewExtractor(model string) *Extractor {
	return &Extractor{ModelName: model}
}

// Start creates the chat session.
func (e *Extractor) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Extract sends the text to the model and decodes its response into
// validated transactions. Items the model got wrong come back as diagnostics,
// like any other messy row.
func (e *Extractor) Extract(ctx context.Context, text, currency string) ([]fundsight.Transaction, []fundsight.Diagnostic, error) {
	if e.chat == nil {
		return nil, nil, fmt.Errorf("extractor not started")
	}
	resp, err := e.chat.Send(ctx, &genai.Part{Text: extractionPrompt + text})
	if err != nil {
		return nil, nil, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("no response from model %s", e.ModelName)
	}
	return DecodeResponse(resp.Candidates[0].Content.Parts[0].Text, currency)
}
