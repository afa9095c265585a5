package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for extraction.
const DefaultModel = "gemini-2.0-flash"

const extractionPrompt = `You are tasked with extracting financial transaction information from input data.
The data is a pasted transaction log or export of unknown shape.

For each transaction, extract:
- "date": the transaction date, exactly as written in the input
- "description": the original narrative, verbatim
- "amount": the amount as a STRING, preserving every decimal digit and the
  sign (debit = negative, credit = positive). For example -4.99 must stay
  "-4.99", never "-499" or a rounded value.
- "business": the business name derived from the description, or "Unknown",
  "Transfer", or "Deposit" when none can be determined

Skip entries where required information is missing rather than inventing it.

Output STRICT JSON only: a JSON array of objects with exactly those four
string fields. No comments, no Markdown, no code fences. The output must
begin with "[" and end with "]".`

// GeminiExtractor calls Gemini to produce transaction candidates. The
// client handle is constructed once and injected; it is not an ambient
// singleton.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates an extractor using ambient Google credentials
// (GEMINI_API_KEY or application default credentials).
func NewGeminiExtractor(ctx context.Context) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiExtractor{client: client, model: DefaultModel}, nil
}

// Extract sends the raw text to the model and decodes its JSON reply.
func (g *GeminiExtractor) Extract(ctx context.Context, raw string) ([]Candidate, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{Text: "Input data:\n\n" + raw},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	return decodeCandidates(cleanModelJSON(text))
}

// decodeCandidates parses the model's JSON array, keeping amounts as
// strings so no precision is lost before validation.
func decodeCandidates(s string) ([]Candidate, error) {
	var rows []struct {
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      json.RawMessage `json:"amount"`
		Business    string          `json:"business"`
	}
	if err := json.Unmarshal([]byte(s), &rows); err != nil {
		return nil, fmt.Errorf("decoding model output: %w", err)
	}

	cands := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		cands = append(cands, Candidate{
			Date:        r.Date,
			Description: r.Description,
			Amount:      strings.Trim(string(r.Amount), `"`),
			Business:    r.Business,
		})
	}
	return cands, nil
}

// cleanModelJSON strips Markdown fences and surrounding prose if the model
// ignored the formatting instructions.
func cleanModelJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	if start := strings.Index(s, "["); start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndex(s, "]"); end >= 0 && end < len(s)-1 {
		s = s[:end+1]
	}
	return strings.TrimSpace(s)
}
