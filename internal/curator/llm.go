package curator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"newsdesk/internal/core"
)

const curationSystemPrompt = `You are the senior editor of a short daily news briefing.
From the numbered candidate list, select EXACTLY %d stories and rank them.

Selection rules:
- At least 1 political/government story, if any is available.
- At least 1 economic/business story, if any is available.
- At least 1 international story, if any is available.
- No more than 3 stories from the same topic category.
- Prefer higher importance scores when stories are otherwise comparable.

For each selection write an enhanced summary of 3-4 complete sentences covering
who, what, where, when, why, and how.

Respond with JSON only, no prose and no markdown fences, in this shape:
{"selections":[{"index":0,"reason":"...","enhanced_summary":"..."}]}
The index refers to the candidate's number in the list below.`

// LLMRanker asks Gemini to pick and summarize the final stories.
type LLMRanker struct {
	gClient     *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
}

// NewLLMRanker creates the Gemini-backed ranker.
func NewLLMRanker(ctx context.Context, apiKey, modelName string, temperature float32, maxTokens int32) (*LLMRanker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &LLMRanker{
		gClient:     gClient,
		modelName:   modelName,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (r *LLMRanker) Name() string { return r.modelName }

type llmSelection struct {
	Index           int    `json:"index"`
	Reason          string `json:"reason"`
	EnhancedSummary string `json:"enhanced_summary"`
}

type llmResponse struct {
	Selections []llmSelection `json:"selections"`
}

// Rank sends the shortlist to the model and maps its selections back to the
// original candidates. Malformed output, out-of-range indexes, duplicates, or
// a wrong selection count are all errors; the caller falls back.
func (r *LLMRanker) Rank(ctx context.Context, candidates []core.Candidate, targetCount int) ([]core.CuratedItem, error) {
	if targetCount > len(candidates) {
		targetCount = len(candidates)
	}

	prompt := r.buildPrompt(candidates, targetCount)
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(r.temperature),
		ResponseMIMEType: "application/json",
	}
	if r.maxTokens > 0 {
		config.MaxOutputTokens = r.maxTokens
	}

	resp, err := r.gClient.Models.GenerateContent(ctx, r.modelName, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate curation: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	return mapSelections(candidates, targetCount, text)
}

// buildPrompt renders the system prompt and the numbered candidate list.
func (r *LLMRanker) buildPrompt(candidates []core.Candidate, targetCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, curationSystemPrompt, targetCount)
	b.WriteString("\n\nCandidates:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. [%s/%s, score %d] %s — %s (source: %s, published: %s)\n",
			i, c.TopicCategory, c.GeographicScope, c.ImportanceScore,
			c.Title, c.Description, c.SourceName, c.PublishedAt)
	}
	return b.String()
}

// mapSelections parses the model output and validates it against the
// shortlist. The validation is deliberately strict: a partially usable
// response still triggers the deterministic fallback, which is simpler to
// reason about than patching holes in model output.
func mapSelections(candidates []core.Candidate, targetCount int, text string) ([]core.CuratedItem, error) {
	var parsed llmResponse
	if err := json.Unmarshal([]byte(cleanJSONResponse(text)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed curation response: %w", err)
	}

	if len(parsed.Selections) != targetCount {
		return nil, fmt.Errorf("expected %d selections, got %d", targetCount, len(parsed.Selections))
	}

	seen := make(map[int]bool, targetCount)
	items := make([]core.CuratedItem, 0, targetCount)
	for rank, sel := range parsed.Selections {
		if sel.Index < 0 || sel.Index >= len(candidates) {
			return nil, fmt.Errorf("selection index %d out of range", sel.Index)
		}
		if seen[sel.Index] {
			return nil, fmt.Errorf("duplicate selection index %d", sel.Index)
		}
		seen[sel.Index] = true

		candidate := candidates[sel.Index]
		summary := strings.TrimSpace(sel.EnhancedSummary)
		if summary == "" {
			summary = candidate.Description
			if summary == "" {
				summary = candidate.Title
			}
		}
		items = append(items, core.CuratedItem{
			Candidate:       candidate,
			AIRank:          rank + 1,
			SelectionReason: strings.TrimSpace(sel.Reason),
			EnhancedSummary: summary,
		})
	}
	return items, nil
}

// cleanJSONResponse strips markdown code fences that some models wrap around
// JSON output despite the JSON-only contract.
func cleanJSONResponse(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
