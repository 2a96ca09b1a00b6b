package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"newsdesk/internal/core"
	"newsdesk/internal/fetch"
)

const stocksBaseURL = "https://finnhub.io/api/v1/quote"

// Stocks adapts the financial-quotes provider with a symbol-batch query. Each
// symbol becomes one candidate describing the day's movement.
type Stocks struct {
	client  *fetch.Client
	opts    fetch.Options
	apiKey  string
	symbols []string
	base    string
}

// NewStocks creates the quotes adapter for the configured symbols.
func NewStocks(client *fetch.Client, opts fetch.Options, apiKey string, symbols []string) *Stocks {
	return &Stocks{client: client, opts: opts, apiKey: apiKey, symbols: symbols, base: stocksBaseURL}
}

func (a *Stocks) Name() string        { return "stocks" }
func (a *Stocks) ContentType() string { return TypeStocks }

type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	PrevClose     float64 `json:"pc"`
}

// Fetch queries a quote per configured symbol. A symbol that fails after
// retries is skipped; the batch only errors when every symbol failed.
func (a *Stocks) Fetch(ctx context.Context) (Payload, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	var candidates []core.Candidate
	var lastErr error
	for _, symbol := range a.symbols {
		query := url.Values{}
		query.Set("symbol", symbol)
		query.Set("token", a.apiKey)

		var quote quoteResponse
		if err := a.client.FetchJSON(ctx, a.base+"?"+query.Encode(), a.opts, &quote); err != nil {
			lastErr = err
			continue
		}
		if quote.Current == 0 && quote.PrevClose == 0 {
			continue
		}

		direction := "up"
		if quote.Change < 0 {
			direction = "down"
		}
		candidates = append(candidates, core.Candidate{
			ID:    "quote:" + strings.ToLower(symbol),
			Title: fmt.Sprintf("%s %s %.2f%% on the day", symbol, direction, abs(quote.PercentChange)),
			Description: fmt.Sprintf("%s is trading at %.2f, %+.2f (%.2f%%) from the previous close of %.2f.",
				symbol, quote.Current, quote.Change, quote.PercentChange, quote.PrevClose),
			PublishedAt: now,
			SourceName:  "Market Data",
		})
	}

	if len(candidates) == 0 && lastErr != nil {
		return Payload{}, lastErr
	}
	return Payload{Candidates: candidates}, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
