package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches spot prices from the configured price API.
//
// The API is expected to answer
//
//	GET {base}/v1/spot?symbols=ETH,BTC&currency=usd
//
// with a JSON object mapping symbol to a decimal price string:
//
//	{"rates":{"ETH":"1845.12","BTC":"29344.50"}}
type Client struct {
	baseURL  string
	currency string
	http     *http.Client
}

func NewClient(baseURL, currency string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type spotResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (c *Client) Spot(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("currency", c.currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/spot?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while fetching rates: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API responded with status %d", res.StatusCode)
	}

	var body spotResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error while decoding rate response: %w", err)
	}

	return body.Rates, nil
}
