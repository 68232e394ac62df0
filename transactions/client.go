package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

var (
	maxFailingRequests = 10
	failingRatio       = 0.6
)

// ExplorerClient queries an etherscan-style block-explorer API for account
// transaction lists. Requests are rate limited client-side and routed through
// a circuit breaker so a failing explorer does not get hammered.
type ExplorerClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter ratelimit.Limiter
	breaker *gobreaker.CircuitBreaker
}

func NewExplorerClient(baseURL, apiKey string, requestsPerSecond int) *ExplorerClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &ExplorerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: ratelimit.New(requestsPerSecond),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "explorer",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return int(counts.Requests) > maxFailingRequests && ratio >= failingRatio
			},
		}),
	}
}

type explorerTx struct {
	Hash        string `json:"hash"`
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	GasUsed     string `json:"gasUsed"`
	IsError     string `json:"isError"`
}

type explorerResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Result  []explorerTx `json:"result"`
}

type proxyResponse struct {
	Result string `json:"result"`
}

// LatestBlock returns the current chain head known to the explorer.
func (c *ExplorerClient) LatestBlock(ctx context.Context) (uint64, error) {
	c.limiter.Take()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		q := url.Values{}
		q.Set("module", "proxy")
		q.Set("action", "eth_blockNumber")
		if c.apiKey != "" {
			q.Set("apikey", c.apiKey)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api?%s", c.baseURL, q.Encode()), nil)
		if err != nil {
			return nil, err
		}

		res, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error while fetching block number: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("explorer responded with status %d", res.StatusCode)
		}

		var body proxyResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("error while decoding block number response: %w", err)
		}

		head, err := strconv.ParseUint(strings.TrimPrefix(body.Result, "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid block number %q: %w", body.Result, err)
		}

		return head, nil
	})
	if err != nil {
		return 0, err
	}

	return result.(uint64), nil
}

// AccountTransactions lists transactions for an address in the inclusive
// block range [startBlock, endBlock], oldest first.
func (c *ExplorerClient) AccountTransactions(ctx context.Context, address string, startBlock, endBlock uint64) ([]Transaction, error) {
	c.limiter.Take()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, address, startBlock, endBlock)
	})
	if err != nil {
		return nil, err
	}

	return result.([]Transaction), nil
}

func (c *ExplorerClient) fetch(ctx context.Context, address string, startBlock, endBlock uint64) ([]Transaction, error) {
	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "txlist")
	q.Set("address", address)
	q.Set("startblock", strconv.FormatUint(startBlock, 10))
	q.Set("endblock", strconv.FormatUint(endBlock, 10))
	q.Set("sort", "asc")
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while fetching transactions: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer responded with status %d", res.StatusCode)
	}

	var body explorerResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error while decoding explorer response: %w", err)
	}

	// Etherscan signals "no transactions found" with status 0, which is not
	// an error for an incremental fetch.
	if body.Status != "1" && len(body.Result) > 0 {
		return nil, fmt.Errorf("explorer error: %s", body.Message)
	}

	tt := make([]Transaction, 0, len(body.Result))
	for _, raw := range body.Result {
		t, err := normalize(address, raw)
		if err != nil {
			return nil, err
		}
		tt = append(tt, t)
	}

	return tt, nil
}

func normalize(address string, raw explorerTx) (Transaction, error) {
	block, err := strconv.ParseUint(raw.BlockNumber, 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid block number %q: %w", raw.BlockNumber, err)
	}

	unix, err := strconv.ParseInt(raw.TimeStamp, 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid timestamp %q: %w", raw.TimeStamp, err)
	}

	gasUsed, err := strconv.ParseUint(raw.GasUsed, 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid gas used %q: %w", raw.GasUsed, err)
	}

	value, err := decimal.NewFromString(raw.Value)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid value %q: %w", raw.Value, err)
	}

	return Transaction{
		Hash:           raw.Hash,
		AccountAddress: address,
		BlockNumber:    block,
		Sender:         raw.From,
		Recipient:      raw.To,
		Value:          value,
		GasUsed:        gasUsed,
		Failed:         raw.IsError == "1",
		Timestamp:      time.Unix(unix, 0).UTC(),
	}, nil
}
