package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"CryptoSentinel/internal/model"
)

// DefaultCoinGeckoURL is the public CoinGecko API root.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// CoinCache stores the provider's coin list between lookups.
type CoinCache interface {
	GetCoinList(ctx context.Context) ([]model.Coin, bool, error)
	SetCoinList(ctx context.Context, coins []model.Coin, ttl time.Duration) error
}

// CoinGeckoFetcher implements Fetcher using the CoinGecko public REST API.
type CoinGeckoFetcher struct {
	BaseURL  string
	APIKey   string
	Client   *http.Client
	Cache    CoinCache
	CacheTTL time.Duration

	listGroup singleflight.Group
}

// NewCoinGeckoFetcher creates a new fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, apiKey, proxyURL string, cache CoinCache, cacheTTL time.Duration) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		Cache:    cache,
		CacheTTL: cacheTTL,
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// ResolveCoinID returns the id of the first listed coin whose symbol matches
// exactly, ignoring case.
func (f *CoinGeckoFetcher) ResolveCoinID(ctx context.Context, symbol string) (string, error) {
	coins, err := f.coinList(ctx)
	if err != nil {
		return "", err
	}
	want := strings.ToLower(symbol)
	for _, c := range coins {
		if strings.ToLower(c.Symbol) == want {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no coingecko id for symbol %s", ErrUnavailable, symbol)
}

func (f *CoinGeckoFetcher) coinList(ctx context.Context) ([]model.Coin, error) {
	if f.Cache != nil {
		coins, ok, err := f.Cache.GetCoinList(ctx)
		if err != nil {
			log.Printf("[WARN] coin list cache read failed: %v", err)
		} else if ok {
			return coins, nil
		}
	}

	v, err, _ := f.listGroup.Do("coins", func() (interface{}, error) {
		// Shared by every waiting caller, so one caller's cancellation must
		// not fail the others. The client timeout still bounds the request.
		sharedCtx := context.WithoutCancel(ctx)
		var coins []model.Coin
		if err := f.getJSON(sharedCtx, "/coins/list", nil, &coins); err != nil {
			return nil, err
		}
		if f.Cache != nil {
			if err := f.Cache.SetCoinList(sharedCtx, coins, f.CacheTTL); err != nil {
				log.Printf("[WARN] coin list cache write failed: %v", err)
			}
		}
		return coins, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Coin), nil
}

// marketChart is the response structure of /coins/{id}/market_chart.
type marketChart struct {
	Prices [][]float64 `json:"prices"`
}

func (f *CoinGeckoFetcher) FetchHistory(ctx context.Context, coinID string, days int) ([]float64, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))
	q.Set("interval", "daily")

	var chart marketChart
	if err := f.getJSON(ctx, "/coins/"+url.PathEscape(coinID)+"/market_chart", q, &chart); err != nil {
		return nil, err
	}

	points := make([][]float64, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i][0] < points[j][0] })

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p[1]
	}
	return closes, nil
}

// simplePrice is one coin entry of the /simple/price response.
type simplePrice struct {
	USD       *float64 `json:"usd"`
	Change24h float64  `json:"usd_24h_change"`
}

func (f *CoinGeckoFetcher) FetchQuote(ctx context.Context, coinID string) (*model.Quote, error) {
	q := url.Values{}
	q.Set("ids", coinID)
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	var data map[string]simplePrice
	if err := f.getJSON(ctx, "/simple/price", q, &data); err != nil {
		return nil, err
	}
	p, ok := data[coinID]
	if !ok || p.USD == nil {
		return nil, fmt.Errorf("%w: no current price for %s", ErrUnavailable, coinID)
	}
	return &model.Quote{PriceUSD: *p.USD, Change24h: p.Change24h}, nil
}

func (f *CoinGeckoFetcher) getJSON(ctx context.Context, path string, query url.Values, v interface{}) error {
	u := f.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: coingecko fetch %s: %w", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: coingecko read body: %w", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: coingecko %s: status %d, body: %s", ErrUnavailable, path, resp.StatusCode, truncate(body, 200))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: coingecko decode %s: %w", ErrUnavailable, path, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
