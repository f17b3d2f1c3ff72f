package collector

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"IDXScreener/internal/model"
)

// calendarFactor pads the requested trading-day count into calendar days so
// weekends and exchange holidays do not starve the window.
const calendarFactor = 2

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client *http.Client
	Suffix string // venue suffix appended to bare tickers, e.g. ".JK" for IDX
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(suffix, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Suffix: suffix,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooSymbol appends the venue suffix unless the ticker already carries one.
func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if f.Suffix == "" || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + f.Suffix
}

// FetchDailyBars returns up to `days` daily bars ending at `end`.
func (f *YahooFetcher) FetchDailyBars(symbol string, end time.Time, days int) ([]model.OHLCV, error) {
	period2 := end.AddDate(0, 0, 1) // Yahoo's period2 is exclusive
	period1 := end.AddDate(0, 0, -days*calendarFactor)
	u := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		url.PathEscape(f.yahooSymbol(symbol)), period1.Unix(), period2.Unix())

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	bars, err := parseChart(body)
	if err != nil {
		return nil, err
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// parseChart extracts OHLCV bars from a Yahoo chart response. Null entries
// (holidays, suspended sessions) are skipped.
func parseChart(body []byte) ([]model.OHLCV, error) {
	if errDesc := gjson.GetBytes(body, "chart.error.description"); errDesc.Exists() && errDesc.String() != "" {
		return nil, fmt.Errorf("yahoo api error: %s", errDesc.String())
	}
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	timestamps := result.Get("timestamp").Array()
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]model.OHLCV, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(opens) || i >= len(highs) || i >= len(lows) || i >= len(closes) {
			break
		}
		o, h, l, c := opens[i].Float(), highs[i].Float(), lows[i].Float(), closes[i].Float()
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		var v float64
		if i < len(volumes) {
			v = volumes[i].Float()
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts.Int(), 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
