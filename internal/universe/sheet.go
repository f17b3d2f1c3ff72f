package universe

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tickerColumn is the header of the column holding the symbols.
const tickerColumn = "Ticker"

// SheetSource reads symbols from a Google Sheets document via its CSV export
// endpoint. The sheet must carry a "Ticker" column.
type SheetSource struct {
	SheetURL string
	Client   *http.Client
}

// NewSheetSource creates a sheet source with optional proxy support.
func NewSheetSource(sheetURL, proxyURL string) *SheetSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &SheetSource{
		SheetURL: sheetURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (s *SheetSource) Name() string { return "sheet" }

func (s *SheetSource) Symbols(ctx context.Context) ([]string, error) {
	exportURL, err := ExportURL(s.SheetURL)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode)
	}
	return ParseTickerCSV(resp.Body)
}

// ExportURL converts a Google Sheets edit/share URL into its CSV export URL.
// Already-direct URLs (no /d/ segment) pass through unchanged.
func ExportURL(sheetURL string) (string, error) {
	marker := "/d/"
	i := strings.Index(sheetURL, marker)
	if i < 0 {
		return sheetURL, nil
	}
	rest := sheetURL[i+len(marker):]
	j := strings.IndexByte(rest, '/')
	if j < 0 {
		j = len(rest)
	}
	fileID := rest[:j]
	if fileID == "" {
		return "", fmt.Errorf("sheet url %q: empty document id", sheetURL)
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", fileID), nil
}

// ParseTickerCSV extracts the Ticker column from CSV data. Rows with an empty
// ticker cell are dropped; order is preserved.
func ParseTickerCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sheets pad rows unevenly

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), tickerColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found in sheet", tickerColumn)
	}

	var symbols []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if col >= len(row) {
			continue
		}
		sym := strings.ToUpper(strings.TrimSpace(row[col]))
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}
