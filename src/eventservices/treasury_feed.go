package eventservices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultTreasurySecurityDesc = "Treasury 10-Year"

type treasuryRateRecordDTO struct {
	RecordDate      string `json:"record_date"`
	AvgInterestRate string `json:"avg_interest_rate_amt"`
	SecurityDesc    string `json:"security_desc"`
}

type treasuryRatesResponseDTO struct {
	Data []treasuryRateRecordDTO `json:"data"`
}

// TreasuryFiscalDataClient reads average interest rates from the
// treasury.gov fiscal data API.
type TreasuryFiscalDataClient struct {
	BaseURL      string
	SecurityDesc string
}

func NewTreasuryFiscalDataClient(baseURL string) *TreasuryFiscalDataClient {
	return &TreasuryFiscalDataClient{
		BaseURL:      baseURL,
		SecurityDesc: defaultTreasurySecurityDesc,
	}
}

// FetchLatestRate returns the most recent matching record's rate as a
// percentage. The API sorts by record date descending; the first valid entry
// wins.
func (c *TreasuryFiscalDataClient) FetchLatestRate(ctx context.Context) (float64, error) {
	client := http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return 0, fmt.Errorf("FetchLatestRate: failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Add("filter", fmt.Sprintf("security_desc:eq:%s", c.SecurityDesc))
	q.Add("sort", "-record_date")
	q.Add("page[size]", "1")

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("FetchLatestRate: failed to fetch treasury rates: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("FetchLatestRate: treasury api returned http code %v", res.Status)
	}

	var dto treasuryRatesResponseDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return 0, fmt.Errorf("FetchLatestRate: failed to decode json: %w", err)
	}

	if len(dto.Data) == 0 {
		return 0, fmt.Errorf("FetchLatestRate: no records returned for %q", c.SecurityDesc)
	}

	latest := dto.Data[0]
	for _, record := range dto.Data[1:] {
		if record.RecordDate > latest.RecordDate {
			latest = record
		}
	}

	percent, err := strconv.ParseFloat(latest.AvgInterestRate, 64)
	if err != nil {
		return 0, fmt.Errorf("FetchLatestRate: failed to parse rate %q: %w", latest.AvgInterestRate, err)
	}

	if percent <= 0 {
		return 0, fmt.Errorf("FetchLatestRate: invalid rate %v on %s", percent, latest.RecordDate)
	}

	return percent, nil
}
