package eventmodels

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExpirationDate is an option expiry normalized to a calendar date. Providers
// report it either as epoch seconds or as a date string; both unmarshal to
// the same YYYY-MM-DD value.
type ExpirationDate string

const expirationDateLayout = "2006-01-02"

func NewExpirationDate(t time.Time) ExpirationDate {
	return ExpirationDate(t.UTC().Format(expirationDateLayout))
}

func (d ExpirationDate) String() string {
	return string(d)
}

func (d ExpirationDate) IsZero() bool {
	return len(d) == 0
}

func (d ExpirationDate) ToTime() (time.Time, error) {
	t, err := time.Parse(expirationDateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("ExpirationDate: ToTime: failed to parse %q: %w", string(d), err)
	}

	return t, nil
}

func (d *ExpirationDate) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if raw == "null" || raw == `""` {
		*d = ""
		return nil
	}

	if epoch, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = NewExpirationDate(time.Unix(epoch, 0))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ExpirationDate: UnmarshalJSON: unexpected value %s: %w", raw, err)
	}

	if t, err := time.Parse(expirationDateLayout, s); err == nil {
		*d = NewExpirationDate(t)
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("ExpirationDate: UnmarshalJSON: failed to parse %q", s)
	}

	*d = NewExpirationDate(t)

	return nil
}

func (d ExpirationDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}
