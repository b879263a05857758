package docai

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StringNumber decodes a JSON value that may arrive as either a quoted string
// or a bare number into its string form. The extraction service quotes money
// units, but some exports carry them unquoted.
type StringNumber string

func (s *StringNumber) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringNumber(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = StringNumber(n.String())
	return nil
}

// MoneyValue is the money payload of a normalized value: a whole-unit part
// plus nanos (billionths of a unit), with an optional ISO currency code.
type MoneyValue struct {
	CurrencyCode string       `json:"currencyCode,omitempty"`
	Units        StringNumber `json:"units,omitempty"`
	Nanos        int64        `json:"nanos,omitempty"`
}

// Amount converts the units+nanos pair into an exact decimal. Missing units
// default to "0" and missing nanos to 0. The conversion concatenates the
// integer part with the nanos left-padded to 9 digits, so nanos always
// contribute exactly 9 fractional digits. A pair that does not form a valid
// decimal yields ok=false.
func (m *MoneyValue) Amount() (decimal.Decimal, bool) {
	if m == nil {
		return decimal.Decimal{}, false
	}
	units := string(m.Units)
	if units == "" {
		units = "0"
	}
	d, err := decimal.NewFromString(fmt.Sprintf("%s.%09d", units, m.Nanos))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// DateValue is the calendar-date payload of a normalized value.
type DateValue struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// Date builds the calendar date at UTC midnight. Combinations that do not
// exist on the calendar yield ok=false: time.Date normalizes overflow, so the
// components must survive a round trip.
func (d *DateValue) Date() (time.Time, bool) {
	if d == nil || d.Year == 0 || d.Month == 0 || d.Day == 0 {
		return time.Time{}, false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != d.Year || t.Month() != time.Month(d.Month) || t.Day() != d.Day {
		return time.Time{}, false
	}
	return t, true
}

// DatetimeValue is the clock-time payload of a normalized value. All fields
// default to 0.
type DatetimeValue struct {
	Hours   int   `json:"hours,omitempty"`
	Minutes int   `json:"minutes,omitempty"`
	Seconds int   `json:"seconds,omitempty"`
	Nanos   int64 `json:"nanos,omitempty"`
}

// At anchors the clock time to the given base date, carrying nanos as
// sub-second precision. A zero base anchors to the current date. Components
// that do not survive normalization yield ok=false.
func (dt *DatetimeValue) At(base time.Time) (time.Time, bool) {
	if dt == nil {
		return time.Time{}, false
	}
	if base.IsZero() {
		base = time.Now().UTC()
	}
	t := time.Date(base.Year(), base.Month(), base.Day(),
		dt.Hours, dt.Minutes, dt.Seconds, int(dt.Nanos), time.UTC)
	if t.Hour() != dt.Hours || t.Minute() != dt.Minutes || t.Second() != dt.Seconds {
		return time.Time{}, false
	}
	return t, true
}

// NormalizedValue is the typed payload the extraction service attaches to an
// entity. At most one of the value fields is set.
type NormalizedValue struct {
	MoneyValue    *MoneyValue    `json:"moneyValue,omitempty"`
	DateValue     *DateValue     `json:"dateValue,omitempty"`
	DatetimeValue *DatetimeValue `json:"datetimeValue,omitempty"`
	TimeValue     *DatetimeValue `json:"timeValue,omitempty"`
	Text          *string        `json:"text,omitempty"`
}

// clock returns whichever clock-time payload is present. Some exports use
// datetimeValue, older ones timeValue.
func (n *NormalizedValue) clock() *DatetimeValue {
	if n == nil {
		return nil
	}
	if n.DatetimeValue != nil {
		return n.DatetimeValue
	}
	return n.TimeValue
}
