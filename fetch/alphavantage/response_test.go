package alphavantage

import (
	"errors"
	"strings"
	"testing"

	"github.com/marstr/stockfetch"
)

const sampleBody = `{
    "Meta Data": {
        "1. Information": "Intraday (1min) open, high, low, close prices and volume",
        "2. Symbol": "IBM",
        "3. Last Refreshed": "2024-01-01 10:00:00",
        "4. Interval": "1min",
        "5. Output Size": "Compact",
        "6. Time Zone": "US/Eastern"
    },
    "Time Series (1min)": {
        "2024-01-01 10:00:00": {
            "1. open": "161.1000",
            "2. high": "161.2500",
            "3. low": "160.9800",
            "4. close": "161.2000",
            "5. volume": "1234"
        },
        "2024-01-01 09:59:00": {
            "1. open": "160.0000",
            "2. high": "160.5000",
            "3. low": "159.9000",
            "4. close": "160.4000",
            "5. volume": "999"
        }
    }
}`

func TestDecode_Latest(t *testing.T) {
	decoded, err := Decode([]byte(sampleBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := decoded.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := stockfetch.Quote{
		Symbol:        "IBM",
		LastRefreshed: "2024-01-01 10:00:00",
		Open:          "161.1000",
		High:          "161.2500",
		Low:           "160.9800",
		Close:         "161.2000",
		Volume:        "1234",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if decoded.MetaData.TimeZone != "US/Eastern" {
		t.Errorf("unexpected time zone %q", decoded.MetaData.TimeZone)
	}
}

func TestDecode_ParseErrors(t *testing.T) {
	testCases := map[string]string{
		"empty":     "",
		"html":      "<html>oops</html>",
		"truncated": `{"Meta Data": {`,
	}

	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			var parseErr stockfetch.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), "Error parsing JSON response") {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestDecode_SchemaErrors(t *testing.T) {
	testCases := map[string]string{
		"no time series": `{"Meta Data": {"2. Symbol": "IBM", "3. Last Refreshed": "2024-01-01 10:00:00"}}`,
		"no meta data":   `{"Time Series (1min)": {}}`,
		"null meta data": `{"Meta Data": null, "Time Series (1min)": {}}`,
		"array":          `[1, 2, 3]`,
		"wrong type":     `{"Meta Data": "IBM", "Time Series (1min)": {}}`,
		"folded case":    `{"meta data": {"2. symbol": "IBM", "3. last refreshed": "t"}, "time series (1min)": {"t": {"4. CLOSE": "1"}}}`,
		"null":           `null`,
	}

	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			var schemaErr stockfetch.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %T: %v", err, err)
			}
			if !strings.HasPrefix(err.Error(), "Error retrieving data from the response") {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestDecode_ServerRefusal(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "information",
			body: `{"Information": "Our standard API rate limit is 25 requests per day."}`,
			want: "Our standard API rate limit is 25 requests per day.",
		},
		{
			name: "note",
			body: `{"Note": "Thank you for using Alpha Vantage!"}`,
			want: "Thank you for using Alpha Vantage!",
		},
		{
			name: "error message",
			body: `{"Error Message": "Invalid API call."}`,
			want: "Invalid API call.",
		},
		{
			name: "error message wins",
			body: `{"Note": "note", "Information": "info", "Error Message": "Invalid API call."}`,
			want: "Invalid API call.",
		},
		{
			name: "information before note",
			body: `{"Note": "note", "Information": "info"}`,
			want: "info",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.body))

			var serverErr ServerError
			if !errors.As(err, &serverErr) {
				t.Fatalf("expected ServerError inside %v", err)
			}
			if serverErr.Error() != tc.want {
				t.Errorf("got %q, want %q", serverErr.Error(), tc.want)
			}

			var schemaErr stockfetch.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("expected SchemaError, got %T", err)
			}
			if !strings.HasSuffix(err.Error(), tc.want) {
				t.Errorf("server explanation missing from %q", err.Error())
			}
		})
	}
}

func TestLatest_IgnoresMalformedOlderSamples(t *testing.T) {
	body := `{
        "Meta Data": {"2. Symbol": "IBM", "3. Last Refreshed": "t"},
        "Time Series (1min)": {
            "t": {"1. open": "1.0", "4. close": "2.0", "5. volume": "10"},
            "old": {"5. volume": 12},
            "older": "garbage"
        }
    }`

	decoded, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := decoded.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Close != "2.0" || got.Open != "1.0" || got.Volume != "10" {
		t.Errorf("unexpected quote %+v", got)
	}
}

func TestLatest_MatchesFieldNamesExactly(t *testing.T) {
	body := `{
        "Meta Data": {"2. Symbol": "IBM", "3. Last Refreshed": "t"},
        "Time Series (1min)": {"t": {"4. CLOSE": "1", "4. close": "2"}}
    }`

	decoded, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := decoded.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Close != "2" {
		t.Errorf("expected close from exact key, got %q", got.Close)
	}
}

func TestLatest_NoData(t *testing.T) {
	body := `{
        "Meta Data": {"2. Symbol": "IBM", "3. Last Refreshed": "2024-01-01 16:00:00"},
        "Time Series (1min)": {"2024-01-01 10:00:00": {"4. close": "1"}}
    }`

	decoded, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = decoded.Latest()
	var noData stockfetch.NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("expected NoDataError, got %T: %v", err, err)
	}
	if string(noData) != "2024-01-01 16:00:00" {
		t.Errorf("unexpected timestamp %q", string(noData))
	}
	if !strings.Contains(err.Error(), "No data available for the specified time") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
