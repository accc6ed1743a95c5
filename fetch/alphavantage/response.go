package alphavantage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marstr/stockfetch"
)

// Section and field names are matched exactly. encoding/json folds case when
// filling struct fields, so everything below goes through raw maps instead.
const (
	metaDataKey   = "Meta Data"
	timeSeriesKey = "Time Series (1min)"

	informationKey  = "Information"
	noteKey         = "Note"
	errorMessageKey = "Error Message"
)

// ServerError is the explanation Alpha Vantage puts in place of data when it
// refuses a call: a bad key, an unknown symbol or an exhausted quota.
type ServerError struct {
	Information  string
	Note         string
	ErrorMessage string
}

func (se ServerError) Error() string {
	switch {
	case se.ErrorMessage != "":
		return se.ErrorMessage
	case se.Information != "":
		return se.Information
	default:
		return se.Note
	}
}

func (se ServerError) empty() bool {
	return se.Information == "" && se.Note == "" && se.ErrorMessage == ""
}

type IntradayResponse struct {
	MetaData *MetaData

	// TimeSeries stays undecoded per entry; only the sample a quote is read
	// from has to be well formed.
	TimeSeries map[string]json.RawMessage
}

type MetaData struct {
	Information   string
	Symbol        string
	LastRefreshed string
	Interval      string
	OutputSize    string
	TimeZone      string
}

type Sample struct {
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

var errMissingSections = errors.New(`missing "Meta Data" or "Time Series (1min)"`)

// Decode reads an intraday response body. A body that is not JSON yields a
// ParseError; JSON without both sections yields a SchemaError.
func Decode(body []byte) (IntradayResponse, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return IntradayResponse{}, stockfetch.ParseError{Err: err}
		}
		return IntradayResponse{}, stockfetch.SchemaError{Err: err}
	}

	meta, err := object(top, metaDataKey)
	if err != nil {
		return IntradayResponse{}, stockfetch.SchemaError{Err: err}
	}
	series, err := object(top, timeSeriesKey)
	if err != nil {
		return IntradayResponse{}, stockfetch.SchemaError{Err: err}
	}

	if meta == nil || series == nil {
		refusal := ServerError{
			Information:  field(top, informationKey),
			Note:         field(top, noteKey),
			ErrorMessage: field(top, errorMessageKey),
		}
		if !refusal.empty() {
			return IntradayResponse{}, stockfetch.SchemaError{Err: refusal}
		}
		return IntradayResponse{}, stockfetch.SchemaError{Err: errMissingSections}
	}

	return IntradayResponse{
		MetaData: &MetaData{
			Information:   field(meta, "1. Information"),
			Symbol:        field(meta, "2. Symbol"),
			LastRefreshed: field(meta, "3. Last Refreshed"),
			Interval:      field(meta, "4. Interval"),
			OutputSize:    field(meta, "5. Output Size"),
			TimeZone:      field(meta, "6. Time Zone"),
		},
		TimeSeries: series,
	}, nil
}

// Latest returns the sample keyed by the meta data's last-refreshed
// timestamp.
func (ir IntradayResponse) Latest() (stockfetch.Quote, error) {
	if ir.MetaData == nil {
		return stockfetch.Quote{}, stockfetch.SchemaError{Err: errMissingSections}
	}

	refreshed := ir.MetaData.LastRefreshed
	entry, err := object(ir.TimeSeries, refreshed)
	if err != nil {
		return stockfetch.Quote{}, stockfetch.SchemaError{Err: err}
	}
	if entry == nil {
		return stockfetch.Quote{}, stockfetch.NoDataError(refreshed)
	}

	sample := Sample{
		Open:   field(entry, "1. open"),
		High:   field(entry, "2. high"),
		Low:    field(entry, "3. low"),
		Close:  field(entry, "4. close"),
		Volume: field(entry, "5. volume"),
	}

	return stockfetch.Quote{
		Symbol:        stockfetch.Symbol(ir.MetaData.Symbol),
		LastRefreshed: refreshed,
		Open:          sample.Open,
		High:          sample.High,
		Low:           sample.Low,
		Close:         sample.Close,
		Volume:        sample.Volume,
	}, nil
}

// object returns the JSON object stored under key, or nil when the key is
// absent or null.
func object(parent map[string]json.RawMessage, key string) (map[string]json.RawMessage, error) {
	raw, ok := parent[key]
	if !ok {
		return nil, nil
	}

	var child map[string]json.RawMessage
	if err := json.Unmarshal(raw, &child); err != nil {
		return nil, fmt.Errorf("%q is not an object: %w", key, err)
	}
	return child, nil
}

// field returns a string value as-is. Other scalars come back as their JSON
// text; an absent or null field is empty.
func field(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
