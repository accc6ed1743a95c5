package stockfetch

import "fmt"

// NetworkError reports a transport failure while fetching a symbol.
type NetworkError struct {
	Symbol Symbol
	Err    error
}

func (ne NetworkError) Error() string {
	return fmt.Sprintf("fetching %q: %v", string(ne.Symbol), ne.Err)
}

func (ne NetworkError) Unwrap() error {
	return ne.Err
}

// ParseError means the response body was not JSON at all.
type ParseError struct {
	Err error
}

func (pe ParseError) Error() string {
	return fmt.Sprintf("Error parsing JSON response: %v", pe.Err)
}

func (pe ParseError) Unwrap() error {
	return pe.Err
}

// SchemaError means the body was JSON but lacked the sections a quote is
// read from.
type SchemaError struct {
	Err error
}

func (se SchemaError) Error() string {
	const msg = "Error retrieving data from the response"
	if se.Err == nil {
		return msg
	}
	return msg + ": " + se.Err.Error()
}

func (se SchemaError) Unwrap() error {
	return se.Err
}

// NoDataError carries the last-refreshed timestamp that had no matching
// sample in the time series.
type NoDataError string

func (nd NoDataError) Error() string {
	return fmt.Sprintf("No data available for the specified time %q", string(nd))
}
