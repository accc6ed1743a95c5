package fetch

import (
	"context"

	"github.com/marstr/stockfetch"
)

// Fetcher retrieves the raw, fully assembled response body for a symbol.
type Fetcher interface {
	Fetch(context.Context, stockfetch.Symbol) ([]byte, error)
}
