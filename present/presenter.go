package present

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/marstr/stockfetch"
	"github.com/marstr/stockfetch/fetch/alphavantage"
)

// Presenter turns a fetched intraday body into the console summary.
type Presenter struct {
	Out io.Writer
	Log *zap.Logger
}

func New(out io.Writer, log *zap.Logger) Presenter {
	if log == nil {
		log = zap.NewNop()
	}
	return Presenter{Out: out, Log: log}
}

// Render decodes body and prints the latest sample. Failures are logged and
// returned; nothing reaches Out unless the whole quote is available.
func (p Presenter) Render(body []byte) error {
	decoded, err := alphavantage.Decode(body)
	if err != nil {
		p.Log.Error(err.Error())
		return err
	}

	quote, err := decoded.Latest()
	if err != nil {
		p.Log.Error(err.Error())
		return err
	}

	return p.Print(quote)
}

func (p Presenter) Print(q stockfetch.Quote) error {
	_, err := fmt.Fprintf(p.Out,
		"Stock Data for %s:\n"+
			"Last Refreshed: %s\n"+
			"Current Price: $%s\n"+
			"Open Price: $%s\n"+
			"High Price: $%s\n"+
			"Low Price: $%s\n"+
			"Volume: %s shares\n",
		q.Symbol, q.LastRefreshed, q.Close, q.Open, q.High, q.Low, q.Volume)
	return err
}
