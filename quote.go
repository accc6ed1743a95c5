package stockfetch

// Quote is the latest intraday sample for a symbol. Every field is the raw
// string the upstream service returned; nothing is parsed or rounded.
type Quote struct {
	Symbol        Symbol
	LastRefreshed string
	Open          string
	High          string
	Low           string
	Close         string
	Volume        string
}
