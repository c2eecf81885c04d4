package paprika

import (
	"net/url"
	"strconv"
	"strings"
)

// Param is one query parameter. Order is preserved on the wire.
type Param struct {
	Name  string
	Value string
}

// Endpoint describes one GET: a path relative to the base URL plus ordered
// query parameters.
type Endpoint struct {
	Path   string
	Params []Param
}

// String returns the path with its encoded query string.
func (e Endpoint) String() string {
	if len(e.Params) == 0 {
		return e.Path
	}
	var b strings.Builder
	b.WriteString(e.Path)
	for i, p := range e.Params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// with appends a parameter.
func (e Endpoint) with(name, value string) Endpoint {
	e.Params = append(e.Params, Param{Name: name, Value: value})
	return e
}

// withOptional appends a parameter only when value is non-empty.
func (e Endpoint) withOptional(name, value string) Endpoint {
	if value == "" {
		return e
	}
	return e.with(name, value)
}

// path joins escaped segments under a root.
func path(root string, segments ...string) string {
	var b strings.Builder
	b.WriteString(root)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// HistoryQuery holds the parameters shared by the historical endpoints.
type HistoryQuery struct {
	Start    string // required, RFC 3339 or YYYY-MM-DD
	End      string // optional
	Interval string
	Limit    int
	Quote    string // ignored by contract history
}

func (q HistoryQuery) apply(e Endpoint, withQuote bool) Endpoint {
	e = e.with("start", q.Start).
		with("interval", q.Interval).
		with("limit", strconv.Itoa(q.Limit))
	if withQuote {
		e = e.with("quote", q.Quote)
	}
	return e.withOptional("end", q.End)
}

// ---------------------------------------------------------------------------
// Market overview
// ---------------------------------------------------------------------------

// GlobalEndpoint is the market overview.
func GlobalEndpoint() Endpoint { return Endpoint{Path: "/global"} }

// ---------------------------------------------------------------------------
// Coins
// ---------------------------------------------------------------------------

// CoinsEndpoint lists every coin. The API does not paginate it.
func CoinsEndpoint() Endpoint { return Endpoint{Path: "/coins"} }

// CoinEndpoint returns one coin's details.
func CoinEndpoint(id string) Endpoint { return Endpoint{Path: path("/coins", id)} }

// CoinEventsEndpoint lists a coin's events.
func CoinEventsEndpoint(id string) Endpoint { return Endpoint{Path: path("/coins", id, "events")} }

// CoinExchangesEndpoint lists the exchanges trading a coin.
func CoinExchangesEndpoint(id string) Endpoint {
	return Endpoint{Path: path("/coins", id, "exchanges")}
}

// CoinMarketsEndpoint lists a coin's markets quoted in quotes (comma-separated).
func CoinMarketsEndpoint(id, quotes string) Endpoint {
	return Endpoint{Path: path("/coins", id, "markets")}.with("quotes", quotes)
}

// ---------------------------------------------------------------------------
// Tickers
// ---------------------------------------------------------------------------

// TickersEndpoint lists tickers; the API applies limit server-side.
func TickersEndpoint(quotes string, limit int) Endpoint {
	return Endpoint{Path: "/tickers"}.with("quotes", quotes).with("limit", strconv.Itoa(limit))
}

// TickerEndpoint returns one coin's ticker.
func TickerEndpoint(id, quotes string) Endpoint {
	return Endpoint{Path: path("/tickers", id)}.with("quotes", quotes)
}

// TickerHistoryEndpoint returns historical ticks for a coin.
func TickerHistoryEndpoint(id string, q HistoryQuery) Endpoint {
	return q.apply(Endpoint{Path: path("/tickers", id, "historical")}, true)
}

// ---------------------------------------------------------------------------
// OHLCV
// ---------------------------------------------------------------------------

// OHLCVHistoryEndpoint returns historical OHLCV candles.
func OHLCVHistoryEndpoint(id string, q HistoryQuery) Endpoint {
	return q.apply(Endpoint{Path: path("/coins", id, "ohlcv", "historical")}, true)
}

// OHLCVLatestEndpoint returns the last full day's candle.
func OHLCVLatestEndpoint(id, quote string) Endpoint {
	return Endpoint{Path: path("/coins", id, "ohlcv", "latest")}.with("quote", quote)
}

// OHLCVTodayEndpoint returns today's open candle.
func OHLCVTodayEndpoint(id, quote string) Endpoint {
	return Endpoint{Path: path("/coins", id, "ohlcv", "today")}.with("quote", quote)
}

// ---------------------------------------------------------------------------
// Exchanges
// ---------------------------------------------------------------------------

// ExchangesEndpoint lists exchanges.
func ExchangesEndpoint(quotes string) Endpoint {
	return Endpoint{Path: "/exchanges"}.with("quotes", quotes)
}

// ExchangeEndpoint returns one exchange.
func ExchangeEndpoint(id, quotes string) Endpoint {
	return Endpoint{Path: path("/exchanges", id)}.with("quotes", quotes)
}

// ExchangeMarketsEndpoint lists an exchange's markets.
func ExchangeMarketsEndpoint(id, quotes string) Endpoint {
	return Endpoint{Path: path("/exchanges", id, "markets")}.with("quotes", quotes)
}

// ---------------------------------------------------------------------------
// Tags, people, search, conversion
// ---------------------------------------------------------------------------

// TagsEndpoint lists tags.
func TagsEndpoint() Endpoint { return Endpoint{Path: "/tags"} }

// TagEndpoint returns one tag.
func TagEndpoint(id string) Endpoint { return Endpoint{Path: path("/tags", id)} }

// PersonEndpoint returns one person.
func PersonEndpoint(id string) Endpoint { return Endpoint{Path: path("/people", id)} }

// SearchEndpoint searches by free text. categories and modifier are optional.
func SearchEndpoint(query string, limit int, categories, modifier string) Endpoint {
	return Endpoint{Path: "/search"}.
		with("q", query).
		with("limit", strconv.Itoa(limit)).
		withOptional("categories", categories).
		withOptional("modifier", modifier)
}

// PriceConverterEndpoint converts amount of base into quote. amount is sent verbatim.
func PriceConverterEndpoint(base, quote, amount string) Endpoint {
	return Endpoint{Path: "/price-converter"}.
		with("base_currency_id", base).
		with("quote_currency_id", quote).
		with("amount", amount)
}

// ---------------------------------------------------------------------------
// Contracts
// ---------------------------------------------------------------------------

// PlatformsEndpoint lists contract platforms.
func PlatformsEndpoint() Endpoint { return Endpoint{Path: "/contracts"} }

// ContractsEndpoint lists contracts on a platform.
func ContractsEndpoint(platform string) Endpoint {
	return Endpoint{Path: path("/contracts", platform)}
}

// ContractTickerEndpoint returns the ticker for a contract address.
func ContractTickerEndpoint(platform, address string) Endpoint {
	return Endpoint{Path: path("/contracts", platform, address)}
}

// ContractHistoryEndpoint returns historical ticks for a contract address.
func ContractHistoryEndpoint(platform, address string, q HistoryQuery) Endpoint {
	return q.apply(Endpoint{Path: path("/contracts", platform, address, "historical")}, false)
}

// ---------------------------------------------------------------------------
// Account (API key required)
// ---------------------------------------------------------------------------

// KeyInfoEndpoint describes the caller's key and plan.
func KeyInfoEndpoint() Endpoint { return Endpoint{Path: "/key/info"} }

// MappingsEndpoint returns coin ID mappings to other providers.
func MappingsEndpoint() Endpoint { return Endpoint{Path: "/coins/mappings"} }

// ChangelogEndpoint returns the coin ID changelog.
func ChangelogEndpoint(limit, page int) Endpoint {
	return Endpoint{Path: "/changelog/ids"}.
		with("limit", strconv.Itoa(limit)).
		with("page", strconv.Itoa(page))
}
