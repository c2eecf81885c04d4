package paprika

// Response models. Fields the API may omit are pointers so that absent values
// round-trip as null in JSON output instead of as zero values.

// GlobalData is the market overview.
type GlobalData struct {
	MarketCapUSD            *float64 `json:"market_cap_usd"`
	Volume24hUSD            *float64 `json:"volume_24h_usd"`
	BitcoinDominancePercent *float64 `json:"bitcoin_dominance_percentage"`
	CryptocurrenciesNumber  *int64   `json:"cryptocurrencies_number"`
	MarketCapATHValue       *float64 `json:"market_cap_ath_value"`
	MarketCapATHDate        *string  `json:"market_cap_ath_date"`
	Volume24hATHValue       *float64 `json:"volume_24h_ath_value"`
	Volume24hATHDate        *string  `json:"volume_24h_ath_date"`
	Volume24hPercentFromATH *float64 `json:"volume_24h_percent_from_ath"`
	Volume24hPercentToATH   *float64 `json:"volume_24h_percent_to_ath"`
	MarketCapChange24h      *float64 `json:"market_cap_change_24h"`
	Volume24hChange24h      *float64 `json:"volume_24h_change_24h"`
	LastUpdated             *int64   `json:"last_updated"`
}

// Coin is an entry of the coin list.
type Coin struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Rank     *int64  `json:"rank"`
	IsNew    *bool   `json:"is_new"`
	IsActive *bool   `json:"is_active"`
	Type     *string `json:"type"`
}

// CoinDetail is a single coin with its metadata.
type CoinDetail struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Symbol            string         `json:"symbol"`
	Rank              *int64         `json:"rank"`
	IsNew             *bool          `json:"is_new"`
	IsActive          *bool          `json:"is_active"`
	Type              *string        `json:"type"`
	Logo              *string        `json:"logo"`
	Description       *string        `json:"description"`
	OpenSource        *bool          `json:"open_source"`
	StartedAt         *string        `json:"started_at"`
	DevelopmentStatus *string        `json:"development_status"`
	HardwareWallet    *bool          `json:"hardware_wallet"`
	ProofType         *string        `json:"proof_type"`
	OrgStructure      *string        `json:"org_structure"`
	HashAlgorithm     *string        `json:"hash_algorithm"`
	Tags              []CoinTag      `json:"tags"`
	Team              []TeamMember   `json:"team"`
	Links             map[string]any `json:"links"`
	Whitepaper        *Whitepaper    `json:"whitepaper"`
	FirstDataAt       *string        `json:"first_data_at"`
	LastDataAt        *string        `json:"last_data_at"`
}

// CoinTag is a tag reference embedded in CoinDetail.
type CoinTag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CoinCounter *int64 `json:"coin_counter"`
	ICOCounter  *int64 `json:"ico_counter"`
}

// TeamMember is a person reference embedded in CoinDetail.
type TeamMember struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position *string `json:"position"`
}

// Whitepaper links a coin's whitepaper.
type Whitepaper struct {
	Link      *string `json:"link"`
	Thumbnail *string `json:"thumbnail"`
}

// CoinEvent is a dated event for a coin.
type CoinEvent struct {
	ID             *string `json:"id"`
	Date           *string `json:"date"`
	DateTo         *string `json:"date_to"`
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	IsConference   *bool   `json:"is_conference"`
	Link           *string `json:"link"`
	ProofImageLink *string `json:"proof_image_link"`
}

// CoinExchange is an exchange listing a coin.
type CoinExchange struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	AdjustedVolume24hShare *float64       `json:"adjusted_volume_24h_share"`
	Fiats                  []FiatCurrency `json:"fiats"`
}

// FiatCurrency is a fiat supported by an exchange.
type FiatCurrency struct {
	Name   *string `json:"name"`
	Symbol *string `json:"symbol"`
}

// CoinMarket is one trading pair for a coin.
type CoinMarket struct {
	ExchangeID             *string                `json:"exchange_id"`
	ExchangeName           *string                `json:"exchange_name"`
	Pair                   *string                `json:"pair"`
	BaseCurrencyID         *string                `json:"base_currency_id"`
	BaseCurrencyName       *string                `json:"base_currency_name"`
	QuoteCurrencyID        *string                `json:"quote_currency_id"`
	QuoteCurrencyName      *string                `json:"quote_currency_name"`
	MarketURL              *string                `json:"market_url"`
	Category               *string                `json:"category"`
	FeeType                *string                `json:"fee_type"`
	Outlier                *bool                  `json:"outlier"`
	AdjustedVolume24hShare *float64               `json:"adjusted_volume_24h_share"`
	Quotes                 map[string]MarketQuote `json:"quotes"`
	TrustScore             *string                `json:"trust_score"`
	LastUpdated            *string                `json:"last_updated"`
}

// MarketQuote is a market's price and volume in one quote currency.
type MarketQuote struct {
	Price     *float64 `json:"price"`
	Volume24h *float64 `json:"volume_24h"`
}

// Ticker is a coin's market data.
type Ticker struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Symbol            string                 `json:"symbol"`
	Rank              *int64                 `json:"rank"`
	CirculatingSupply *float64               `json:"circulating_supply"`
	TotalSupply       *float64               `json:"total_supply"`
	MaxSupply         *float64               `json:"max_supply"`
	BetaValue         *float64               `json:"beta_value"`
	FirstDataAt       *string                `json:"first_data_at"`
	LastUpdated       *string                `json:"last_updated"`
	Quotes            map[string]TickerQuote `json:"quotes"`
}

// TickerQuote is a ticker's data in one quote currency.
type TickerQuote struct {
	Price               *float64 `json:"price"`
	Volume24h           *float64 `json:"volume_24h"`
	Volume24hChange24h  *float64 `json:"volume_24h_change_24h"`
	MarketCap           *float64 `json:"market_cap"`
	MarketCapChange24h  *float64 `json:"market_cap_change_24h"`
	PercentChange15m    *float64 `json:"percent_change_15m"`
	PercentChange30m    *float64 `json:"percent_change_30m"`
	PercentChange1h     *float64 `json:"percent_change_1h"`
	PercentChange6h     *float64 `json:"percent_change_6h"`
	PercentChange12h    *float64 `json:"percent_change_12h"`
	PercentChange24h    *float64 `json:"percent_change_24h"`
	PercentChange7d     *float64 `json:"percent_change_7d"`
	PercentChange30d    *float64 `json:"percent_change_30d"`
	PercentChange1y     *float64 `json:"percent_change_1y"`
	ATHPrice            *float64 `json:"ath_price"`
	ATHDate             *string  `json:"ath_date"`
	PercentFromPriceATH *float64 `json:"percent_from_price_ath"`
}

// HistoryPoint is one historical tick for a coin or contract.
type HistoryPoint struct {
	Timestamp *string  `json:"timestamp"`
	Price     *float64 `json:"price"`
	Volume24h *float64 `json:"volume_24h"`
	MarketCap *float64 `json:"market_cap"`
}

// OHLCV is one candle.
type OHLCV struct {
	TimeOpen  *string  `json:"time_open"`
	TimeClose *string  `json:"time_close"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *float64 `json:"volume"`
	MarketCap *float64 `json:"market_cap"`
}

// Exchange is an exchange with its volumes.
type Exchange struct {
	ID                 string                   `json:"id"`
	Name               string                   `json:"name"`
	Description        *string                  `json:"description"`
	Active             *bool                    `json:"active"`
	WebsiteStatus      *bool                    `json:"website_status"`
	APIStatus          *bool                    `json:"api_status"`
	Message            *string                  `json:"message"`
	Links              map[string]any           `json:"links"`
	MarketsDataFetched *bool                    `json:"markets_data_fetched"`
	AdjustedRank       *int64                   `json:"adjusted_rank"`
	ReportedRank       *int64                   `json:"reported_rank"`
	Currencies         *int64                   `json:"currencies"`
	Markets            *int64                   `json:"markets"`
	Fiats              []any                    `json:"fiats"`
	Quotes             map[string]ExchangeQuote `json:"quotes"`
	LastUpdated        *string                  `json:"last_updated"`
	ConfidenceScore    *float64                 `json:"confidence_score"`
}

// ExchangeQuote is an exchange's volume in one quote currency.
type ExchangeQuote struct {
	ReportedVolume24h *float64 `json:"reported_volume_24h"`
	AdjustedVolume24h *float64 `json:"adjusted_volume_24h"`
	ReportedVolume7d  *float64 `json:"reported_volume_7d"`
	AdjustedVolume7d  *float64 `json:"adjusted_volume_7d"`
	ReportedVolume30d *float64 `json:"reported_volume_30d"`
	AdjustedVolume30d *float64 `json:"adjusted_volume_30d"`
}

// ExchangeMarket is one trading pair on an exchange.
type ExchangeMarket struct {
	Pair                   *string                `json:"pair"`
	BaseCurrencyID         *string                `json:"base_currency_id"`
	BaseCurrencyName       *string                `json:"base_currency_name"`
	QuoteCurrencyID        *string                `json:"quote_currency_id"`
	QuoteCurrencyName      *string                `json:"quote_currency_name"`
	MarketURL              *string                `json:"market_url"`
	Category               *string                `json:"category"`
	FeeType                *string                `json:"fee_type"`
	Outlier                *bool                  `json:"outlier"`
	ReportedVolume24hShare *float64               `json:"reported_volume_24h_share"`
	Quotes                 map[string]MarketQuote `json:"quotes"`
	TrustScore             *string                `json:"trust_score"`
	LastUpdated            *string                `json:"last_updated"`
}

// Tag groups coins by theme.
type Tag struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	CoinCounter *int64   `json:"coin_counter"`
	ICOCounter  *int64   `json:"ico_counter"`
	Coins       []string `json:"coins"`
}

// Person is a team member across projects.
type Person struct {
	ID          *string        `json:"id"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	TeamsCount  *int64         `json:"teams_count"`
	Links       map[string]any `json:"links"`
	Positions   []Position     `json:"positions"`
}

// Position is a person's role in one project.
type Position struct {
	CoinID   *string `json:"coin_id"`
	CoinName *string `json:"coin_name"`
	Position *string `json:"position"`
}

// SearchResult groups matches by category. Absent categories are nil.
type SearchResult struct {
	Currencies []SearchCurrency `json:"currencies"`
	Exchanges  []SearchExchange `json:"exchanges"`
	ICOs       []any            `json:"icos"`
	People     []SearchPerson   `json:"people"`
	Tags       []SearchTag      `json:"tags"`
}

// SearchCurrency is a matching coin.
type SearchCurrency struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Rank     *int64  `json:"rank"`
	IsActive *bool   `json:"is_active"`
	Type     *string `json:"type"`
}

// SearchExchange is a matching exchange.
type SearchExchange struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// SearchPerson is a matching person.
type SearchPerson struct {
	ID         *string `json:"id"`
	Name       *string `json:"name"`
	TeamsCount *int64  `json:"teams_count"`
}

// SearchTag is a matching tag.
type SearchTag struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	CoinCounter *int64  `json:"coin_counter"`
	ICOCounter  *int64  `json:"ico_counter"`
}

// Conversion is a price-converter result.
type Conversion struct {
	BaseCurrencyID        *string  `json:"base_currency_id"`
	BaseCurrencyName      *string  `json:"base_currency_name"`
	BasePriceLastUpdated  *string  `json:"base_price_last_updated"`
	QuoteCurrencyID       *string  `json:"quote_currency_id"`
	QuoteCurrencyName     *string  `json:"quote_currency_name"`
	QuotePriceLastUpdated *string  `json:"quote_price_last_updated"`
	Amount                *float64 `json:"amount"`
	Price                 *float64 `json:"price"`
}

// Contract is a token contract on a platform.
type Contract struct {
	Address *string `json:"address"`
	Type    *string `json:"type"`
	ID      *string `json:"id"`
	Active  *bool   `json:"active"`
}

// ContractTicker is the market data for a contract address.
type ContractTicker struct {
	ID                *string                  `json:"id"`
	Name              *string                  `json:"name"`
	Symbol            *string                  `json:"symbol"`
	Rank              *int64                   `json:"rank"`
	CirculatingSupply *float64                 `json:"circulating_supply"`
	TotalSupply       *float64                 `json:"total_supply"`
	MaxSupply         *float64                 `json:"max_supply"`
	BetaValue         *float64                 `json:"beta_value"`
	FirstDataAt       *string                  `json:"first_data_at"`
	LastUpdated       *string                  `json:"last_updated"`
	Quotes            map[string]ContractQuote `json:"quotes"`
}

// ContractQuote is a contract ticker's data in one quote currency.
type ContractQuote struct {
	Price               *float64 `json:"price"`
	Volume24h           *float64 `json:"volume_24h"`
	Volume24hChange24h  *float64 `json:"volume_24h_change_24h"`
	MarketCap           *float64 `json:"market_cap"`
	MarketCapChange24h  *float64 `json:"market_cap_change_24h"`
	PercentChange24h    *float64 `json:"percent_change_24h"`
	PercentChange7d     *float64 `json:"percent_change_7d"`
	PercentChange30d    *float64 `json:"percent_change_30d"`
	PercentChange1y     *float64 `json:"percent_change_1y"`
	ATHPrice            *float64 `json:"ath_price"`
	ATHDate             *string  `json:"ath_date"`
	PercentFromPriceATH *float64 `json:"percent_from_price_ath"`
}

// KeyInfo describes an API key's plan and usage. Usage is free-form.
type KeyInfo struct {
	Plan    *string `json:"plan"`
	Usage   any     `json:"usage"`
	Message *string `json:"message"`
}
