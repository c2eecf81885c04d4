package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/format"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

// historyFlags are the flags shared by the historical endpoints.
type historyFlags struct {
	start    string
	end      string
	interval string
	limit    int
	quote    string
}

// bind registers the flags on cmd. withQuote adds --quote.
func (h *historyFlags) bind(cmd *cobra.Command, intervals string, withQuote bool) {
	cmd.Flags().StringVar(&h.start, "start", "", "Start date (ISO format, e.g., 2024-01-01)")
	cmd.Flags().StringVar(&h.end, "end", "", "End date (ISO format)")
	cmd.Flags().StringVar(&h.interval, "interval", defaultInterval, "Interval ("+intervals+")")
	cmd.Flags().IntVar(&h.limit, "limit", defaultLimit, "Maximum number of results")
	if withQuote {
		cmd.Flags().StringVar(&h.quote, "quote", defaultQuote, "Quote currency")
	}

	// Error is ignored: MarkFlagRequired only fails if flag doesn't exist,
	// which is a programming error caught at development time.
	_ = cmd.MarkFlagRequired("start")
}

func (h *historyFlags) query() (paprika.HistoryQuery, error) {
	if err := checkLimit(h.limit); err != nil {
		return paprika.HistoryQuery{}, err
	}
	return paprika.HistoryQuery{
		Start:    h.start,
		End:      h.end,
		Interval: h.interval,
		Limit:    h.limit,
		Quote:    h.quote,
	}, nil
}

func tickersCmd(a *app) *cobra.Command {
	var (
		limit  int
		quotes string
	)

	cmd := &cobra.Command{
		Use:   "tickers",
		Short: "List tickers (real-time price data for all coins)",
		Example: `  coinpaprika-cli tickers --limit 20
  coinpaprika-cli tickers --quotes USD,BTC`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			q := primaryQuote(quotes)
			return show(cmd, a, paprika.TickersEndpoint(quotes, limit), "/tickers",
				func(t []paprika.Ticker) string { return tickersTable(t, q) })
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	cmd.Flags().StringVar(&quotes, "quotes", defaultQuotes, "Currency quotes, comma-separated")
	return cmd
}

func tickersTable(tickers []paprika.Ticker, quote string) string {
	rows := make([][]string, 0, len(tickers))
	for _, t := range tickers {
		q := t.Quotes[quote]
		rows = append(rows, []string{
			format.OptInt(t.Rank),
			t.Symbol,
			format.Truncate(t.Name, 20),
			format.OptPrice(q.Price),
			format.OptPercent(q.PercentChange24h),
			format.OptUSD(q.MarketCap),
			format.OptUSD(q.Volume24h),
		})
	}
	return render.List([]string{"Rank", "Symbol", "Name", "Price", "24h Change", "Market Cap", "Volume (24h)"}, rows)
}

func tickerCmd(a *app) *cobra.Command {
	var quotes string

	cmd := &cobra.Command{
		Use:   "ticker <coin-id>",
		Short: "Get real-time price data for a specific coin",
		Example: `  coinpaprika-cli ticker btc-bitcoin
  coinpaprika-cli ticker eth-ethereum --quotes USD,BTC
  coinpaprika-cli ticker btc-bitcoin --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := primaryQuote(quotes)
			return show(cmd, a, paprika.TickerEndpoint(args[0], quotes), entityPath("/coin", args[0]),
				func(t paprika.Ticker) string { return tickerTable(t, q) })
		},
	}

	cmd.Flags().StringVar(&quotes, "quotes", defaultQuotes, "Currency quotes, comma-separated")
	return cmd
}

func tickerTable(t paprika.Ticker, quote string) string {
	d := render.NewDetail().
		Add("Name", t.Name).
		Add("Symbol", t.Symbol).
		Add("Rank", format.OptInt(t.Rank))

	if q, ok := t.Quotes[quote]; ok {
		d.Add(fmt.Sprintf("Price (%s)", quote), format.OptPrice(q.Price)).
			Add("Market Cap", format.OptUSD(q.MarketCap)).
			Add("Volume (24h)", format.OptUSD(q.Volume24h)).
			Add("Change (1h)", format.OptPercent(q.PercentChange1h)).
			Add("Change (24h)", format.OptPercent(q.PercentChange24h)).
			Add("Change (7d)", format.OptPercent(q.PercentChange7d)).
			Add("Change (30d)", format.OptPercent(q.PercentChange30d)).
			Add("ATH Price", format.OptPrice(q.ATHPrice)).
			Add("ATH Date", format.OptString(q.ATHDate)).
			Add("% From ATH", format.OptPercent(q.PercentFromPriceATH))
	}

	return d.Add("Circulating Supply", format.OptSupply(t.CirculatingSupply)).
		Add("Total Supply", format.OptSupply(t.TotalSupply)).
		Add("Max Supply", format.OptSupply(t.MaxSupply)).
		Add("Last Updated", format.OptString(t.LastUpdated)).
		String()
}

func tickerHistoryCmd(a *app) *cobra.Command {
	var h historyFlags

	cmd := &cobra.Command{
		Use:   "ticker-history <coin-id>",
		Short: "Get historical ticker data for a coin [PAID: Starter+]",
		Example: `  coinpaprika-cli ticker-history btc-bitcoin --start 2024-01-01
  coinpaprika-cli ticker-history eth-ethereum --start 2024-01-01 --interval 24h --limit 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := h.query()
			if err != nil {
				return err
			}
			return show(cmd, a, paprika.TickerHistoryEndpoint(args[0], q), entityPath("/coin", args[0]), historyTable)
		},
	}

	h.bind(cmd, "5m, 1h, 24h, 7d, 30d, etc.", true)
	return cmd
}

func historyTable(points []paprika.HistoryPoint) string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			format.OptString(p.Timestamp),
			format.OptPrice(p.Price),
			format.OptUSD(p.Volume24h),
			format.OptUSD(p.MarketCap),
		})
	}
	return render.List([]string{"Timestamp", "Price", "Volume (24h)", "Market Cap"}, rows)
}

// ---------------------------------------------------------------------------
// OHLCV
// ---------------------------------------------------------------------------

func ohlcvCmd(a *app) *cobra.Command {
	var h historyFlags

	cmd := &cobra.Command{
		Use:   "ohlcv <coin-id>",
		Short: "Get historical OHLCV data for a coin [PAID: Starter+]",
		Example: `  coinpaprika-cli ohlcv btc-bitcoin --start 2024-01-01
  coinpaprika-cli ohlcv eth-ethereum --start 2024-01-01 --interval 24h --limit 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := h.query()
			if err != nil {
				return err
			}
			return show(cmd, a, paprika.OHLCVHistoryEndpoint(args[0], q), entityPath("/coin", args[0]), ohlcvTable)
		},
	}

	h.bind(cmd, "5m, 15m, 30m, 1h, 6h, 12h, 24h", true)
	return cmd
}

func ohlcvLatestCmd(a *app) *cobra.Command {
	var quote string

	cmd := &cobra.Command{
		Use:     "ohlcv-latest <coin-id>",
		Short:   "Get OHLCV data for the last full day",
		Example: `  coinpaprika-cli ohlcv-latest btc-bitcoin`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, a, paprika.OHLCVLatestEndpoint(args[0], quote), entityPath("/coin", args[0]), ohlcvTable)
		},
	}

	cmd.Flags().StringVar(&quote, "quote", defaultQuote, "Quote currency")
	return cmd
}

func ohlcvTodayCmd(a *app) *cobra.Command {
	var quote string

	cmd := &cobra.Command{
		Use:     "ohlcv-today <coin-id>",
		Short:   "Get OHLCV data for today (incomplete day)",
		Example: `  coinpaprika-cli ohlcv-today btc-bitcoin`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, a, paprika.OHLCVTodayEndpoint(args[0], quote), entityPath("/coin", args[0]), ohlcvTable)
		},
	}

	cmd.Flags().StringVar(&quote, "quote", defaultQuote, "Quote currency")
	return cmd
}

func ohlcvTable(candles []paprika.OHLCV) string {
	rows := make([][]string, 0, len(candles))
	for _, c := range candles {
		rows = append(rows, []string{
			candleDate(c.TimeOpen),
			format.OptPrice(c.Open),
			format.OptPrice(c.High),
			format.OptPrice(c.Low),
			format.OptPrice(c.Close),
			format.OptUSD(c.Volume),
		})
	}
	return render.List([]string{"Date", "Open", "High", "Low", "Close", "Volume"}, rows)
}

// candleDate keeps the YYYY-MM-DD prefix of a timestamp.
func candleDate(ts *string) string {
	s := format.OptString(ts)
	if r := []rune(s); len(r) > 10 {
		return string(r[:10])
	}
	return s
}
