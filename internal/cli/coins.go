package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/format"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

// Default list sizes.
const (
	defaultCoinsLimit = 100
	defaultLimit      = 50
	defaultQuotes     = "USD"
	defaultQuote      = "usd"
	defaultInterval   = "24h"
)

func globalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "global",
		Short: "Global crypto market overview (market cap, volume, BTC dominance)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, a, paprika.GlobalEndpoint(), "", globalTable)
		},
	}
}

func globalTable(g paprika.GlobalData) string {
	dominance := format.Missing
	if g.BitcoinDominancePercent != nil {
		dominance = fmt.Sprintf("%.1f%%", *g.BitcoinDominancePercent)
	}
	return render.NewDetail().
		Add("Market Cap", format.OptUSD(g.MarketCapUSD)).
		Add("Volume (24h)", format.OptUSD(g.Volume24hUSD)).
		Add("BTC Dominance", dominance).
		Add("Cryptocurrencies", format.OptInt(g.CryptocurrenciesNumber)).
		Add("Market Cap ATH", format.OptUSD(g.MarketCapATHValue)).
		Add("Market Cap ATH Date", format.OptString(g.MarketCapATHDate)).
		Add("Market Cap 24h Change", format.OptPercent(g.MarketCapChange24h)).
		Add("Volume 24h Change", format.OptPercent(g.Volume24hChange24h)).
		String()
}

func coinsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "coins",
		Short: "List all coins",
		Example: `  coinpaprika-cli coins --limit 10
  coinpaprika-cli coins --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			return showList(cmd, a, paprika.CoinsEndpoint(), "/coins", limit, coinsTable)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultCoinsLimit, "Maximum number of results")
	return cmd
}

func coinsTable(coins []paprika.Coin) string {
	rows := make([][]string, 0, len(coins))
	for _, c := range coins {
		rows = append(rows, []string{
			format.OptInt(c.Rank),
			c.Symbol,
			format.Truncate(c.Name, 30),
			format.OptString(c.Type),
			format.OptBool(c.IsActive),
		})
	}
	return render.List([]string{"Rank", "Symbol", "Name", "Type", "Active"}, rows)
}

func coinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "coin <coin-id>",
		Short: "Get detailed info about a specific coin",
		Example: `  coinpaprika-cli coin btc-bitcoin
  coinpaprika-cli coin eth-ethereum --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, a, paprika.CoinEndpoint(args[0]), entityPath("/coin", args[0]), coinTable)
		},
	}
}

func coinTable(c paprika.CoinDetail) string {
	d := render.NewDetail().
		Add("Name", c.Name).
		Add("Symbol", c.Symbol).
		Add("Rank", format.OptInt(c.Rank)).
		Add("Type", format.OptString(c.Type)).
		Add("Active", format.OptBool(c.IsActive)).
		Add("Started", format.OptString(c.StartedAt)).
		Add("Proof Type", format.OptString(c.ProofType)).
		Add("Hash Algorithm", format.OptString(c.HashAlgorithm)).
		Add("Org Structure", format.OptString(c.OrgStructure)).
		Add("Dev Status", format.OptString(c.DevelopmentStatus)).
		Add("Open Source", format.OptBool(c.OpenSource)).
		Add("Hardware Wallet", format.OptBool(c.HardwareWallet))

	if c.Tags != nil {
		names := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			names = append(names, t.Name)
		}
		d.Add("Tags", format.Truncate(strings.Join(names, ", "), 80))
	}
	if c.Description != nil && *c.Description != "" {
		d.Add("Description", format.Truncate(*c.Description, 200))
	}
	if c.Whitepaper != nil && c.Whitepaper.Link != nil {
		d.Add("Whitepaper", *c.Whitepaper.Link)
	}
	return d.String()
}

func coinEventsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "coin-events <coin-id>",
		Short: "Get events for a coin",
		Example: `  coinpaprika-cli coin-events btc-bitcoin
  coinpaprika-cli coin-events eth-ethereum --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			return showList(cmd, a, paprika.CoinEventsEndpoint(args[0]), entityPath("/coin", args[0]), limit, eventsTable)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	return cmd
}

func eventsTable(events []paprika.CoinEvent) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			format.OptString(e.Date),
			format.Truncate(format.OptString(e.Name), 50),
			format.OptBool(e.IsConference),
		})
	}
	return render.List([]string{"Date", "Name", "Conference"}, rows)
}

func coinExchangesCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "coin-exchanges <coin-id>",
		Short:   "Get exchanges where a coin is traded",
		Example: `  coinpaprika-cli coin-exchanges btc-bitcoin --limit 10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			return showList(cmd, a, paprika.CoinExchangesEndpoint(args[0]), entityPath("/coin", args[0]), limit, coinExchangesTable)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	return cmd
}

func coinExchangesTable(exchanges []paprika.CoinExchange) string {
	rows := make([][]string, 0, len(exchanges))
	for _, e := range exchanges {
		share := format.Missing
		if e.AdjustedVolume24hShare != nil {
			share = fmt.Sprintf("%.2f%%", *e.AdjustedVolume24hShare)
		}
		rows = append(rows, []string{e.Name, share})
	}
	return render.List([]string{"Exchange", "Volume Share (24h)"}, rows)
}

func coinMarketsCmd(a *app) *cobra.Command {
	var (
		quotes string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "coin-markets <coin-id>",
		Short:   "Get markets for a coin",
		Example: `  coinpaprika-cli coin-markets btc-bitcoin --quotes USD,BTC`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			q := primaryQuote(quotes)
			return showList(cmd, a, paprika.CoinMarketsEndpoint(args[0], quotes), entityPath("/coin", args[0]), limit,
				func(m []paprika.CoinMarket) string { return coinMarketsTable(m, q) })
		},
	}

	cmd.Flags().StringVar(&quotes, "quotes", defaultQuotes, "Currency quotes, comma-separated")
	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	return cmd
}

func coinMarketsTable(markets []paprika.CoinMarket, quote string) string {
	rows := make([][]string, 0, len(markets))
	for _, m := range markets {
		q := m.Quotes[quote]
		rows = append(rows, []string{
			format.OptString(m.ExchangeName),
			format.OptString(m.Pair),
			format.OptPrice(q.Price),
			format.OptUSD(q.Volume24h),
			format.OptString(m.TrustScore),
		})
	}
	return render.List([]string{"Exchange", "Pair", "Price", "Volume (24h)", "Trust"}, rows)
}
