package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/format"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

func exchangesCmd(a *app) *cobra.Command {
	var (
		limit  int
		quotes string
	)

	cmd := &cobra.Command{
		Use:     "exchanges",
		Short:   "List exchanges",
		Example: `  coinpaprika-cli exchanges --limit 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			q := primaryQuote(quotes)
			return showList(cmd, a, paprika.ExchangesEndpoint(quotes), "/exchanges", limit,
				func(e []paprika.Exchange) string { return exchangesTable(e, q) })
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	cmd.Flags().StringVar(&quotes, "quotes", defaultQuotes, "Currency quotes, comma-separated")
	return cmd
}

func exchangesTable(exchanges []paprika.Exchange, quote string) string {
	rows := make([][]string, 0, len(exchanges))
	for _, e := range exchanges {
		rows = append(rows, []string{
			format.OptInt(e.AdjustedRank),
			format.Truncate(e.Name, 25),
			format.OptInt(e.Currencies),
			format.OptInt(e.Markets),
			format.OptUSD(e.Quotes[quote].AdjustedVolume24h),
			score(e.ConfidenceScore, 2),
		})
	}
	return render.List([]string{"Rank", "Name", "Currencies", "Markets", "Volume (24h)", "Confidence"}, rows)
}

func exchangeCmd(a *app) *cobra.Command {
	var quotes string

	cmd := &cobra.Command{
		Use:     "exchange <exchange-id>",
		Short:   "Get detailed info about an exchange",
		Example: `  coinpaprika-cli exchange binance`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := primaryQuote(quotes)
			return show(cmd, a, paprika.ExchangeEndpoint(args[0], quotes), entityPath("/exchange", args[0]),
				func(e paprika.Exchange) string { return exchangeTable(e, q) })
		},
	}

	cmd.Flags().StringVar(&quotes, "quotes", defaultQuotes, "Currency quotes, comma-separated")
	return cmd
}

func exchangeTable(e paprika.Exchange, quote string) string {
	d := render.NewDetail().
		Add("Name", e.Name).
		Add("ID", e.ID).
		Add("Active", format.OptBool(e.Active)).
		Add("Rank (Adjusted)", format.OptInt(e.AdjustedRank)).
		Add("Currencies", format.OptInt(e.Currencies)).
		Add("Markets", format.OptInt(e.Markets)).
		Add("Confidence Score", score(e.ConfidenceScore, 3))

	if q, ok := e.Quotes[quote]; ok {
		d.Add("Volume (24h)", format.OptUSD(q.AdjustedVolume24h)).
			Add("Volume (7d)", format.OptUSD(q.AdjustedVolume7d)).
			Add("Volume (30d)", format.OptUSD(q.AdjustedVolume30d))
	}
	if e.Description != nil && *e.Description != "" {
		d.Add("Description", format.Truncate(*e.Description, 200))
	}
	return d.Add("Last Updated", format.OptString(e.LastUpdated)).String()
}

func exchangeMarketsCmd(a *app) *cobra.Command {
	var (
		limit  int
		quotes string
	)

	cmd := &cobra.Command{
		Use:     "exchange-markets <exchange-id>",
		Short:   "Get markets on an exchange",
		Example: `  coinpaprika-cli exchange-markets binance --limit 10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			q := primaryQuote(quotes)
			return showList(cmd, a, paprika.ExchangeMarketsEndpoint(args[0], quotes), entityPath("/exchange", args[0]), limit,
				func(m []paprika.ExchangeMarket) string { return exchangeMarketsTable(m, q) })
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	cmd.Flags().StringVar(&quotes, "quotes", defaultQuotes, "Currency quotes, comma-separated")
	return cmd
}

func exchangeMarketsTable(markets []paprika.ExchangeMarket, quote string) string {
	rows := make([][]string, 0, len(markets))
	for _, m := range markets {
		q := m.Quotes[quote]
		rows = append(rows, []string{
			format.OptString(m.Pair),
			format.OptPrice(q.Price),
			format.OptUSD(q.Volume24h),
			format.OptString(m.TrustScore),
		})
	}
	return render.List([]string{"Pair", "Price", "Volume (24h)", "Trust"}, rows)
}

func score(n *float64, decimals int) string {
	if n == nil {
		return format.Missing
	}
	return fmt.Sprintf("%.*f", decimals, *n)
}

// ---------------------------------------------------------------------------
// Tags and people
// ---------------------------------------------------------------------------

func tagsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "tags",
		Short:   "List tags/categories",
		Example: `  coinpaprika-cli tags --limit 20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			return showList(cmd, a, paprika.TagsEndpoint(), "/tags", limit, tagsTable)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	return cmd
}

func tagsTable(tags []paprika.Tag) string {
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{
			t.ID,
			format.Truncate(t.Name, 35),
			format.OptString(t.Type),
			format.OptInt(t.CoinCounter),
			format.OptInt(t.ICOCounter),
		})
	}
	return render.List([]string{"ID", "Name", "Type", "Coins", "ICOs"}, rows)
}

func tagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "tag <tag-id>",
		Short:   "Get details about a tag",
		Example: `  coinpaprika-cli tag cryptocurrency`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, a, paprika.TagEndpoint(args[0]), entityPath("/tag", args[0]), tagTable)
		},
	}
}

func tagTable(t paprika.Tag) string {
	d := render.NewDetail().
		Add("ID", t.ID).
		Add("Name", t.Name).
		Add("Type", format.OptString(t.Type)).
		Add("Coins", format.OptInt(t.CoinCounter)).
		Add("ICOs", format.OptInt(t.ICOCounter))
	if t.Description != nil && *t.Description != "" {
		d.Add("Description", format.Truncate(*t.Description, 200))
	}
	return d.String()
}

func personCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "person <person-id>",
		Short:   "Get details about a person in crypto",
		Example: `  coinpaprika-cli person vitalik-buterin`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, a, paprika.PersonEndpoint(args[0]), entityPath("/people", args[0]), personTable)
		},
	}
}

func personTable(p paprika.Person) string {
	d := render.NewDetail().
		Add("Name", format.OptString(p.Name)).
		Add("ID", format.OptString(p.ID)).
		Add("Teams", format.OptInt(p.TeamsCount))

	for _, pos := range p.Positions {
		label := "Position"
		if pos.Position != nil && *pos.Position != "" {
			label = *pos.Position
		}
		d.Add(label, fmt.Sprintf("%s (%s)", format.OptString(pos.CoinName), format.OptString(pos.CoinID)))
	}
	if p.Description != nil && *p.Description != "" {
		d.Add("Description", format.Truncate(*p.Description, 200))
	}
	return d.String()
}
