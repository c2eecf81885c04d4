package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/format"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

func platformsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "platforms",
		Short:   "List contract platforms",
		Example: `  coinpaprika-cli platforms`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, a, paprika.PlatformsEndpoint(), "/contracts", platformsTable)
		},
	}
}

func platformsTable(platforms []string) string {
	var b strings.Builder
	b.WriteString("Contract Platforms:")
	for _, p := range platforms {
		b.WriteString("\n  ")
		b.WriteString(p)
	}
	return b.String()
}

func contractsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "contracts <platform-id>",
		Short:   "List contracts on a platform",
		Example: `  coinpaprika-cli contracts eth-ethereum --limit 20`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			return showList(cmd, a, paprika.ContractsEndpoint(args[0]), entityPath("/contracts", args[0]), limit, contractsTable)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	return cmd
}

func contractsTable(contracts []paprika.Contract) string {
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		addr := format.Missing
		if c.Address != nil && *c.Address != "" {
			addr = format.TruncateAddress(*c.Address)
		}
		rows = append(rows, []string{
			addr,
			format.OptString(c.Type),
			format.OptString(c.ID),
			format.OptBool(c.Active),
		})
	}
	return render.List([]string{"Address", "Type", "Coin ID", "Active"}, rows)
}

func contractTickerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "contract-ticker <platform-id> <address>",
		Short:   "Get ticker data by contract address",
		Example: `  coinpaprika-cli contract-ticker eth-ethereum 0xdac17f958d2ee523a2206206994597c13d831ec7`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity := entityPath("/contracts", args[0], args[1])
			return show(cmd, a, paprika.ContractTickerEndpoint(args[0], args[1]), entity, contractTickerTable)
		},
	}
}

func contractTickerTable(t paprika.ContractTicker) string {
	d := render.NewDetail().
		Add("Name", format.OptString(t.Name)).
		Add("Symbol", format.OptString(t.Symbol)).
		Add("Rank", format.OptInt(t.Rank))

	if q, ok := t.Quotes["USD"]; ok {
		d.Add("Price (USD)", format.OptPrice(q.Price)).
			Add("Market Cap", format.OptUSD(q.MarketCap)).
			Add("Volume (24h)", format.OptUSD(q.Volume24h)).
			Add("Change (24h)", format.OptPercent(q.PercentChange24h)).
			Add("Change (7d)", format.OptPercent(q.PercentChange7d))
	}

	return d.Add("Circulating Supply", format.OptSupply(t.CirculatingSupply)).
		Add("Total Supply", format.OptSupply(t.TotalSupply)).
		Add("Last Updated", format.OptString(t.LastUpdated)).
		String()
}

func contractHistoryCmd(a *app) *cobra.Command {
	var h historyFlags

	cmd := &cobra.Command{
		Use:     "contract-history <platform-id> <address>",
		Short:   "Get historical ticker data by contract [PAID: Starter+]",
		Example: `  coinpaprika-cli contract-history eth-ethereum 0xdac17f958d2ee523a2206206994597c13d831ec7 --start 2024-01-01`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := h.query()
			if err != nil {
				return err
			}
			entity := entityPath("/contracts", args[0], args[1])
			return show(cmd, a, paprika.ContractHistoryEndpoint(args[0], args[1], q), entity, historyTable)
		},
	}

	h.bind(cmd, "5m, 1h, 24h, 7d, 30d, etc.", false)
	return cmd
}
