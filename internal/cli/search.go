package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/format"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

const defaultSearchLimit = 10

func searchCmd(a *app) *cobra.Command {
	var (
		categories string
		limit      int
		modifier   string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for coins, exchanges, people, and tags",
		Example: `  coinpaprika-cli search bitcoin
  coinpaprika-cli search ethereum --categories currencies,exchanges --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			ep := paprika.SearchEndpoint(args[0], limit, categories, modifier)
			return show(cmd, a, ep, "/search", searchTable)
		},
	}

	cmd.Flags().StringVar(&categories, "categories", "", "Categories to search (currencies,exchanges,icos,people,tags)")
	cmd.Flags().IntVar(&limit, "limit", defaultSearchLimit, "Maximum number of results per category")
	cmd.Flags().StringVar(&modifier, "modifier", "", "Search modifier (e.g., symbol_search)")
	return cmd
}

// searchTable prints one section per non-empty category.
func searchTable(r paprika.SearchResult) string {
	var b strings.Builder

	if len(r.Currencies) > 0 {
		rows := make([][]string, 0, len(r.Currencies))
		for _, c := range r.Currencies {
			rows = append(rows, []string{format.OptInt(c.Rank), c.Symbol, format.Truncate(c.Name, 30), c.ID})
		}
		b.WriteString("Currencies:\n")
		b.WriteString(render.List([]string{"Rank", "Symbol", "Name", "ID"}, rows))
		b.WriteString("\n\n")
	}

	if len(r.Exchanges) > 0 {
		b.WriteString("Exchanges:\n")
		for _, e := range r.Exchanges {
			fmt.Fprintf(&b, "  %s - %s\n", format.OptString(e.ID), format.OptString(e.Name))
		}
		b.WriteString("\n")
	}

	if len(r.People) > 0 {
		b.WriteString("People:\n")
		for _, p := range r.People {
			fmt.Fprintf(&b, "  %s - %s (teams: %d)\n", format.OptString(p.ID), format.OptString(p.Name), deref(p.TeamsCount))
		}
		b.WriteString("\n")
	}

	if len(r.Tags) > 0 {
		b.WriteString("Tags:\n")
		for _, t := range r.Tags {
			fmt.Fprintf(&b, "  %s - %s (coins: %d)\n", format.OptString(t.ID), format.OptString(t.Name), deref(t.CoinCounter))
		}
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return "No results."
	}
	return strings.TrimRight(b.String(), "\n")
}

func deref(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

// ---------------------------------------------------------------------------
// Price conversion
// ---------------------------------------------------------------------------

func convertCmd(a *app) *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "convert <base-id> <quote-id>",
		Short: "Convert between two currencies",
		Example: `  coinpaprika-cli convert btc-bitcoin eth-ethereum
  coinpaprika-cli convert btc-bitcoin usd-us-dollars --amount 0.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			ep := paprika.PriceConverterEndpoint(args[0], args[1], amt.String())
			return show(cmd, a, ep, "/convert", conversionTable)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "1", "Amount to convert")
	return cmd
}

// parseAmount validates --amount and returns it in canonical decimal form.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w %q: expected a decimal number such as 0.5", ErrInvalidAmount, s)
	}
	return d, nil
}

func conversionTable(c paprika.Conversion) string {
	return render.NewDetail().
		Add("From", fmt.Sprintf("%s (%s)", format.OptString(c.BaseCurrencyName), format.OptString(c.BaseCurrencyID))).
		Add("To", fmt.Sprintf("%s (%s)", format.OptString(c.QuoteCurrencyName), format.OptString(c.QuoteCurrencyID))).
		Add("Amount", exact(c.Amount)).
		Add("Price", exact(c.Price)).
		String()
}

// exact prints n with the shortest decimal representation, never in
// exponent form.
func exact(n *float64) string {
	if n == nil {
		return format.Missing
	}
	return decimal.NewFromFloat(*n).String()
}
