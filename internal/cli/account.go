package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/format"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

const noKeyHelp = `. The key-info command requires a paid API key.

To get started:
  Get your key:   https://coinpaprika.com/api/pricing
  Set your key:   coinpaprika-cli config set-key <YOUR_KEY>
  Or use onboard: coinpaprika-cli onboard

The free tier works without a key (20,000 calls/mo).
Run coinpaprika-cli plans to see what's included.`

func keyInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "key-info",
		Short: "Get API key info [PAID: requires API key]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cred.Present() {
				return fmt.Errorf("%w%s", ErrNoAPIKey, noKeyHelp)
			}
			info, err := paprika.Fetch[paprika.KeyInfo](cmd.Context(), a.client, paprika.KeyInfoEndpoint())
			if err != nil {
				return err
			}
			usage := ""
			if info.Usage != nil && a.renderer.Format == render.FormatTable {
				if usage, err = render.YAML(info.Usage); err != nil {
					return err
				}
			}
			return a.renderer.Render(info, "/key/info", func() string { return keyInfoTable(info, usage) })
		},
	}
}

func keyInfoTable(info paprika.KeyInfo, usage string) string {
	d := render.NewDetail().Add("Plan", format.OptString(info.Plan))
	if usage != "" {
		d.Add("Usage", strings.TrimRight(usage, "\n"))
	}
	if info.Message != nil && *info.Message != "" {
		d.Add("Message", *info.Message)
	}
	return d.String()
}

func mappingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "Get ID mappings across platforms [PAID: Business+]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showDocument(cmd, a, paprika.MappingsEndpoint(), "/coins/mappings", "Coin ID Mappings:")
		},
	}
}

func changelogCmd(a *app) *cobra.Command {
	var limit, page int

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Get changelog of coin ID changes [PAID: Starter+]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkLimit(limit); err != nil {
				return err
			}
			if page < 1 {
				return fmt.Errorf("%w: --page must be at least 1, got %d", ErrInvalidLimit, page)
			}
			return showDocument(cmd, a, paprika.ChangelogEndpoint(limit, page), "/changelog", "Changelog:")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "Maximum number of results")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

// showDocument renders a payload with no fixed shape. JSON output passes
// it through untouched; tables show it as YAML under title.
func showDocument(cmd *cobra.Command, a *app, ep paprika.Endpoint, entity, title string) error {
	doc, err := paprika.Fetch[json.RawMessage](cmd.Context(), a.client, ep)
	if err != nil {
		return err
	}

	body := ""
	if a.renderer.Format == render.FormatTable {
		if body, err = render.YAMLFromJSON(doc); err != nil {
			return err
		}
	}
	return a.renderer.Render(doc, entity, func() string {
		return title + "\n" + strings.TrimRight(body, "\n")
	})
}
