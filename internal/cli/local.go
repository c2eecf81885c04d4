package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/credential"
	"github.com/alnah/coinpaprika-cli/internal/format"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

// ---------------------------------------------------------------------------
// config
// ---------------------------------------------------------------------------

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `Manage the persisted configuration (~/.coinpaprika/config.json).

The API key is resolved in this order: --api-key flag, COINPAPRIKA_API_KEY,
then the config file. Without a key the free tier is used.`,
		Example: `  coinpaprika-cli config show
  coinpaprika-cli config set-key <YOUR_KEY>
  coinpaprika-cli config reset`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runConfigShow(a)
			},
		},
		&cobra.Command{
			Use:   "set-key <key>",
			Short: "Set CoinPaprika API key",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runConfigSetKey(a, args[0])
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset configuration (delete config file)",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runConfigReset(a)
			},
		},
	)

	return cmd
}

// configView is the JSON form of `config show`. APIKey is masked.
type configView struct {
	ConfigFile string  `json:"config_file"`
	APIKey     *string `json:"api_key"`
	KeySource  string  `json:"key_source"`
	BaseURL    string  `json:"base_url"`
}

func runConfigShow(a *app) error {
	path, err := a.env.ConfigStore.Path()
	if err != nil {
		return err
	}

	source := credential.Provenance(a.apiKey, a.env.Getenv, a.env.ConfigStore)
	view := configView{
		ConfigFile: path,
		KeySource:  source.String(),
		BaseURL:    a.client.BaseURL(),
	}
	if a.cred.Present() {
		masked := credential.Mask(a.cred.Key)
		view.APIKey = &masked
	}

	return a.renderer.RenderBare(view, func() string {
		key := "Not set"
		if view.APIKey != nil {
			key = *view.APIKey
		}
		return render.NewDetail().
			Add("Config File", view.ConfigFile).
			Add("API Key", key).
			Add("Key Source", view.KeySource).
			Add("CoinPaprika URL", view.BaseURL).
			String()
	})
}

func runConfigSetKey(a *app, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}
	if err := a.env.ConfigStore.SaveAPIKey(key); err != nil {
		return err
	}
	path, err := a.env.ConfigStore.Path()
	if err != nil {
		return err
	}
	a.logger.Info().Str("path", path).Msg("api key saved")

	saved := struct {
		SavedTo string `json:"saved_to"`
		APIKey  string `json:"api_key"`
	}{path, credential.Mask(key)}

	return a.renderer.RenderBare(saved, func() string {
		return fmt.Sprintf("API key saved to %s\nKey: %s", saved.SavedTo, saved.APIKey)
	})
}

func runConfigReset(a *app) error {
	deleted, err := a.env.ConfigStore.Reset()
	if err != nil {
		return err
	}
	path, err := a.env.ConfigStore.Path()
	if err != nil {
		return err
	}
	a.logger.Info().Str("path", path).Bool("deleted", deleted).Msg("config reset")

	result := struct {
		Deleted bool   `json:"deleted"`
		Path    string `json:"path"`
	}{deleted, path}

	return a.renderer.RenderBare(result, func() string {
		if !deleted {
			return "No configuration file to delete."
		}
		return "Configuration deleted."
	})
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

type statusReport struct {
	CoinPaprika      apiStatus `json:"coinpaprika"`
	APIKeyConfigured bool      `json:"api_key_configured"`
}

type apiStatus struct {
	Status         string `json:"status"`
	ResponseTimeMS int64  `json:"response_time_ms"`
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check CoinPaprika API health status and response time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), a)
		},
	}
}

func runStatus(ctx context.Context, a *app) error {
	start := a.env.Now()
	_, err := paprika.Fetch[json.RawMessage](ctx, a.client, paprika.GlobalEndpoint())
	elapsed := a.env.Now().Sub(start)

	if errors.Is(err, context.Canceled) {
		return err
	}

	report := statusReport{
		CoinPaprika:      apiStatus{Status: "OK", ResponseTimeMS: elapsed.Milliseconds()},
		APIKeyConfigured: a.cred.Present(),
	}
	if err != nil {
		report.CoinPaprika.Status = "ERROR"
		a.logger.Warn().Err(err).Msg("status check failed")
	}

	return a.renderLocal(report, "/status", func() string {
		key, plan := "Not set (free tier)", "Free (20,000 calls/mo)"
		if report.APIKeyConfigured {
			key, plan = "Configured", "Paid (run key-info for details)"
		}
		return render.NewDetail().
			Add("CoinPaprika API", fmt.Sprintf("%s (%s)", report.CoinPaprika.Status, format.Latency(elapsed))).
			Add("API Key", key).
			Add("Plan", plan).
			String()
	})
}

// ---------------------------------------------------------------------------
// attribution
// ---------------------------------------------------------------------------

type attributionSnippets struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	API      string `json:"api"`
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Badge    string `json:"badge"`
}

const attributionText = `  --- CoinPaprika attribution snippets (copy & paste) ---

  HTML:
    <a href="https://coinpaprika.com">Powered by CoinPaprika</a>

  React/JSX:
    <a href="https://coinpaprika.com" target="_blank" rel="noopener">
      Powered by CoinPaprika
    </a>

  Markdown:
    [Powered by CoinPaprika](https://coinpaprika.com)

  Plain text:
    Data provided by CoinPaprika (https://coinpaprika.com)

  GitHub README badge:
    [![CoinPaprika](https://img.shields.io/badge/data-CoinPaprika-green)](https://coinpaprika.com)

  Data is free forever. Attribution is appreciated, not required.
  API: api.coinpaprika.com`

func attributionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attribution",
		Short: "Get ready-to-paste attribution snippets for CoinPaprika",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			snippets := attributionSnippets{
				Name:     render.SourceName,
				URL:      render.SiteURL,
				API:      render.APIDocsURL,
				HTML:     `<a href="https://coinpaprika.com">Powered by CoinPaprika</a>`,
				Markdown: "[Powered by CoinPaprika](https://coinpaprika.com)",
				Badge:    "https://img.shields.io/badge/data-CoinPaprika-green",
			}
			return a.renderLocal(snippets, "/attribution", func() string { return attributionText })
		},
	}
}

// ---------------------------------------------------------------------------
// plans
// ---------------------------------------------------------------------------

type plansInfo struct {
	FreeTier   freeTier `json:"free_tier"`
	PaidPlans  string   `json:"paid_plans"`
	PricingURL string   `json:"pricing_url"`
}

type freeTier struct {
	PriceUSD       int      `json:"price_usd_per_month"`
	CallsPerMonth  int      `json:"calls_per_month"`
	UpdateInterval string   `json:"update_interval"`
	Endpoints      string   `json:"endpoints"`
	Assets         int      `json:"assets"`
	Usage          string   `json:"usage"`
	History        []string `json:"historical_data"`
	NotIncluded    []string `json:"not_included"`
}

var plans = plansInfo{
	FreeTier: freeTier{
		PriceUSD:       0,
		CallsPerMonth:  20000,
		UpdateInterval: "~10 minutes",
		Endpoints:      "25+",
		Assets:         2000,
		Usage:          "Personal use",
		History: []string{
			"Daily OHLCV:    up to 1 year back",
			"Hourly OHLCV:   last 24 hours",
			"OHLCV interval: 24h only",
			"5-min / ticker history: not available",
		},
		NotIncluded: []string{
			"Circulating supply",
			"API ID mappings",
			"WebSockets",
			"Redistribution rights",
			"SLA / dedicated infrastructure",
		},
	},
	PaidPlans: "Full history, 5-min intervals, circulating supply, higher limits, " +
		"WebSockets, commercial use, and priority support.",
	PricingURL: "https://coinpaprika.com/api/pricing",
}

func plansCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "Show free tier details and paid plan overview",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.renderer.RenderBare(plans, plansText)
		},
	}
}

func plansText() string {
	var b strings.Builder
	line := func(s string) { b.WriteString(s + "\n") }

	line("")
	line("  --- Free tier ($0/mo, no API key needed) ---")
	line("")
	line("  Rate limits")
	line("    20,000 calls/month")
	line("    Data updates every " + plans.FreeTier.UpdateInterval)
	line("")
	line("  Coverage")
	line("    " + plans.FreeTier.Endpoints + " endpoints")
	line("    2,000 assets")
	line("    " + plans.FreeTier.Usage)
	line("")
	line("  Historical data")
	for _, h := range plans.FreeTier.History {
		line("    " + h)
	}
	line("")
	line("  Not included")
	for _, n := range plans.FreeTier.NotIncluded {
		line("    " + n)
	}
	line("")
	line("  --- Need more? ---")
	line("")
	line("  Paid plans add: full history, 5-min intervals, circulating supply,")
	line("  higher limits, WebSockets, commercial use, and priority support.")
	line("")
	line("  See current pricing:  " + plans.PricingURL)
	line("  Set your API key:     coinpaprika-cli config set-key <KEY>")
	return b.String()
}
