package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/alnah/coinpaprika-cli/internal/credential"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
)

const onboardWelcome = `┌─────────────────────────────────────────────────┐
│  Welcome to coinpaprika-cli!                    │
│  Crypto market data for developers & AI agents  │
└─────────────────────────────────────────────────┘`

const onboardFreeTier = `
No problem! The free tier works without an API key.
20,000 calls/month, 25+ endpoints, 2,000 assets.

Run coinpaprika-cli plans to see exactly what's included.

For historical data, ticker history, and higher limits:
  https://coinpaprika.com/api/pricing`

const onboardNext = `
You're all set! Try these commands:
  coinpaprika-cli ticker btc-bitcoin      # get Bitcoin price
  coinpaprika-cli global                  # market overview
  coinpaprika-cli search ethereum         # find coins`

func onboardCmd(a *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Interactive setup wizard (configure API key)",
		Example: `  coinpaprika-cli onboard
  coinpaprika-cli onboard --key <YOUR_KEY>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("key") {
				return runOnboardKey(cmd, a, key)
			}
			return runOnboardInteractive(cmd, a)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key to save (skips interactive prompts)")
	return cmd
}

func runOnboardKey(cmd *cobra.Command, a *app, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}
	if err := saveValidatedKey(cmd, a, key); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.env.Stdout, onboardNext)
	return err
}

func runOnboardInteractive(cmd *cobra.Command, a *app) error {
	out := a.env.Stdout
	in := bufio.NewReader(a.env.Stdin)

	fmt.Fprintln(out, onboardWelcome)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Do you have a CoinPaprika API key? (y/n)")

	answer, err := readAnswer(in)
	if err != nil {
		return err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		fmt.Fprintln(out, "\nPaste your API key:")
		key, err := readAnswer(in)
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Fprintln(out, "No key entered. You can set it later with:")
			fmt.Fprintln(out, "  coinpaprika-cli config set-key <YOUR_KEY>")
			return nil
		}
		if err := saveValidatedKey(cmd, a, key); err != nil {
			return err
		}
	default:
		fmt.Fprintln(out, onboardFreeTier)
	}

	_, err = fmt.Fprintln(out, onboardNext)
	return err
}

// saveValidatedKey checks key against /key/info on a client bound to it and
// saves it whether or not the check succeeds.
func saveValidatedKey(cmd *cobra.Command, a *app, key string) error {
	out := a.env.Stdout
	fmt.Fprintln(out, "Validating key...")

	client := a.env.ClientFactory.NewClient(key, a.logger)
	info, fetchErr := paprika.Fetch[json.RawMessage](cmd.Context(), client, paprika.KeyInfoEndpoint())

	if err := a.env.ConfigStore.SaveAPIKey(key); err != nil {
		return err
	}
	path, err := a.env.ConfigStore.Path()
	if err != nil {
		return err
	}

	if fetchErr != nil {
		a.logger.Warn().Err(fetchErr).Msg("key validation failed")
		fmt.Fprintln(out, "Could not validate key (it may still work). Saving anyway.")
	} else {
		fmt.Fprintf(out, "Key validated! Plan: %s\n", planName(info))
	}
	fmt.Fprintf(out, "Saved to %s\n", path)
	fmt.Fprintf(out, "Key: %s\n", credential.Mask(key))
	return nil
}

// planName extracts "plan" from a /key/info document.
func planName(info []byte) string {
	plan := gjson.GetBytes(info, "plan")
	if plan.Type != gjson.String || plan.Str == "" {
		return "unknown"
	}
	return plan.Str
}

// readAnswer reads one trimmed line. End of input counts as an empty answer.
func readAnswer(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
