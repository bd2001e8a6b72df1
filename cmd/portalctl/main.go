// Command portalctl manages tenant templates and inspects tenant themes.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/tenantportal/internal/templates"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	apiURL  string
	token   string
	timeout time.Duration
}

func (o *options) baseURL() string {
	return strings.TrimRight(o.apiURL, "/")
}

func (o *options) templateClient() *templates.HTTPClient {
	c := templates.NewHTTPClient(o.baseURL(), o.timeout)
	if o.token != "" {
		c = c.WithToken(o.token)
	}
	return c
}

func newRootCmd() *cobra.Command {
	opts := &options{
		apiURL:  envOr("PORTAL_API_URL", "http://localhost:8080"),
		token:   os.Getenv("PORTAL_TOKEN"),
		timeout: 30 * time.Second,
	}

	root := &cobra.Command{
		Use:          "portalctl",
		Short:        "Manage tenant templates and inspect tenant themes",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", opts.apiURL, "Portal API base URL (env PORTAL_API_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", opts.token, "Bearer token for admin calls (env PORTAL_TOKEN)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", opts.timeout, "HTTP timeout")

	root.AddCommand(newTemplateCmd(opts))
	root.AddCommand(newTenantsCmd())
	root.AddCommand(newSignInCmd(opts))
	return root
}

// newSignInCmd signs in against the portal API and prints the access token.
func newSignInCmd(opts *options) *cobra.Command {
	var email, password, tenantID string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and print an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			payload, _ := json.Marshal(map[string]string{
				"email": email, "password": password, "tenantId": tenantID,
			})

			httpClient := &http.Client{Timeout: opts.timeout}
			resp, err := httpClient.Post(opts.baseURL()+"/api/v1/auth/signin", "application/json", bytes.NewReader(payload))
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
			defer resp.Body.Close()

			var body struct {
				Data struct {
					Token string `json:"token"`
				} `json:"data"`
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			raw, _ := io.ReadAll(resp.Body)
			if err := json.Unmarshal(raw, &body); err != nil {
				return fmt.Errorf("sign in: status=%d body=%s", resp.StatusCode, string(raw))
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("sign in failed: %s: %s", body.Error.Code, body.Error.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), body.Data.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant to activate")
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
