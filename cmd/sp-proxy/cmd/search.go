package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/mfigueredo/amazon-sp-proxy/internal/api/client"
)

func searchCmd() *cobra.Command {
	var (
		domain    string
		pageToken string
		backward  bool
	)

	cmd := &cobra.Command{
		Use:   "search <keywords>",
		Short: "Search the Amazon catalog",
		Long:  "Sends a catalog search to the proxy and displays the matching items.",
		Example: `  sp-proxy search "usb c hub"
  sp-proxy search "usb c hub" --domain de
  sp-proxy search "usb c hub" --page-token <token>
  sp-proxy search "usb c hub" --page-token <token> --previous`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &apiclient.SearchParams{
				Keywords:  args[0],
				Domain:    domain,
				PageToken: pageToken,
			}

			c := newClient()
			var (
				resp *apiclient.SearchResponse
				err  error
			)
			switch {
			case pageToken == "":
				resp, err = c.SearchProducts(cmd.Context(), params)
			case backward:
				resp, err = c.PreviousPage(cmd.Context(), params)
			default:
				resp, err = c.NextPage(cmd.Context(), params)
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return printJSON(resp)
			}
			if resp.Data == nil {
				fmt.Println("no results")
				return nil
			}
			return printSearchTable(resp.Data)
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "marketplace domain suffix (e.g. com, de)")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "opaque page token from a previous search")
	cmd.Flags().BoolVar(&backward, "previous", false, "page backward instead of forward")

	return cmd
}
