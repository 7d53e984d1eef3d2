package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func productCmd() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Inspect a single catalog item",
	}
	cmd.PersistentFlags().
		StringVar(&domain, "domain", "", "marketplace domain suffix (e.g. com, de)")

	get := &cobra.Command{
		Use:   "get <asin>",
		Short: "Show a catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().GetProduct(cmd.Context(), args[0], domain)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(resp)
			}
			if resp.Data == nil {
				fmt.Println("not found")
				return nil
			}
			return printProductDetail(resp.Data)
		},
	}

	offers := &cobra.Command{
		Use:   "offers <asin>",
		Short: "Show current offers for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().GetOffers(cmd.Context(), args[0], domain)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	var price float64
	fees := &cobra.Command{
		Use:   "fees <asin>",
		Short: "Estimate selling fees for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().GetFees(cmd.Context(), args[0], domain, price)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	fees.Flags().Float64Var(&price, "price", 0, "listing price to estimate fees against")
	cobra.CheckErr(fees.MarkFlagRequired("price"))

	cmd.AddCommand(get)
	cmd.AddCommand(offers)
	cmd.AddCommand(fees)

	return cmd
}
