package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/keiba-desk/internal/betting"
)

var betTypesCmd = &cobra.Command{
	Use:   "bet-types",
	Short: "List supported bet types",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, bt := range betting.AllBetTypes {
			order := "unordered"
			if bt.Ordered() {
				order = "ordered"
			}
			fmt.Fprintf(w, "%s %s arity=%d %s min_pool=%d\n",
				padRight(bt.String(), 9), padRight(bt.Label(), 6), bt.Arity(), padRight(order, 9), bt.MinPool())
		}
		return nil
	},
}
