package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yourusername/keiba-desk/internal/betting"
	"github.com/yourusername/keiba-desk/internal/service"
)

var (
	betTypeFlag   string
	horsesFlag    []string
	budgetFlag    int
	noAutoFlag    bool
	overridesFlag map[string]int
	limitFlag     int
)

func init() {
	allocateCmd.Flags().StringVarP(&betTypeFlag, "bet-type", "t", "single", "Bet type code or label (単勝, 馬連, ...)")
	allocateCmd.Flags().StringSliceVar(&horsesFlag, "horse", nil, "Selected horse; repeat for each (empty uses the top-scored pool)")
	allocateCmd.Flags().IntVarP(&budgetFlag, "budget", "b", -1, "Total budget in yen (default from config)")
	allocateCmd.Flags().BoolVar(&noAutoFlag, "no-auto", false, "List combinations with zero amounts instead of splitting the budget")
	allocateCmd.Flags().StringToIntVar(&overridesFlag, "override", nil, "Per-row amount, e.g. --override \"A - B\"=500")
	allocateCmd.Flags().IntVar(&limitFlag, "limit", 0, "Rows to print (default from config)")
}

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Split a budget across the combinations of a bet type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := setupDependencies(ctx, false)
		if err != nil {
			return err
		}
		defer d.Close()

		state, err := d.desk.CreateSession(ctx)
		if err != nil {
			return err
		}

		req := service.AllocationRequest{
			BetType:   betTypeFlag,
			Selected:  horsesFlag,
			Budget:    budgetFlag,
			Overrides: overridesFlag,
		}
		if req.Budget < 0 {
			req.Budget = d.desk.DefaultBudget()
		}
		if noAutoFlag {
			auto := false
			req.Auto = &auto
		}

		res, err := d.desk.Allocate(ctx, state.ID(), req)
		if err != nil {
			return err
		}

		limit := limitFlag
		if limit <= 0 {
			limit = d.desk.DisplayLimit()
		}
		printAllocation(cmd.OutOrStdout(), res, limit)
		return nil
	},
}

func printAllocation(w io.Writer, res *betting.Result, limit int) {
	fmt.Fprintf(w, "%s (%s)  候補数: %d (表示上限 %d 件)\n", res.BetType.Label(), res.BetType, res.Len(), limit)
	if res.FellBack {
		fmt.Fprintf(w, "選択不足のためスコア上位を使用: %v\n", res.Pool)
	}

	for _, row := range res.Display(limit) {
		line := fmt.Sprintf("%s %6d 円", padRight(row.Combination.Key(), 40), row.Amount)
		if ret, ok := res.EstimatedReturn(row.Combination.Key()); ok {
			line += fmt.Sprintf("  想定払戻: %s 円", ret.StringFixed(0))
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "合計投資額: %d 円 / 設定総額: %d 円 (端数 %d 円)\n", res.Total(), res.Budget, res.Shortfall())
}
