package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yourusername/keiba-desk/internal/scoring"
)

var sortFlag string

func init() {
	entriesCmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "Sort order: score, odds, popularity, number (default from config)")
}

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Print the entry table",
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
		rows, err := d.desk.Entries(ctx, state.ID(), sortFlag)
		if err != nil {
			return err
		}

		printEntries(cmd.OutOrStdout(), rows)
		return nil
	},
}

// padRight pads to a display width so full-width names line up
func padRight(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func printEntries(w io.Writer, rows []scoring.ScoredEntry) {
	header := []string{
		padRight("馬番", 4), padRight("馬名", 16), padRight("性齢", 4), padRight("騎手", 10),
		padRight("オッズ", 6), padRight("人気", 4), padRight("スコア", 6), padRight("印", 2),
	}
	fmt.Fprintln(w, strings.Join(header, " "))

	for _, r := range rows {
		cols := []string{
			padRight(fmt.Sprintf("%d", r.Number), 4),
			padRight(r.Name, 16),
			padRight(r.SexAge, 4),
			padRight(r.Jockey, 10),
			padRight(r.Odds.StringFixed(1), 6),
			padRight(fmt.Sprintf("%d", r.Popularity), 4),
			padRight(fmt.Sprintf("%.0f", r.Total), 6),
			padRight(string(r.Mark), 2),
		}
		fmt.Fprintln(w, strings.Join(cols, " "))
	}
}
