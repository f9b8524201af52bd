package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/keiba-desk/internal/config"
	"github.com/yourusername/keiba-desk/internal/datasource"
	"github.com/yourusername/keiba-desk/internal/repository"
	"github.com/yourusername/keiba-desk/internal/service"
	"github.com/yourusername/keiba-desk/internal/session"
)

func testDesk(t *testing.T) *service.Desk {
	t.Helper()
	c, err := config.LoadWithDefaults("testdata/none.yaml")
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return service.NewDesk(datasource.NewSampleProvider(), session.NewStore(time.Hour, time.Hour), nil,
		repository.NewRepositories(nil), &c.Betting, log)
}

func TestPadRightUsesDisplayWidth(t *testing.T) {
	assert.Equal(t, "馬名  ", padRight("馬名", 6))
	assert.Equal(t, "ab    ", padRight("ab", 6))
}

func TestPrintEntries(t *testing.T) {
	desk := testDesk(t)
	ctx := context.Background()
	state, err := desk.CreateSession(ctx)
	require.NoError(t, err)
	rows, err := desk.Entries(ctx, state.ID(), "number")
	require.NoError(t, err)

	var buf bytes.Buffer
	printEntries(&buf, rows)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[1], "アドマイヤテラ")
	assert.Contains(t, lines[1], "3.2")
}

func TestPrintAllocation(t *testing.T) {
	desk := testDesk(t)
	ctx := context.Background()
	state, err := desk.CreateSession(ctx)
	require.NoError(t, err)

	res, err := desk.Allocate(ctx, state.ID(), service.AllocationRequest{
		BetType:  "単勝",
		Selected: []string{"アドマイヤテラ", "カランダガン", "サンプルA"},
		Budget:   1000,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	printAllocation(&buf, res, 50)
	out := buf.String()
	assert.Contains(t, out, "候補数: 3")
	assert.Contains(t, out, "想定払戻: 1066 円")
	assert.Contains(t, out, "合計投資額: 999 円 / 設定総額: 1000 円 (端数 1 円)")
}
