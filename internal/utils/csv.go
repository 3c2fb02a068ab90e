package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"tradeJournal/internal/domain"
)

// csv column layout for trade history imports
var tradeHeader = []string{
	"ticket", "symbol", "direction", "volume",
	"entry_price", "exit_price", "stop_loss", "take_profit",
	"profit", "commission", "swap",
	"entry_time", "exit_time", "strategy", "status",
}

// ReadTradesFromCSV loads historical trades from a terminal export. Rows
// that fail to parse are skipped, not fatal: the returned count tells the
// caller how many were dropped so it can log them.
func ReadTradesFromCSV(filename string) ([]*domain.Trade, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(tradeHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header of %s: %w", filename, err)
	}
	if !matchesHeader(header) {
		return nil, 0, fmt.Errorf("unexpected CSV header in %s: %v", filename, header)
	}

	var trades []*domain.Trade
	var skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		trade, err := parseTradeRecord(record)
		if err != nil {
			skipped++
			continue
		}
		trades = append(trades, trade)
	}
	return trades, skipped, nil
}

func matchesHeader(header []string) bool {
	if len(header) != len(tradeHeader) {
		return false
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != tradeHeader[i] {
			return false
		}
	}
	return true
}

func parseTradeRecord(record []string) (*domain.Trade, error) {
	ticket, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket %q: %w", record[0], err)
	}

	t := &domain.Trade{
		Ticket:    ticket,
		Symbol:    strings.TrimSpace(record[1]),
		Direction: domain.Direction(strings.ToUpper(strings.TrimSpace(record[2]))),
		Strategy:  strings.TrimSpace(record[13]),
		Status:    domain.TradeStatus(strings.ToUpper(strings.TrimSpace(record[14]))),
	}

	floats := []struct {
		dst *float64
		idx int
	}{
		{&t.Volume, 3}, {&t.EntryPrice, 4}, {&t.ExitPrice, 5},
		{&t.StopLoss, 6}, {&t.TakeProfit, 7},
		{&t.Profit, 8}, {&t.Commission, 9}, {&t.Swap, 10},
	}
	for _, f := range floats {
		v, err := parseFloat(record[f.idx])
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", tradeHeader[f.idx], record[f.idx], err)
		}
		*f.dst = v
	}

	t.EntryTime, err = time.Parse(time.RFC3339, record[11])
	if err != nil {
		return nil, fmt.Errorf("invalid entry_time %q: %w", record[11], err)
	}
	if record[12] != "" {
		t.ExitTime, err = time.Parse(time.RFC3339, record[12])
		if err != nil {
			return nil, fmt.Errorf("invalid exit_time %q: %w", record[12], err)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// parseFloat treats an empty field as "not set".
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
