package pipeline_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func rawFile(name, content string) pipeline.RawFile {
	return pipeline.RawFile{
		Name:        name,
		ContentType: "image/png",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func brokenFile(name string) pipeline.RawFile {
	return pipeline.RawFile{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("stream closed")
		},
	}
}

func rawFiles(n int) []pipeline.RawFile {
	files := make([]pipeline.RawFile, n)
	for i := range files {
		files[i] = rawFile(string(rune('a'+i))+".png", "png-bytes")
	}
	return files
}

func newRegistered(t *testing.T, n int) *pipeline.State {
	t.Helper()
	s := pipeline.NewState(uuid.New(), pipeline.WithClock(clock))
	require.NoError(t, s.Register(rawFiles(n)))
	return s
}

func buyTx(symbol string, qty, price float64, date string) domain.ExtractedTransaction {
	q := decimal.NewFromFloat(qty)
	p := decimal.NewFromFloat(price)
	return domain.ExtractedTransaction{
		Symbol:    symbol,
		TradeType: domain.TradeTypeBuy,
		Quantity:  q,
		Price:     p,
		Amount:    q.Mul(p),
		Date:      date,
		Broker:    "IBKR",
		Currency:  "USD",
	}
}

func result(txs ...domain.ExtractedTransaction) *domain.ExtractResult {
	return &domain.ExtractResult{TransactionCount: len(txs), Transactions: txs}
}

func complete(t *testing.T, s *pipeline.State, index int, r *domain.ExtractResult) {
	t.Helper()
	require.NoError(t, s.UpdateStatus(s.Generation(), index, pipeline.StatusUpdate{
		Status: domain.FileStatusCompleted,
		Result: r,
	}))
}

func fail(t *testing.T, s *pipeline.State, index int, msg string) {
	t.Helper()
	require.NoError(t, s.UpdateStatus(s.Generation(), index, pipeline.StatusUpdate{
		Status: domain.FileStatusError,
		Error:  msg,
	}))
}

func drain(ch <-chan domain.Event) []domain.Event {
	var out []domain.Event
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

func countEvents(events []domain.Event, typ domain.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}
