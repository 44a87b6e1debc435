package report

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"StockSignal/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guregu/null/v6"
)

const dateLayout = "2006-01-02"

func num(v null.Float, prec int) string {
	if !v.Valid {
		return "—"
	}
	return fmt.Sprintf("%.*f", prec, v.Float64)
}

func signalCell(s model.RowSignal) string {
	if !s.Ready {
		return "n/a"
	}
	return s.Signal.Label()
}

func tableRows(an *model.Analysis, n int) [][]string {
	tail := an.Tail(n)
	rows := make([][]string, len(tail))
	for i, r := range tail {
		rows[i] = []string{
			r.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", r.Close),
			num(r.RSI, 1),
			num(r.MACDHist, 3),
			signalCell(r.Signal),
		}
	}
	return rows
}

var headers = []string{"Date", "Close", "RSI", "MACD", "Signal"}

// FormatText renders one symbol as a terminal block: the last n rows, the
// latest signal, the forecast and any warnings.
func FormatText(rep *SymbolReport, n int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("== %s ==\n", rep.Symbol))
	if rep.Err != nil {
		b.WriteString(fmt.Sprintf("warning: no data for %s: %v\n", rep.Symbol, rep.Err))
		return b.String()
	}
	an := rep.Analysis

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(tableRows(an, n)...)
	b.WriteString(t.String())
	b.WriteString("\n")

	if an.SignalErr == nil {
		b.WriteString(fmt.Sprintf("Signal: %s\n", an.Signal.Label()))
	} else {
		b.WriteString("Signal: not enough history\n")
	}
	if an.ForecastErr == nil {
		b.WriteString(fmt.Sprintf("Forecast: %s\n", an.Forecast.Message()))
	} else {
		b.WriteString("Forecast: not enough history\n")
	}
	for _, w := range rep.Warnings {
		b.WriteString(fmt.Sprintf("warning: %v\n", w))
	}
	return b.String()
}

// WriteText writes every report as its own block, in order.
func WriteText(w io.Writer, reports []SymbolReport, n int) error {
	for i := range reports {
		if _, err := io.WriteString(w, FormatText(&reports[i], n)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// MaxMessageRunes is the Telegram limit for one message.
const MaxMessageRunes = 4096

// maxErrorRunes caps provider error text, which may carry a response body.
const maxErrorRunes = 300

// FormatHTML renders the batch as Telegram HTML messages. Symbol blocks are
// never split; they are packed in order into messages of at most
// MaxMessageRunes runes. The title goes on the first message.
func FormatHTML(reports []SymbolReport, n int) []string {
	var msgs []string
	cur := fmt.Sprintf("📊 <b>Stock signals</b> | %s\n", time.Now().Format(dateLayout))
	for i := range reports {
		block := symbolHTML(&reports[i], n)
		for rows := n - 1; runeLen(block) > MaxMessageRunes && rows >= 0; rows-- {
			block = symbolHTML(&reports[i], rows)
		}
		if runeLen(cur)+runeLen(block) > MaxMessageRunes {
			msgs = append(msgs, cur)
			cur = ""
		}
		cur += block
	}
	if cur != "" {
		msgs = append(msgs, cur)
	}
	return msgs
}

func symbolHTML(rep *SymbolReport, n int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n📌 <b>%s</b>\n", html.EscapeString(rep.Symbol)))
	if rep.Err != nil {
		b.WriteString(fmt.Sprintf("⚠️ no data: %s\n", html.EscapeString(clip(rep.Err.Error(), maxErrorRunes))))
		return b.String()
	}
	an := rep.Analysis

	if n > 0 {
		var tb strings.Builder
		tb.WriteString(fmt.Sprintf("%-10s %9s %6s %8s %s\n", "Date", "Close", "RSI", "MACD", "Signal"))
		for _, r := range tableRows(an, n) {
			tb.WriteString(fmt.Sprintf("%-10s %9s %6s %8s %s\n", r[0], r[1], r[2], r[3], r[4]))
		}
		b.WriteString("<pre>" + html.EscapeString(tb.String()) + "</pre>\n")
	}

	if an.SignalErr == nil {
		b.WriteString(fmt.Sprintf("Signal: <b>%s</b>\n", an.Signal.Label()))
	}
	if an.ForecastErr == nil {
		b.WriteString(forecastIcon(an.Forecast) + " " + an.Forecast.Message() + "\n")
	}
	for _, w := range rep.Warnings {
		b.WriteString("⚠️ " + html.EscapeString(clip(w.Error(), maxErrorRunes)) + "\n")
	}
	return b.String()
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func forecastIcon(f model.Forecast) string {
	switch f {
	case model.ForecastNearOversold:
		return "🔮"
	case model.ForecastAboveSellThreshold:
		return "⚠️"
	default:
		return "✅"
	}
}

// FormatSummary returns one line per symbol with its latest signal.
func FormatSummary(reports []SymbolReport) string {
	var b strings.Builder
	for i := range reports {
		rep := &reports[i]
		switch {
		case rep.Err != nil:
			b.WriteString(fmt.Sprintf("%s: no data\n", rep.Symbol))
		case rep.Analysis.SignalErr != nil:
			b.WriteString(fmt.Sprintf("%s: not enough history\n", rep.Symbol))
		default:
			b.WriteString(fmt.Sprintf("%s: %s\n", rep.Symbol, rep.Analysis.Signal.Label()))
		}
	}
	return b.String()
}

// WriteChartCSV writes date, close, EMA20 and EMA50 over the whole window.
// Undefined EMAs are empty cells.
func WriteChartCSV(w io.Writer, an *model.Analysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "close", "ema20", "ema50"}); err != nil {
		return err
	}
	for _, p := range an.Chart() {
		rec := []string{p.Date.Format(dateLayout), fmt.Sprintf("%.4f", p.Close), csvNum(p.EMA20), csvNum(p.EMA50)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvNum(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return fmt.Sprintf("%.4f", v.Float64)
}
