package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"StockSignal/internal/notifier"
	"StockSignal/internal/recorder"
	"StockSignal/internal/report"
	"StockSignal/internal/watchlist"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages the cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Assembler *report.Assembler
	Watchlist *watchlist.Manager
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Log       *zap.Logger
	Rows      int
	Ctx       context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler. rows is the number of table rows per symbol.
func NewScheduler(ctx context.Context, asm *report.Assembler, wl *watchlist.Manager, n notifier.Notifier, rec recorder.Recorder, rows int, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if n == nil {
		n = notifier.LogNotifier{Log: log}
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Assembler: asm,
		Watchlist: wl,
		Notifier:  n,
		Recorder:  rec,
		Log:       log,
		Rows:      rows,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// Register adds the daily report task.
func (s *Scheduler) Register(reportCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunNow executes the report task immediately and returns the reports.
func (s *Scheduler) RunNow() []report.SymbolReport {
	return s.run()
}

func (s *Scheduler) reportTask() {
	s.run()
}

func (s *Scheduler) run() []report.SymbolReport {
	symbols := s.Watchlist.List()
	s.Log.Info("running report", zap.Strings("symbols", symbols))
	if len(symbols) == 0 {
		s.trySend("Watchlist is empty. Use /add SYMBOL.")
		return nil
	}

	runAt := s.now()
	reports := s.Assembler.Run(s.Ctx, symbols)
	for _, msg := range report.FormatHTML(reports, s.Rows) {
		s.trySend(msg)
	}
	s.record(runAt, reports)
	return reports
}

func (s *Scheduler) record(runAt time.Time, reports []report.SymbolReport) {
	for i := range reports {
		rep := &reports[i]
		if rep.Analysis != nil {
			if err := s.Recorder.RecordSnapshot(recorder.SnapshotFromAnalysis(runAt, rep.Analysis)); err != nil {
				s.Log.Error("record snapshot", zap.String("symbol", rep.Symbol), zap.Error(err))
			}
		}
		problems := rep.Warnings
		if rep.Err != nil {
			problems = append([]error{rep.Err}, problems...)
		}
		for _, p := range problems {
			w := &recorder.Warning{
				RunAt:   runAt,
				Symbol:  rep.Symbol,
				Kind:    report.WarningKind(p),
				Message: p.Error(),
			}
			if err := s.Recorder.RecordWarning(w); err != nil {
				s.Log.Error("record warning", zap.String("symbol", rep.Symbol), zap.Error(err))
			}
		}
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Telegram appends the bot name in groups: /report@SomeBot
	name, _, _ := strings.Cut(fields[0], "@")
	args := fields[1:]

	switch name {
	case "/report":
		s.run()
		return ""
	case "/list":
		symbols := s.Watchlist.List()
		if len(symbols) == 0 {
			return "Watchlist is empty."
		}
		return "Watchlist: " + strings.Join(symbols, ", ")
	case "/add":
		if len(args) != 1 {
			return "Usage: /add SYMBOL"
		}
		added, err := s.Watchlist.Add(args[0])
		return mutationReply(args[0], "added to", added, err)
	case "/remove":
		if len(args) != 1 {
			return "Usage: /remove SYMBOL"
		}
		removed, err := s.Watchlist.Remove(args[0])
		return mutationReply(args[0], "removed from", removed, err)
	default:
		return helpText
	}
}

const helpText = "Available commands:\n• /report\n• /list\n• /add SYMBOL\n• /remove SYMBOL"

func mutationReply(symbol, verb string, changed bool, err error) string {
	switch {
	case errors.Is(err, watchlist.ErrInvalidSymbol):
		return fmt.Sprintf("Invalid symbol %q", symbol)
	case err != nil:
		return fmt.Sprintf("Failed: %v", err)
	case !changed:
		return fmt.Sprintf("%s unchanged", strings.ToUpper(strings.TrimSpace(symbol)))
	default:
		return fmt.Sprintf("%s %s watchlist", strings.ToUpper(strings.TrimSpace(symbol)), verb)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := notifier.SendWithRetry(s.Ctx, s.Notifier, text, 3, s.Log); err != nil {
		s.Log.Error("send notification", zap.Error(err))
	}
}
