package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockSignal/internal/notifier"
	"StockSignal/internal/recorder"
	"StockSignal/internal/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var (
		mock       bool
		runOnStart bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduled report, Telegram commands and metrics endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(mock)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			log := a.log
			log.Info("StockSignal starting")

			wl, err := a.watchlist()
			if err != nil {
				return err
			}

			var rec recorder.Recorder
			if a.cfg.Database.SQLitePath != "" {
				sr, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath, log)
				if err != nil {
					log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
					rec = recorder.NewNoopRecorder()
				} else {
					rec = sr
				}
			} else {
				rec = recorder.NewNoopRecorder()
			}
			defer rec.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var (
				n  notifier.Notifier
				tn *notifier.TelegramNotifier
			)
			if a.cfg.TelegramEnabled() {
				tn, err = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, log)
				if err != nil {
					return err
				}
				n = tn
			} else {
				log.Warn("telegram not configured, reports go to the log")
			}

			sched := scheduler.NewScheduler(ctx, a.assembler(), wl, n, rec, a.cfg.Indicators.TableRows, log)
			if err := sched.Register(a.cfg.Schedule.ReportCron); err != nil {
				return fmt.Errorf("register cron tasks: %w", err)
			}
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Info("telegram polling started")
			}
			if a.cfg.Metrics.Addr != "" {
				go a.metrics.Serve(ctx, a.cfg.Metrics.Addr, log)
			}
			if runOnStart || os.Getenv("RUN_ON_START") == "true" {
				log.Info("running report on start")
				go sched.RunNow()
			}

			log.Info("StockSignal is running. Press Ctrl+C to stop.")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Info("shutdown signal received, stopping")
			cancel()
			return nil
		},
	}
	cmd.Flags().BoolVar(&mock, "mock", false, "Use generated prices instead of a remote provider")
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "Send a report immediately after start")
	return cmd
}
