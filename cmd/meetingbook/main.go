package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/meetingbook/internal/application"
	"github.com/example/meetingbook/internal/config"
	"github.com/example/meetingbook/internal/logging"
	"github.com/example/meetingbook/internal/persistence/sqlite"
	"github.com/example/meetingbook/internal/persistence/sqlite/migration"
	"github.com/example/meetingbook/internal/ui"
)

const prompt = "> "

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, slog.LevelInfo).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	ctx = logging.ContextWithLogger(ctx, logger)

	sqliteConfig := migration.DefaultSQLiteConfig(cfg.SQLitePath)
	sqliteConfig.BusyTimeout = cfg.BusyTimeout

	storage, err := sqlite.Open(ctx, sqliteConfig, logger)
	if err != nil {
		logger.Error("failed to open storage", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	session := application.NewSessionWithLogger(storage.Meetings, time.Now, cfg.SeedSample, logger)
	if err := session.Load(ctx); err != nil {
		logger.Error("failed to load meeting book", "error", err)
		os.Exit(1)
	}

	if err := repl(ctx, session, os.Stdin, os.Stdout); err != nil {
		logger.Error("failed to read input", "error", err)
		os.Exit(1)
	}
}

// repl reads commands from in until exit, end of input or cancellation of ctx.
func repl(ctx context.Context, session *application.Session, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	ui.RenderMeetings(out, session.Book().FilteredMeetingList())
	fmt.Fprint(out, prompt)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if strings.TrimSpace(line) != "" && handleLine(ctx, session, line, out) {
				return nil
			}
			fmt.Fprint(out, prompt)
		}
	}
}

// handleLine runs one command and reports whether the session should end.
func handleLine(ctx context.Context, session *application.Session, line string, out io.Writer) bool {
	result, err := session.Run(ctx, line)
	if result.Feedback != "" {
		fmt.Fprintln(out, result.Feedback)
	}
	if err != nil {
		fmt.Fprintln(out, err)
		return false
	}
	if result.ShowMeetings {
		ui.RenderMeetings(out, session.Book().FilteredMeetingList())
	}
	return result.Exit
}
