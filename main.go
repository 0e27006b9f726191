package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"saltbot/expiry"
	"saltbot/handler"
	"saltbot/notifier"
	"saltbot/ops"
	"saltbot/poll"
	"saltbot/reminder"
	"saltbot/state"
	"saltbot/store"

	"github.com/getsentry/sentry-go"
)

func main() {
	state.Setup()

	if dsn := state.Config.APIs.SentryDSN; dsn != "" {
		err := sentry.Init(sentry.ClientOptions{Dsn: dsn})

		if err != nil {
			state.Logger.Errorw("failed to initialize sentry", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	dataDir := state.Config.Storage.DataDir

	pollStore, err := store.New(dataDir)

	if err != nil {
		panic(err)
	}

	reminderStore, err := store.New(filepath.Join(dataDir, "reminders"))

	if err != nil {
		panic(err)
	}

	polls := poll.NewRepo(pollStore)
	reminders := reminder.NewRepo(reminderStore)

	handler.Setup(polls, reminders)
	state.Discord.AddHandler(handler.OnMessageCreate)

	err = state.Discord.Open()

	if err != nil {
		panic(err)
	}

	defer state.Discord.Close()

	ctx, cancel := context.WithCancel(state.Context)
	defer cancel()

	monitor := expiry.New(
		polls,
		reminders,
		notifier.NewDiscord(state.Discord),
		time.Duration(state.Config.Monitor.IntervalSeconds)*time.Second,
		state.Config.Monitor.MaxDeliveryAttempts,
	)
	go monitor.Loop(ctx)

	go func() {
		err := http.ListenAndServe(state.Config.Ops.BindAddr, ops.Router())
		state.Logger.Errorw("ops server stopped", "error", err)
	}()

	state.Logger.Info("saltbot initialized and logged in")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	state.Logger.Info("closing down gracefully")
}
