package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ticked/internal/realtime"
)

// watch keeps the real-time subscription alive until interrupted,
// refetching the active pool after every (re)connect since the channel
// does not buffer missed events.
func newWatchCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream task changes from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a().session.Authenticated() {
				return fmt.Errorf("not logged in")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			bridge := realtime.New(a().cfg.SocketURL, a().session.Token, a().tasks)
			for {
				if err := a().tasks.FetchActive(ctx); err != nil {
					slog.Warn("refetch failed", "err", err)
				}
				err := bridge.Run(ctx)
				if ctx.Err() != nil {
					return nil
				}
				if err != nil {
					slog.Warn("connection lost, retrying", "err", err)
				}
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(2 * time.Second):
				}
			}
		},
	}
}
