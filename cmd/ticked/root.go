package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ticked/internal/api"
	"ticked/internal/config"
	"ticked/internal/habit"
	"ticked/internal/list"
	"ticked/internal/session"
	"ticked/internal/task"
)

// app wires the stores together for one invocation. Construction order
// matters: the API client needs the session store as its token source,
// and the task cache needs the list catalog as its refresh collaborator.
type app struct {
	cfg     config.Config
	api     *api.Client
	session *session.Store
	lists   *list.Catalog
	tasks   *task.Store
	habits  *habit.Store
}

func newApp(cfg config.Config) *app {
	client := api.New(cfg.APIURL)
	sess := session.New(client, cfg.DataDir)
	client.SetTokenSource(sess.Token)

	lists := list.NewCatalog(client)
	return &app{
		cfg:     cfg,
		api:     client,
		session: sess,
		lists:   lists,
		tasks:   task.NewStore(client, lists),
		habits:  habit.NewStore(client),
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL    string
		socketURL string
		dataDir   string
		verbose   bool
		a         *app
	)

	root := &cobra.Command{
		Use:           "ticked",
		Short:         "Command-line client for the ticked task, habit and calendar service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			if socketURL != "" {
				cfg.SocketURL = socketURL
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if verbose {
				cfg.Verbose = true
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			a = newApp(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "base URL of the remote API")
	root.PersistentFlags().StringVar(&socketURL, "socket-url", "", "websocket URL for real-time events")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for persisted session state")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	appRef := func() *app { return a }
	root.AddCommand(
		newLoginCmd(appRef),
		newRegisterCmd(appRef),
		newLogoutCmd(appRef),
		newWhoamiCmd(appRef),
		newTaskCmd(appRef),
		newListCmd(appRef),
		newHabitCmd(appRef),
		newWatchCmd(appRef),
	)
	return root
}
