package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alex28786/the-reef/common/logger"
	"github.com/alex28786/the-reef/core/config"
	"github.com/alex28786/the-reef/internal/client"
	"github.com/alex28786/the-reef/internal/session"
)

// app is shared by every command; it is filled in before any command runs.
type app struct {
	cfg     config.CLIConfig
	session *session.Session
	api     *client.Client
}

func main() {
	// group commands add a login check on top of the root setup
	cobra.EnableTraverseRunHooks = true

	cfg := config.LoadCLI()
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "reef",
		Short:         "The Reef: talk it through, then look back together",
		Long:          "reef is the command line client for The Reef. Compose bridge messages and run blind retros with your partner.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.cfg.APIURL, "api-url", cfg.APIURL, "reef API base URL (env REEF_API_URL)")
	root.PersistentFlags().StringVar(&a.cfg.SessionPath, "session", cfg.SessionPath, "session file (default ~/.reef/session.yaml)")
	root.PersistentFlags().BoolVar(&a.cfg.Mock, "mock", cfg.Mock, "ask the server for canned analysis (only honored when the server allows it)")
	root.PersistentFlags().BoolVarP(&a.cfg.Verbose, "verbose", "v", cfg.Verbose, "log debug output to stderr")

	root.AddCommand(loginCmd(a))
	root.AddCommand(logoutCmd(a))
	root.AddCommand(meCmd(a))
	root.AddCommand(reefCmd(a))
	root.AddCommand(bridgeCmd(a))
	root.AddCommand(retroCmd(a))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), describeError(err))
		os.Exit(1)
	}
}

func (a *app) init() error {
	logger.SetupCLI(os.Stderr, a.cfg.Verbose)

	path := a.cfg.SessionPath
	if path == "" {
		var err error
		if path, err = session.DefaultPath(); err != nil {
			return err
		}
	}

	sess, err := session.Load(path)
	if err != nil {
		return err
	}
	a.session = sess
	a.api = client.New(a.cfg.APIURL, client.WithToken(sess.Token()))

	// keep the client's token in step with the session
	sess.Subscribe(func(e session.Event) {
		a.api.SetToken(e.State.Token)
	})
	return nil
}

var errNotSignedIn = errors.New("not signed in, run `reef login` first")

// requireLogin fails fast instead of sending an anonymous request.
func (a *app) requireLogin() error {
	if a.session.Token() == "" {
		return errNotSignedIn
	}
	return nil
}

func describeError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 401 {
			return "your session has expired, run `reef login` again"
		}
		return apiErr.Message
	}
	return err.Error()
}
