package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stonefield/jiraSOAP/ports"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and save the session token",
	Long: `Log in to the configured server.

The username defaults to auth.username. The password is taken from
auth.password when set, otherwise it is prompted for.

Examples:
  jirasoap login alice
  JIRASOAP_AUTH_PASSWORD=... jirasoap login alice`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutForget bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session on the server",
	Long: `Log out of the configured server.

The saved token is kept unless --forget is given, so a refused logout
can be retried.`,
	RunE: withClient(runLogout),
}

var whoamiAll bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the saved session",
	Long: `Show the session saved for the configured server.

With --all every session in the store is listed, one per server.`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	logoutCmd.Flags().BoolVar(&logoutForget, "forget", false, "also drop the saved token")
	whoamiCmd.Flags().BoolVar(&whoamiAll, "all", false, "list the sessions saved for every server")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg, setupLogger(cfg.Logging), nil)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.out = cmd.OutOrStdout()

	username := cfg.Auth.Username
	if len(args) == 1 {
		username = args[0]
	}
	if username == "" {
		return fmt.Errorf("username required: pass it as an argument or set auth.username")
	}

	password := cfg.Auth.Password
	if password == "" {
		password, err = promptPassword(fmt.Sprintf("Password for %s: ", username))
		if err != nil {
			return err
		}
	}

	if _, err := rt.client.Login(cmd.Context(), username, password); err != nil {
		fmt.Fprintf(rt.out, "%s Login failed\n", crossMark)
		return err
	}
	printDone(rt, "Logged in to %s as %s", cfg.Endpoint.URL, username)
	return nil
}

func runLogout(ctx context.Context, rt *runtime, args []string) error {
	ok, err := rt.client.Logout(ctx)
	if err != nil {
		return err
	}
	if ok {
		printDone(rt, "Logged out %s", rt.client.Username())
	} else {
		fmt.Fprintf(rt.out, "%s Server refused logout\n", crossMark)
	}

	if logoutForget {
		if err := rt.client.Forget(ctx); err != nil {
			return err
		}
		printDone(rt, "Dropped saved session")
	}
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg, setupLogger(cfg.Logging), nil)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.out = cmd.OutOrStdout()

	if whoamiAll {
		return listSessions(cmd.Context(), rt)
	}

	ok, err := rt.client.Resume(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		return errNoSession
	}

	sess := rt.client.Session()
	fmt.Fprintf(rt.out, "Endpoint:  %s\n", sess.Endpoint)
	fmt.Fprintf(rt.out, "Username:  %s\n", sess.Username)
	fmt.Fprintf(rt.out, "Logged in: %s (%s ago)\n", sess.CreatedAt.Format("2006-01-02 15:04:05"), sess.Age(rt.clock.Now()).Round(time.Second))
	if sess.IsStale(rt.clock.Now(), cfg.Session.MaxAge) {
		fmt.Fprintf(rt.out, "%s Session is older than session.max_age\n", crossMark)
	}
	return nil
}

// listSessions prints one line per saved session.
func listSessions(ctx context.Context, rt *runtime) error {
	lister, ok := rt.sessions.(ports.SessionLister)
	if !ok {
		return fmt.Errorf("session store %q cannot list sessions", rt.settings().Session.Store)
	}
	sessions, err := lister.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return errNoSession
	}

	now := rt.clock.Now()
	maxAge := rt.settings().Session.MaxAge
	w := tabwriter.NewWriter(rt.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENDPOINT\tUSERNAME\tLOGGED IN\tSTALE")
	for _, s := range sessions {
		stale := "no"
		if s.IsStale(now, maxAge) {
			stale = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Endpoint, s.Username, s.CreatedAt.Format("2006-01-02 15:04:05"), stale)
	}
	return w.Flush()
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // Print newline after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
