// Command ft is a command line client for the flight tracker service.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// Annotation values of annAuth.
const (
	annAuth     = "auth"
	authNone    = "none"    // public RPC, no credentials
	authOffline = "offline" // no connection at all
	authOwner   = "owner"   // owner bearer token even while a guest session is open
)

// dialFunc opens a client with the given per-call credentials.
type dialFunc func(perRPC credentials.PerRPCCredentials) (pb.FlightTrackerClient, io.Closer, error)

// appContext is built once per invocation and carries the caller identity to every command.
type appContext struct {
	out io.Writer
	in  io.Reader
	now func() time.Time

	tr      transport
	timeout time.Duration
	asJSON  bool
	dial    dialFunc

	client pb.FlightTrackerClient
	closer io.Closer
}

func newAppContext(out io.Writer, in io.Reader) *appContext {
	app := &appContext{out: out, in: in, now: time.Now}
	app.dial = func(perRPC credentials.PerRPCCredentials) (pb.FlightTrackerClient, io.Closer, error) {
		cc, cli, err := app.tr.dial(perRPC)
		if err != nil {
			return nil, nil, err
		}
		return cli, cc, nil
	}
	return app
}

// connect resolves the caller credentials for cmd. An open guest session wins over the owner login.
func (a *appContext) connect(cmd *cobra.Command) error {
	mode := cmd.Annotations[annAuth]
	if mode == authOffline || isBuiltin(cmd) {
		return nil
	}
	secure := !a.tr.plaintext
	var perRPC credentials.PerRPCCredentials
	if mode != authNone {
		share, err := loadShare()
		if err != nil {
			return err
		}
		if share != "" && mode != authOwner {
			perRPC = shareCreds{token: share, secure: secure}
		} else {
			tf, err := loadToken(a.now())
			if err != nil {
				return err
			}
			perRPC = bearerCreds{token: tf.AccessToken, secure: secure}
		}
	}
	cli, closer, err := a.dial(perRPC)
	if err != nil {
		return err
	}
	a.client, a.closer = cli, closer
	return nil
}

// isBuiltin reports cobra's own help and completion commands.
func isBuiltin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

func (a *appContext) close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

func newRootCmd(app *appContext) *cobra.Command {
	root := &cobra.Command{
		Use:           "ft",
		Short:         "Track flight prices and share your history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.connect(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) { app.close() },
	}
	f := root.PersistentFlags()
	f.StringVar(&app.tr.addr, "addr", envOr("FT_ADDR", "localhost:8443"), "server addr")
	f.StringVar(&app.tr.caPath, "cacert", "", "CA cert (PEM)")
	f.BoolVar(&app.tr.insecure, "insecure", false, "skip cert verify (dev)")
	f.BoolVar(&app.tr.plaintext, "plaintext", false, "connect without TLS (dev)")
	f.DurationVar(&app.timeout, "timeout", 30*time.Second, "per command timeout")
	f.BoolVar(&app.asJSON, "json", false, "print raw JSON responses")

	root.AddCommand(
		newLoginCmd(app),
		newListCmd(app),
		newAddCmd(app),
		newCheckCmd(app),
		newRmCmd(app),
		newShareCmd(app),
		newOpenCmd(app),
		newLeaveCmd(app),
		newVersionCmd(app),
	)
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// describe renders err for the terminal, unwrapping gRPC statuses.
func describe(err error) string {
	if s, ok := status.FromError(err); ok {
		return fmt.Sprintf("rpc error: code=%s msg=%s", s.Code(), s.Message())
	}
	return err.Error()
}

func main() {
	app := newAppContext(os.Stdout, os.Stdin)
	err := newRootCmd(app).Execute()
	app.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(describe(err)))
		os.Exit(1)
	}
}
