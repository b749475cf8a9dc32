package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
)

func (a *appContext) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func (a *appContext) println(s string) { fmt.Fprintln(a.out, s) }

func newLoginCmd(app *appContext) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:         "login <user-id>",
		Short:       "Get an access token for a user id",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annAuth: authNone},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			resp, err := app.client.Identify(ctx, &pb.IdentifyRequest{UserID: args[0], Label: label})
			if err != nil {
				return err
			}
			if err := saveToken(tokenFile{AccessToken: resp.AccessToken, ExpiresAt: resp.ExpiresAt, UserID: resp.UserID}); err != nil {
				return err
			}
			app.println(goodStyle.Render("ok") + mutedStyle.Render(" logged in as "+resp.UserID))
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "display name")
	return cmd
}

func newListCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show recorded flights grouped by destination",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			ds, err := app.client.GetDataset(ctx, &pb.GetDatasetRequest{})
			if err != nil {
				return err
			}
			groups, err := app.client.ListGroups(ctx, &pb.ListGroupsRequest{})
			if err != nil {
				return err
			}
			if app.asJSON {
				printJSON(app.out, map[string]any{"dataset": ds, "groups": groups.Groups})
				return nil
			}
			app.println(renderIdentity(ds.Identity) + "  " + renderSave(ds.Save))
			app.println(renderGroups(groups.Groups))
			return nil
		},
	}
}

func newAddCmd(app *appContext) *cobra.Command {
	var ff flightFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a flight offer and compare it to the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fl, err := ff.toWire()
			if err != nil {
				return err
			}
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			resp, err := app.client.AddFlight(ctx, &pb.AddFlightRequest{Flight: fl})
			if err != nil {
				return err
			}
			if app.asJSON {
				printJSON(app.out, resp)
				return nil
			}
			app.println(renderVerdict(resp.Verdict))
			app.println(mutedStyle.Render("added "+resp.Flight.ID) + "  " + renderSave(resp.Save))
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}

func newCheckCmd(app *appContext) *cobra.Command {
	var ff flightFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare an offer to the history without recording it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fl, err := ff.toWire()
			if err != nil {
				return err
			}
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			resp, err := app.client.AnalyzeFlight(ctx, &pb.AnalyzeFlightRequest{Flight: fl})
			if err != nil {
				return err
			}
			if app.asJSON {
				printJSON(app.out, resp)
				return nil
			}
			app.println(renderVerdict(resp.Verdict))
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}

func newRmCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <flight-id>",
		Short: "Delete a recorded flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			resp, err := app.client.DeleteFlight(ctx, &pb.DeleteFlightRequest{ID: args[0]})
			if err != nil {
				return err
			}
			if !resp.Removed {
				app.println(mutedStyle.Render("no flight " + args[0]))
				return nil
			}
			app.println(goodStyle.Render("deleted") + "  " + renderSave(resp.Save))
			return nil
		},
	}
}

func newShareCmd(app *appContext) *cobra.Command {
	share := &cobra.Command{
		Use:   "share",
		Short: "Manage share links of your history",
	}

	var (
		perm string
		days int
	)
	create := &cobra.Command{
		Use:         "create",
		Short:       "Create a view or edit link",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annAuth: authOwner},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			resp, err := app.client.CreateShare(ctx, &pb.CreateShareRequest{Permission: perm, TTLDays: days})
			if err != nil {
				return err
			}
			if app.asJSON {
				printJSON(app.out, resp.Session)
				return nil
			}
			s := resp.Session
			app.println(goodStyle.Render(s.Permission+" link") + mutedStyle.Render(" expires "+s.ExpiresAt.Local().Format("2006-01-02")))
			app.println(s.Link)
			return nil
		},
	}
	create.Flags().StringVar(&perm, "perm", "view", "view | edit")
	create.Flags().IntVar(&days, "days", 0, "lifetime in days, 1-365 (0 = one year)")

	list := &cobra.Command{
		Use:         "list",
		Short:       "List your share links",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annAuth: authOwner},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			resp, err := app.client.ListShares(ctx, &pb.ListSharesRequest{})
			if err != nil {
				return err
			}
			if app.asJSON {
				printJSON(app.out, resp)
				return nil
			}
			app.println(renderSessions(resp.Active, resp.Inactive, app.now()))
			return nil
		},
	}

	var yes bool
	revoke := &cobra.Command{
		Use:         "revoke <token>",
		Short:       "Deactivate a share link",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annAuth: authOwner},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !app.confirm("Deactivate link "+args[0]+"? Guests lose access immediately. [y/N] ") {
				app.println(mutedStyle.Render("cancelled"))
				return nil
			}
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			if _, err := app.client.DeactivateShare(ctx, &pb.DeactivateShareRequest{Token: args[0]}); err != nil {
				return err
			}
			app.println(goodStyle.Render("revoked"))
			return nil
		},
	}
	revoke.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	share.AddCommand(create, list, revoke)
	return share
}

// confirm reads a y/yes answer from the input.
func (a *appContext) confirm(prompt string) bool {
	fmt.Fprint(a.out, prompt)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func newOpenCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:         "open <share-token>",
		Short:       "Open someone's shared history; later commands act as their guest",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annAuth: authNone},
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(args[0])
			ctx, cancel := app.ctx(cmd)
			defer cancel()
			resp, err := app.client.OpenShare(ctx, &pb.OpenShareRequest{Token: token})
			if err != nil {
				return err
			}
			if err := saveShare(token); err != nil {
				return err
			}
			if app.asJSON {
				printJSON(app.out, resp)
				return nil
			}
			app.println(renderIdentity(resp.Dataset.Identity))
			app.println(renderGroups(resp.Groups))
			app.println(mutedStyle.Render("run `ft leave` to return to your own flights"))
			return nil
		},
	}
}

func newLeaveCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:         "leave",
		Short:       "Close the guest session opened with `ft open`",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annAuth: authOffline},
		RunE: func(*cobra.Command, []string) error {
			was, err := clearShare()
			if err != nil {
				return err
			}
			if !was {
				return errors.New("no guest session open")
			}
			app.println(goodStyle.Render("ok") + mutedStyle.Render(" back to your own flights"))
			return nil
		},
	}
}

func newVersionCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the client version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annAuth: authOffline},
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(app.out, "ft %s (%s)\n", version, buildDate)
		},
	}
}
