package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alex28786/the-reef/internal/client"
	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/session"
)

func loginCmd(a *app) *cobra.Command {
	var email, name, token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to The Reef",
		Long: `Without flags, prints the browser sign-in URL.
Use --token to store a session token from the dashboard, or --email for a
development sign-in against a non-production server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			switch {
			case email != "":
				resp, err := a.api.DevLogin(ctx, email, name)
				if err != nil {
					return err
				}
				if err := a.session.SignIn(a.api.BaseURL(), resp.Token, resp.ExpiresAt); err != nil {
					return err
				}
			case token != "":
				// expiry is unknown until the server rejects the token
				if err := a.session.SignIn(a.api.BaseURL(), token, time.Time{}); err != nil {
					return err
				}
			default:
				fmt.Println("Open this URL in your browser to sign in:")
				fmt.Println()
				fmt.Println("  " + a.api.LoginURL())
				fmt.Println()
				fmt.Println("Then copy your session token from the dashboard and run:")
				fmt.Println("  reef login --token <token>")
				return nil
			}

			profile, err := a.loadProfile(cmd)
			if err != nil {
				_ = a.session.SignOut()
				return err
			}
			fmt.Println(successStyle.Render("Signed in as " + profile.User.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "development sign-in email")
	cmd.Flags().StringVar(&name, "name", "", "display name for a development sign-in")
	cmd.Flags().StringVar(&token, "token", "", "session token from the dashboard")
	cmd.MarkFlagsMutuallyExclusive("email", "token")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.session.Token() != "" {
				if err := a.api.Logout(cmd.Context()); err != nil && !client.IsStatus(err, 401) {
					return err
				}
			}
			if err := a.session.SignOut(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func meCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show who you are signed in as, your reef and your partner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			profile, err := a.loadProfile(cmd)
			if err != nil {
				return err
			}
			printProfile(profile)
			return nil
		},
	}
}

// loadProfile fetches the profile and caches it in the session.
func (a *app) loadProfile(cmd *cobra.Command) (*dto.ProfileResponse, error) {
	profile, err := a.api.Profile(cmd.Context())
	if err != nil {
		return nil, err
	}

	p := session.Profile{
		UserID: profile.User.ID,
		Name:   profile.User.Name,
		Email:  profile.User.Email,
	}
	if profile.Reef != nil {
		p.ReefID = profile.Reef.ID
		p.ReefName = profile.Reef.Name
	}
	if profile.Partner != nil {
		p.PartnerName = profile.Partner.Name
	}
	if err := a.session.SetProfile(p); err != nil {
		return nil, err
	}
	return profile, nil
}
