package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func reefCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reef",
		Short: "Create a reef and pair with your partner",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireLogin()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a reef; you become its owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reef, err := a.api.CreateReef(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created reef %q (%d).\n", reef.Name, reef.ID)
			fmt.Println("Invite your partner with: reef reef invite <email>")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "invite <email>",
		Short: "Invite your partner by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.api.Invite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Invitation for %s (expires %s)\n\n", inv.Email, inv.ExpiresAt.Format("Jan 2 15:04"))
			fmt.Println("  " + inv.InviteURL)
			fmt.Println()
			fmt.Println("Or have them run: reef reef join " + inv.Token)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "join <token>",
		Short: "Join your partner's reef with an invitation token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reef, err := a.api.JoinReef(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := a.loadProfile(cmd); err != nil {
				return err
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("Joined %s.", reef.Name)))
			return nil
		},
	})

	return cmd
}
