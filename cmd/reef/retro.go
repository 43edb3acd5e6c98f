package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alex28786/the-reef/internal/flow"
	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

func retroCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retro",
		Short: "Write your side of what happened, then see both",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireLogin()
		},
	}

	cmd.AddCommand(retroCreateCmd(a))
	cmd.AddCommand(retroNarrativeCmd(a, "submit", "Submit your story to a retro your partner started"))
	cmd.AddCommand(retroNarrativeCmd(a, "revise", "Rewrite your story before your partner submits"))
	cmd.AddCommand(retroStatusCmd(a))
	cmd.AddCommand(retroShowCmd(a))
	cmd.AddCommand(retroListCmd(a))
	cmd.AddCommand(retroScriptCmd(a))
	return cmd
}

func retroCreateCmd(a *app) *cobra.Command {
	var title, date, narrative, file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a retro with your story",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(narrative, file)
			if err != nil {
				return err
			}

			var eventDate *time.Time
			if date != "" {
				d, err := time.Parse(dto.DateLayout, date)
				if err != nil {
					return fmt.Errorf("--date must look like 2024-05-31: %w", err)
				}
				eventDate = &d
			}

			retro, err := a.api.CreateRetro(cmd.Context(), title, eventDate, text)
			if err != nil {
				return err
			}
			fmt.Printf("Retro #%d started. Your partner can add their side with:\n", retro.Retro.ID)
			fmt.Printf("  reef retro submit %d --file story.txt\n", retro.Retro.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "what the retro is about")
	cmd.Flags().StringVar(&date, "date", "", "when it happened (YYYY-MM-DD)")
	cmd.Flags().StringVar(&narrative, "narrative", "", "your story")
	cmd.Flags().StringVar(&file, "file", "", "read your story from a file (- for stdin)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func retroNarrativeCmd(a *app, use, short string) *cobra.Command {
	var narrative, file string

	cmd := &cobra.Command{
		Use:   use + " <retro-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			retroID, err := parseID(args[0])
			if err != nil {
				return err
			}
			text, err := readText(narrative, file)
			if err != nil {
				return err
			}

			state := flow.RetroWrite
			var retro *dto.RetroResponse
			if use == "revise" {
				if state, err = flow.NextRetro(flow.RetroWaiting, flow.RetroBack); err != nil {
					return err
				}
				retro, err = a.api.ReviseNarrative(cmd.Context(), retroID, text)
			} else {
				retro, err = a.api.SubmitNarrative(cmd.Context(), retroID, text)
			}
			if err != nil {
				return err
			}
			if state, err = flow.NextRetro(state, flow.Submitted); err != nil {
				return err
			}

			if !retro.PartnerSubmitted {
				fmt.Println("Saved. Waiting for your partner's story.")
				return nil
			}
			fmt.Println("Saved. Both stories are in.")
			resp, err := a.resolveRound(cmd.Context(), model.ContextKindRetro, retroID)
			if err != nil || resp == nil {
				return err
			}
			return finishRetro(state, resp.Status, retroID)
		},
	}

	cmd.Flags().StringVar(&narrative, "narrative", "", "your story")
	cmd.Flags().StringVar(&file, "file", "", "read your story from a file (- for stdin)")
	return cmd
}

// retroStatusCmd resolves a retro the caller has already written for.
func retroStatusCmd(a *app) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "status <retro-id>",
		Short: "Check whether both stories are in and reveal them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			retroID, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := a.checkRound(cmd.Context(), model.ContextKindRetro, retroID, wait)
			if err != nil {
				return err
			}
			printResolve(resp)
			return finishRetro(flow.RetroWaiting, resp.Status, retroID)
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 0, "keep checking for this long (e.g. 30s)")
	return cmd
}

// retroAfterResolve moves a waiting retro forward by what the server answered.
// Anything short of a reveal keeps it waiting.
func retroAfterResolve(state flow.RetroState, status service.ResolveStatus) (flow.RetroState, error) {
	if status != service.ResolveStatusRevealed {
		return state, nil
	}
	return flow.NextRetro(state, flow.Revealed)
}

func finishRetro(state flow.RetroState, status service.ResolveStatus, retroID int64) error {
	state, err := retroAfterResolve(state, status)
	if err != nil {
		return err
	}
	if state.Terminal() {
		fmt.Println(labelStyle.Render("Next: ") + fmt.Sprintf("reef retro script %d --file script.txt", retroID))
	}
	return nil
}

func retroShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <retro-id>",
		Short: "Show a retro; your partner's story appears once revealed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			retroID, err := parseID(args[0])
			if err != nil {
				return err
			}
			retro, err := a.api.GetRetro(cmd.Context(), retroID)
			if err != nil {
				return err
			}
			printRetro(retro)
			return nil
		},
	}
}

func retroListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List retros in your reef",
		RunE: func(cmd *cobra.Command, args []string) error {
			retros, err := a.api.ListRetros(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printContextList(retros)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum retros to show")
	return cmd
}

func retroScriptCmd(a *app) *cobra.Command {
	var script, file string

	cmd := &cobra.Command{
		Use:   "script <retro-id>",
		Short: "Write what you will try next time, after the reveal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			retroID, err := parseID(args[0])
			if err != nil {
				return err
			}
			text, err := readText(script, file)
			if err != nil {
				return err
			}

			retro, err := a.api.GetRetro(cmd.Context(), retroID)
			if err != nil {
				return err
			}
			if retro.Mine == nil {
				return errors.New("you have not written your story for this retro")
			}

			if _, err := a.api.SaveArtifact(cmd.Context(), retro.Mine.ID, text); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Saved your script."))
			return nil
		},
	}

	cmd.Flags().StringVar(&script, "text", "", "your future script")
	cmd.Flags().StringVar(&file, "file", "", "read the script from a file (- for stdin)")
	return cmd
}
