package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/client"
	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/tui"
)

const pollInterval = 2 * time.Second

func bridgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Say the hard thing, kindly",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireLogin()
		},
	}

	cmd.AddCommand(bridgeComposeCmd(a))
	cmd.AddCommand(bridgeSendCmd(a))
	cmd.AddCommand(bridgeRespondCmd(a))
	cmd.AddCommand(bridgeListCmd(a))
	cmd.AddCommand(bridgeShowCmd(a))
	cmd.AddCommand(bridgeAckCmd(a))
	cmd.AddCommand(statusCmd(a, model.ContextKindBridge))
	return cmd
}

func bridgeComposeCmd(a *app) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Start a thread in the interactive composer",
		RunE: func(cmd *cobra.Command, args []string) error {
			thread, err := tui.RunComposer(cmd.Context(), a.api, tui.Options{Title: title, Mock: a.cfg.Mock})
			if err != nil {
				return err
			}
			if thread == nil {
				fmt.Println("Nothing sent.")
				return nil
			}
			fmt.Printf("Sent. Thread #%d.\n", thread.Thread.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "thread title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func bridgeSendCmd(a *app) *cobra.Command {
	var title, emotion, body, file string
	var rewrite bool

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Start a thread without the composer",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseEmotion(emotion)
			if err != nil {
				return err
			}
			text, err := a.prepareMessage(cmd.Context(), body, file, rewrite)
			if err != nil {
				return err
			}
			thread, err := a.api.ComposeThread(cmd.Context(), title, text, e)
			if err != nil {
				return err
			}
			fmt.Printf("Sent. Thread #%d.\n", thread.Thread.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "thread title")
	cmd.Flags().StringVar(&emotion, "emotion", "", "how you feel: "+emotionNames())
	cmd.Flags().StringVar(&body, "message", "", "message text")
	cmd.Flags().StringVar(&file, "file", "", "read the message from a file (- for stdin)")
	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "send the suggested rewrite instead of the original")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("emotion")
	return cmd
}

func bridgeRespondCmd(a *app) *cobra.Command {
	var emotion, body, file string
	var rewrite bool

	cmd := &cobra.Command{
		Use:   "respond <thread-id>",
		Short: "Reply in a thread; opens the composer unless a message is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if body == "" && file == "" {
				thread, err := tui.RunComposer(cmd.Context(), a.api, tui.Options{ThreadID: threadID, Mock: a.cfg.Mock})
				if err != nil {
					return err
				}
				if thread == nil {
					fmt.Println("Nothing sent.")
					return nil
				}
				return a.resolveAfterSubmit(cmd.Context(), model.ContextKindBridge, threadID)
			}

			var e *model.Emotion
			if emotion != "" {
				parsed, err := parseEmotion(emotion)
				if err != nil {
					return err
				}
				e = &parsed
			}
			text, err := a.prepareMessage(cmd.Context(), body, file, rewrite)
			if err != nil {
				return err
			}
			if _, err := a.api.SendMessage(cmd.Context(), threadID, text, e); err != nil {
				return err
			}
			fmt.Println("Sent.")
			return a.resolveAfterSubmit(cmd.Context(), model.ContextKindBridge, threadID)
		},
	}

	cmd.Flags().StringVar(&emotion, "emotion", "", "how you feel: "+emotionNames())
	cmd.Flags().StringVar(&body, "message", "", "message text")
	cmd.Flags().StringVar(&file, "file", "", "read the message from a file (- for stdin)")
	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "send the suggested rewrite instead of the original")
	return cmd
}

func bridgeListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bridge threads in your reef",
		RunE: func(cmd *cobra.Command, args []string) error {
			threads, err := a.api.ListThreads(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printContextList(threads)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum threads to show")
	return cmd
}

func bridgeShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <thread-id>",
		Short: "Show a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := parseID(args[0])
			if err != nil {
				return err
			}
			thread, err := a.api.GetThread(cmd.Context(), threadID)
			if err != nil {
				return err
			}
			printThread(thread)
			return nil
		},
	}
}

func bridgeAckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ack <thread-id>",
		Short: "Acknowledge your partner's latest message and read it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := parseID(args[0])
			if err != nil {
				return err
			}
			thread, err := a.api.Acknowledge(cmd.Context(), threadID)
			if err != nil {
				return err
			}
			printThread(thread)
			return nil
		},
	}
}

// statusCmd resolves a thread, optionally polling until it is revealed.
func statusCmd(a *app, kind model.ContextKind) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Check whether both sides are in and reveal the round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := a.checkRound(cmd.Context(), kind, id, wait)
			if err != nil {
				return err
			}
			printResolve(resp)
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 0, "keep checking for this long (e.g. 30s)")
	return cmd
}

// checkRound resolves the round once, or polls until it is revealed when
// wait is set.
func (a *app) checkRound(ctx context.Context, kind model.ContextKind, id int64, wait time.Duration) (*dto.ResolveResponse, error) {
	if wait <= 0 {
		return a.api.Resolve(ctx, kind, id, a.cfg.Mock)
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	return a.api.WaitForReveal(ctx, kind, id, pollInterval)
}

// resolveAfterSubmit checks the round right after a submission so a
// completed round is analyzed and revealed without a separate status call.
func (a *app) resolveAfterSubmit(ctx context.Context, kind model.ContextKind, id int64) error {
	_, err := a.resolveRound(ctx, kind, id)
	return err
}

// resolveRound prints the resolve answer. A server-side analysis failure is
// reported as deferred and yields a nil response.
func (a *app) resolveRound(ctx context.Context, kind model.ContextKind, id int64) (*dto.ResolveResponse, error) {
	resp, err := a.api.Resolve(ctx, kind, id, a.cfg.Mock)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 500 {
			fmt.Println(waitingStyle.Render("Saved, but the analysis did not finish. Run `status` to try again."))
			return nil, nil
		}
		return nil, err
	}
	printResolve(resp)
	return resp, nil
}

// prepareMessage reads the text and, with rewrite, swaps in the suggested
// rewrite after printing what was found.
func (a *app) prepareMessage(ctx context.Context, body, file string, rewrite bool) (string, error) {
	text, err := readText(body, file)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if !rewrite {
		return text, nil
	}

	preview, err := a.api.AnalyzeBridge(ctx, text, analysis.BridgePrompts{}, a.cfg.Mock)
	if err != nil {
		return "", err
	}
	if preview.Fallback {
		fmt.Println(labelStyle.Render("(analysis service unavailable, using a quick local check)"))
	}
	printBridgeFlags(preview.Analysis)
	if preview.Analysis.TransformedText == "" {
		return text, nil
	}
	fmt.Println(labelStyle.Render("sending: ") + preview.Analysis.TransformedText)
	return preview.Analysis.TransformedText, nil
}

func parseEmotion(s string) (model.Emotion, error) {
	e := model.Emotion(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("unknown emotion %q, pick one of %s", s, emotionNames())
	}
	return e, nil
}

func emotionNames() string {
	names := make([]string, len(model.Emotions))
	for i, e := range model.Emotions {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
