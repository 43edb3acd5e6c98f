package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	waitingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

func printProfile(p *dto.ProfileResponse) {
	fmt.Printf("%s %s <%s>\n", labelStyle.Render("user:   "), p.User.Name, p.User.Email)
	if p.Reef == nil {
		fmt.Println(labelStyle.Render("reef:    ") + "none yet, create one with `reef reef create <name>`")
		return
	}
	fmt.Printf("%s %s (%d)\n", labelStyle.Render("reef:   "), p.Reef.Name, p.Reef.ID)
	if p.Partner == nil {
		fmt.Println(labelStyle.Render("partner: ") + "not joined yet")
		return
	}
	fmt.Printf("%s %s\n", labelStyle.Render("partner:"), p.Partner.Name)
}

func printContextList(contexts []dto.ContextResponse) {
	if len(contexts) == 0 {
		fmt.Println("Nothing here yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tROUND\tUPDATED")
	for _, c := range contexts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", c.ID, c.Title, c.Status, c.Round, c.UpdatedAt.Local().Format("Jan 2 15:04"))
	}
	_ = w.Flush()
}

func printThread(t *dto.ThreadResponse) {
	fmt.Println(headingStyle.Render(fmt.Sprintf("%s  #%d", t.Thread.Title, t.Thread.ID)))
	fmt.Println(labelStyle.Render(fmt.Sprintf("status %s, round %d", t.Thread.Status, t.Thread.Round)))

	for _, m := range t.Messages {
		who := "partner"
		if m.Mine {
			who = "you"
		}
		header := fmt.Sprintf("\n[%s] %s", m.SubmittedAt.Local().Format("Jan 2 15:04"), who)
		if m.Emotion != nil {
			header += fmt.Sprintf(" (feeling %s)", *m.Emotion)
		}
		fmt.Println(header)

		switch {
		case m.Body != nil:
			fmt.Println("  " + *m.Body)
		case !m.Mine:
			fmt.Println(waitingStyle.Render("  acknowledge with `reef bridge ack` to read this message"))
		}
		if m.Enrichment != nil && m.Enrichment.Bridge != nil {
			printBridgeFlags(m.Enrichment.Bridge)
		}
		if m.Mine && m.AcknowledgedAt != nil {
			fmt.Println(labelStyle.Render("  read " + m.AcknowledgedAt.Local().Format("Jan 2 15:04")))
		}
	}
}

func printBridgeFlags(a *model.BridgeAnalysis) {
	if len(a.DetectedHorsemen) == 0 {
		fmt.Println(successStyle.Render("  no destructive patterns"))
		return
	}
	for _, h := range a.DetectedHorsemen {
		line := "  " + flagStyle.Render(string(h.Type))
		if h.Quote != "" {
			line += fmt.Sprintf(" %q", h.Quote)
		}
		fmt.Println(line)
		if h.Reason != "" {
			fmt.Println("    " + h.Reason)
		}
	}
}

func printRetro(r *dto.RetroResponse) {
	fmt.Println(headingStyle.Render(fmt.Sprintf("%s  #%d", r.Retro.Title, r.Retro.ID)))
	meta := fmt.Sprintf("status %s", r.Retro.Status)
	if r.Retro.EventDate != nil {
		meta += ", event " + *r.Retro.EventDate
	}
	fmt.Println(labelStyle.Render(meta))

	printNarrative("Your story", r.Mine)

	switch {
	case r.Partner != nil:
		printNarrative("Their story", r.Partner)
	case r.PartnerSubmitted:
		fmt.Println(waitingStyle.Render("\nYour partner has submitted. Run `reef retro status` to reveal both stories."))
	default:
		fmt.Println(waitingStyle.Render("\nWaiting for your partner's story."))
	}
}

func printNarrative(title string, s *dto.SubmissionResponse) {
	fmt.Println()
	fmt.Println(headingStyle.Render(title))
	if s == nil {
		fmt.Println(waitingStyle.Render("  not written yet"))
		return
	}
	if s.Body != nil {
		fmt.Println(indent(*s.Body))
	}
	if s.Enrichment != nil && s.Enrichment.Retro != nil {
		ra := s.Enrichment.Retro
		printList("What a camera would have seen", ra.VideoFacts)
		printList("Interpretations", ra.Interpretations)
		printList("Mind reads", ra.MindReads)
		printList("Undertones", ra.EmotionalUndertones)
	}
	if s.Artifact != nil {
		printList("Next time", []string{*s.Artifact})
	}
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println(labelStyle.Render("  " + title + ":"))
	for _, item := range items {
		fmt.Println("    - " + item)
	}
}

func printResolve(r *dto.ResolveResponse) {
	switch r.Status {
	case service.ResolveStatusRevealed:
		fmt.Println(successStyle.Render("revealed"))
	case service.ResolveStatusWaiting:
		msg := "waiting"
		if r.Message != "" {
			msg += ": " + r.Message
		}
		fmt.Println(waitingStyle.Render(msg))
	default:
		fmt.Println(errorStyle.Render("error: " + r.Message))
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n  ")
}
