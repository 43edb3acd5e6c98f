// Package tui is the interactive Bridge composer: pick how you feel, write
// the message, review the flagged patterns and the rewrite, then send.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/client"
	"github.com/alex28786/the-reef/internal/flow"
	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/model"
)

const analyzeTimeout = 30 * time.Second

// BridgeAPI is the part of the API client the composer needs.
type BridgeAPI interface {
	AnalyzeBridge(ctx context.Context, text string, prompts analysis.BridgePrompts, mock bool) (*client.Preview, error)
	ComposeThread(ctx context.Context, title, body string, emotion model.Emotion) (*dto.ThreadResponse, error)
	SendMessage(ctx context.Context, threadID int64, body string, emotion *model.Emotion) (*dto.ThreadResponse, error)
}

// Options selects between starting a thread (Title) and replying (ThreadID).
type Options struct {
	Title    string
	ThreadID int64
	Mock     bool
}

type analyzedMsg struct {
	preview *client.Preview
	err     error
}

type deliveredMsg struct {
	thread *dto.ThreadResponse
	err    error
}

type emotionItem model.Emotion

func (i emotionItem) Title() string       { return string(i) }
func (i emotionItem) Description() string { return "I'm feeling " + string(i) }
func (i emotionItem) FilterValue() string { return string(i) }

// Composer is the bubbletea model driving flow.BridgeState.
type Composer struct {
	ctx  context.Context
	api  BridgeAPI
	opts Options

	state    flow.BridgeState
	emotions list.Model
	editor   textarea.Model
	spinner  spinner.Model

	emotion    model.Emotion
	preview    *client.Preview
	useRewrite bool
	busy       bool
	err        error
	delivered  *dto.ThreadResponse
	cancelled  bool
}

func NewComposer(ctx context.Context, api BridgeAPI, opts Options) *Composer {
	items := make([]list.Item, len(model.Emotions))
	for i, e := range model.Emotions {
		items[i] = emotionItem(e)
	}
	emotions := list.New(items, list.NewDefaultDelegate(), 40, 20)
	emotions.Title = "How are you feeling?"
	emotions.SetShowStatusBar(false)
	emotions.SetFilteringEnabled(false)

	editor := textarea.New()
	editor.Placeholder = "Write what you want to say..."
	editor.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Composer{
		ctx:      ctx,
		api:      api,
		opts:     opts,
		state:    flow.BridgeEmotion,
		emotions: emotions,
		editor:   editor,
		spinner:  sp,
	}
}

func (c *Composer) Init() tea.Cmd {
	return nil
}

// Delivered is the thread after sending, nil if the composer was left early.
func (c *Composer) Delivered() *dto.ThreadResponse {
	return c.delivered
}

func (c *Composer) Cancelled() bool {
	return c.cancelled
}

func (c *Composer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.emotions.SetSize(msg.Width, msg.Height-2)
		c.editor.SetWidth(msg.Width)
		return c, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			c.cancelled = true
			return c, tea.Quit
		}
		if c.busy {
			return c, nil
		}
		return c.handleKey(msg)

	case spinner.TickMsg:
		if !c.busy {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case analyzedMsg:
		c.busy = false
		if msg.err != nil {
			c.err = msg.err
			return c, nil
		}
		c.preview = msg.preview
		c.useRewrite = len(msg.preview.Analysis.DetectedHorsemen) > 0
		return c.advance(flow.TextSubmitted)

	case deliveredMsg:
		c.busy = false
		if msg.err != nil {
			c.err = msg.err
			return c, nil
		}
		c.delivered = msg.thread
		next, cmd := c.advance(flow.RewriteAccepted)
		return next, tea.Batch(cmd, tea.Quit)
	}

	return c, nil
}

func (c *Composer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch c.state {
	case flow.BridgeEmotion:
		switch msg.String() {
		case "enter":
			item, ok := c.emotions.SelectedItem().(emotionItem)
			if !ok {
				return c, nil
			}
			c.emotion = model.Emotion(item)
			cmd := c.editor.Focus()
			next, advanceCmd := c.advance(flow.EmotionChosen)
			return next, tea.Batch(cmd, advanceCmd)
		case "esc", "q":
			c.cancelled = true
			return c, tea.Quit
		}
		var cmd tea.Cmd
		c.emotions, cmd = c.emotions.Update(msg)
		return c, cmd

	case flow.BridgeInput:
		switch msg.String() {
		case "esc":
			c.editor.Blur()
			return c.advance(flow.BridgeBack)
		case "ctrl+s":
			return c, c.startAnalysis()
		}
		var cmd tea.Cmd
		c.editor, cmd = c.editor.Update(msg)
		return c, cmd

	case flow.BridgeTransform:
		switch msg.String() {
		case "tab", "left", "right":
			if c.preview.Analysis.TransformedText != "" {
				c.useRewrite = !c.useRewrite
			}
		case "esc":
			cmd := c.editor.Focus()
			next, advanceCmd := c.advance(flow.BridgeBack)
			return next, tea.Batch(cmd, advanceCmd)
		case "enter":
			return c, c.startDelivery()
		}
		return c, nil

	case flow.BridgeDelivery:
		return c, tea.Quit
	}
	return c, nil
}

func (c *Composer) advance(event flow.BridgeEvent) (tea.Model, tea.Cmd) {
	next, err := flow.NextBridge(c.state, event)
	if err != nil {
		c.err = err
		return c, nil
	}
	c.state = next
	c.err = nil
	return c, nil
}

func (c *Composer) startAnalysis() tea.Cmd {
	text := strings.TrimSpace(c.editor.Value())
	if err := analysis.ValidateText(text, model.ContextKindBridge); err != nil {
		c.err = err
		return nil
	}
	c.busy = true
	c.err = nil

	ctx, api, mock := c.ctx, c.api, c.opts.Mock
	analyze := func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
		defer cancel()
		preview, err := api.AnalyzeBridge(ctx, text, analysis.BridgePrompts{}, mock)
		return analyzedMsg{preview: preview, err: err}
	}
	return tea.Batch(c.spinner.Tick, analyze)
}

func (c *Composer) startDelivery() tea.Cmd {
	body := c.chosenText()
	c.busy = true
	c.err = nil

	ctx, api, opts, emotion := c.ctx, c.api, c.opts, c.emotion
	deliver := func() tea.Msg {
		var (
			thread *dto.ThreadResponse
			err    error
		)
		if opts.ThreadID != 0 {
			thread, err = api.SendMessage(ctx, opts.ThreadID, body, &emotion)
		} else {
			thread, err = api.ComposeThread(ctx, opts.Title, body, emotion)
		}
		return deliveredMsg{thread: thread, err: err}
	}
	return tea.Batch(c.spinner.Tick, deliver)
}

func (c *Composer) chosenText() string {
	if c.useRewrite && c.preview != nil && c.preview.Analysis.TransformedText != "" {
		return c.preview.Analysis.TransformedText
	}
	return strings.TrimSpace(c.editor.Value())
}

func (c *Composer) View() string {
	var b strings.Builder

	switch c.state {
	case flow.BridgeEmotion:
		b.WriteString(c.emotions.View())
		b.WriteString("\n" + hintStyle.Render("enter: choose · q: quit"))

	case flow.BridgeInput:
		b.WriteString(titleStyle.Render(fmt.Sprintf("Feeling %s. What happened?", c.emotion)))
		b.WriteString("\n" + c.editor.View() + "\n")
		if c.busy {
			b.WriteString(c.spinner.View() + " Looking for patterns...")
		} else {
			b.WriteString(hintStyle.Render("ctrl+s: review · esc: back"))
		}

	case flow.BridgeTransform:
		b.WriteString(c.reviewView())

	case flow.BridgeDelivery:
		b.WriteString(successStyle.Render("Message sent."))
		if c.delivered != nil {
			b.WriteString(fmt.Sprintf("\nThread #%d: %s", c.delivered.Thread.ID, c.delivered.Thread.Title))
		}
	}

	if c.err != nil {
		b.WriteString("\n" + errorStyle.Render(errorText(c.err)))
	}
	return b.String() + "\n"
}

func (c *Composer) reviewView() string {
	var b strings.Builder
	a := c.preview.Analysis

	b.WriteString(titleStyle.Render("Review"))
	b.WriteString("\n")
	if c.preview.Fallback {
		b.WriteString(hintStyle.Render("(analysis service unavailable, showing a quick local check)") + "\n")
	}
	if len(a.DetectedHorsemen) == 0 {
		b.WriteString(successStyle.Render("No destructive patterns found.") + "\n")
	}
	for _, h := range a.DetectedHorsemen {
		b.WriteString(flagStyle.Render(string(h.Type)))
		if h.Quote != "" {
			b.WriteString(" " + quoteStyle.Render(fmt.Sprintf("%q", h.Quote)))
		}
		if h.Reason != "" {
			b.WriteString("\n  " + h.Reason)
		}
		b.WriteString("\n")
	}
	for _, s := range a.Suggestions {
		b.WriteString(hintStyle.Render("- "+s) + "\n")
	}

	original := choiceStyle
	rewrite := choiceStyle
	if c.useRewrite {
		rewrite = selectedChoiceStyle
	} else {
		original = selectedChoiceStyle
	}
	b.WriteString("\n" + original.Render("Original\n"+strings.TrimSpace(c.editor.Value())))
	if a.TransformedText != "" {
		b.WriteString("\n" + rewrite.Render("Rewrite\n"+a.TransformedText))
	}
	b.WriteString("\n")

	if c.busy {
		b.WriteString(c.spinner.View() + " Sending...")
	} else {
		b.WriteString(hintStyle.Render("tab: switch · enter: send · esc: edit"))
	}
	return b.String()
}

func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// RunComposer runs the composer on the terminal and returns the delivered thread.
func RunComposer(ctx context.Context, api BridgeAPI, opts Options) (*dto.ThreadResponse, error) {
	final, err := tea.NewProgram(NewComposer(ctx, api, opts), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("running composer: %w", err)
	}
	c := final.(*Composer)
	if c.Cancelled() || c.delivered == nil {
		return nil, nil
	}
	return c.delivered, nil
}
