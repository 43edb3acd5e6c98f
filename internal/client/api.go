package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alex28786/the-reef/common/retry"
	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

// profileRetry re-reads the profile on transient failures. Client errors are final.
var profileRetry = retry.Policy{
	Attempts: retry.Default.Attempts,
	Delay:    retry.Default.Delay,
	Retryable: func(_ context.Context, err error) bool {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.StatusCode >= http.StatusInternalServerError
		}
		return true
	},
}

func (c *Client) DevLogin(ctx context.Context, email, name string) (*dto.SessionResponse, error) {
	var out dto.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/dev-login", dto.DevLoginRequest{Email: email, Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// LoginURL is where a browser starts the identity provider sign-in.
func (c *Client) LoginURL() string {
	return c.baseURL + apiPrefix + "/auth/login"
}

// Profile fetches the signed-in user, retrying transient failures.
func (c *Client) Profile(ctx context.Context) (*dto.ProfileResponse, error) {
	return retry.Value(ctx, profileRetry, "fetching profile", func(ctx context.Context) (*dto.ProfileResponse, error) {
		var out dto.ProfileResponse
		if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (c *Client) CreateReef(ctx context.Context, name string) (*dto.ReefResponse, error) {
	var out dto.ReefResponse
	if err := c.do(ctx, http.MethodPost, "/reefs", dto.CreateReefRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Invite(ctx context.Context, email string) (*dto.InviteResponse, error) {
	var out dto.InviteResponse
	if err := c.do(ctx, http.MethodPost, "/reefs/invitations", dto.InviteRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) JoinReef(ctx context.Context, token string) (*dto.ReefResponse, error) {
	var out dto.ReefResponse
	if err := c.do(ctx, http.MethodPost, "/reefs/join", dto.JoinReefRequest{Token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ComposeThread(ctx context.Context, title, body string, emotion model.Emotion) (*dto.ThreadResponse, error) {
	req := dto.ComposeThreadRequest{Title: title, Body: body, Emotion: &emotion}
	var out dto.ThreadResponse
	if err := c.do(ctx, http.MethodPost, "/threads", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage responds in the open round, or opens the next one on a revealed thread.
func (c *Client) SendMessage(ctx context.Context, threadID int64, body string, emotion *model.Emotion) (*dto.ThreadResponse, error) {
	req := dto.SendMessageRequest{Body: body, Emotion: emotion}
	var out dto.ThreadResponse
	if err := c.do(ctx, http.MethodPost, contextPath("/threads", threadID, "/messages"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetThread(ctx context.Context, threadID int64) (*dto.ThreadResponse, error) {
	var out dto.ThreadResponse
	if err := c.do(ctx, http.MethodGet, contextPath("/threads", threadID, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListThreads(ctx context.Context, limit int) ([]dto.ContextResponse, error) {
	return c.listContexts(ctx, "/threads", limit)
}

func (c *Client) Acknowledge(ctx context.Context, threadID int64) (*dto.ThreadResponse, error) {
	var out dto.ThreadResponse
	if err := c.do(ctx, http.MethodPost, contextPath("/threads", threadID, "/acknowledge"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRetro(ctx context.Context, title string, eventDate *time.Time, narrative string) (*dto.RetroResponse, error) {
	req := dto.CreateRetroRequest{Title: title, Narrative: narrative}
	if eventDate != nil {
		date := eventDate.Format(dto.DateLayout)
		req.EventDate = &date
	}
	var out dto.RetroResponse
	if err := c.do(ctx, http.MethodPost, "/retros", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitNarrative(ctx context.Context, retroID int64, narrative string) (*dto.RetroResponse, error) {
	var out dto.RetroResponse
	if err := c.do(ctx, http.MethodPost, contextPath("/retros", retroID, "/submissions"), dto.NarrativeRequest{Narrative: narrative}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReviseNarrative(ctx context.Context, retroID int64, narrative string) (*dto.RetroResponse, error) {
	var out dto.RetroResponse
	if err := c.do(ctx, http.MethodPut, contextPath("/retros", retroID, "/submissions/mine"), dto.NarrativeRequest{Narrative: narrative}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRetro(ctx context.Context, retroID int64) (*dto.RetroResponse, error) {
	var out dto.RetroResponse
	if err := c.do(ctx, http.MethodGet, contextPath("/retros", retroID, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRetros(ctx context.Context, limit int) ([]dto.ContextResponse, error) {
	return c.listContexts(ctx, "/retros", limit)
}

func (c *Client) SaveArtifact(ctx context.Context, submissionID int64, artifact string) (*dto.ArtifactResponse, error) {
	var out dto.ArtifactResponse
	path := "/submissions/" + strconv.FormatInt(submissionID, 10) + "/artifact"
	if err := c.do(ctx, http.MethodPut, path, dto.SaveArtifactRequest{Artifact: artifact}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resolve asks the server to finish the round of a thread or retro.
func (c *Client) Resolve(ctx context.Context, kind model.ContextKind, id int64, mock bool) (*dto.ResolveResponse, error) {
	base, err := kindPath(kind)
	if err != nil {
		return nil, err
	}
	var out dto.ResolveResponse
	if err := c.do(ctx, http.MethodPost, contextPath(base, id, "/resolve"), dto.ResolveRequest{Mock: mock}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForReveal polls Resolve every interval until the context is revealed,
// resolve reports an error, or ctx is done. The last answer is returned.
func (c *Client) WaitForReveal(ctx context.Context, kind model.ContextKind, id int64, interval time.Duration) (*dto.ResolveResponse, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		resp, err := c.Resolve(ctx, kind, id, false)
		if err != nil {
			return nil, err
		}
		if resp.Status != service.ResolveStatusWaiting {
			return resp, nil
		}

		select {
		case <-ctx.Done():
			return resp, nil
		case <-ticker.C:
		}
	}
}

func (c *Client) listContexts(ctx context.Context, base string, limit int) ([]dto.ContextResponse, error) {
	path := base
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var out dto.ContextListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Contexts, nil
}

func kindPath(kind model.ContextKind) (string, error) {
	switch kind {
	case model.ContextKindBridge:
		return "/threads", nil
	case model.ContextKindRetro:
		return "/retros", nil
	default:
		return "", fmt.Errorf("unknown context kind %q", kind)
	}
}

func contextPath(base string, id int64, suffix string) string {
	return base + "/" + strconv.FormatInt(id, 10) + suffix
}
