package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/http/middleware"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

// asUser stands in for RequireAuth.
func asUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func strPtr(s string) *string { return &s }

func thread(id int64, status model.ContextStatus) *model.SharedContext {
	return &model.SharedContext{
		ID:        id,
		ReefID:    10,
		Kind:      model.ContextKindBridge,
		Title:     "Dinner",
		Status:    status,
		Round:     1,
		CreatedBy: 1,
		CreatedAt: time.Now(),
	}
}

type mockBridgeService struct {
	composeFn     func(ctx context.Context, userID int64, title string, msg service.MessageParams) (*service.ThreadView, error)
	sendFn        func(ctx context.Context, userID, threadID int64, msg service.MessageParams) (*service.ThreadView, error)
	getFn         func(ctx context.Context, userID, threadID int64) (*service.ThreadView, error)
	listFn        func(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error)
	acknowledgeFn func(ctx context.Context, userID, threadID int64) (*service.ThreadView, error)
	resolveFn     func(ctx context.Context, userID, threadID int64, opts service.ResolveOptions) (service.ResolveResult, error)
}

func (m *mockBridgeService) Compose(ctx context.Context, userID int64, title string, msg service.MessageParams) (*service.ThreadView, error) {
	if m.composeFn != nil {
		return m.composeFn(ctx, userID, title, msg)
	}
	return nil, nil
}

func (m *mockBridgeService) Send(ctx context.Context, userID, threadID int64, msg service.MessageParams) (*service.ThreadView, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, userID, threadID, msg)
	}
	return nil, nil
}

func (m *mockBridgeService) Get(ctx context.Context, userID, threadID int64) (*service.ThreadView, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, threadID)
	}
	return nil, nil
}

func (m *mockBridgeService) List(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockBridgeService) Acknowledge(ctx context.Context, userID, threadID int64) (*service.ThreadView, error) {
	if m.acknowledgeFn != nil {
		return m.acknowledgeFn(ctx, userID, threadID)
	}
	return nil, nil
}

func (m *mockBridgeService) Resolve(ctx context.Context, userID, threadID int64, opts service.ResolveOptions) (service.ResolveResult, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, userID, threadID, opts)
	}
	return service.ResolveResult{}, nil
}

type mockRetroService struct {
	createFn  func(ctx context.Context, userID int64, title string, eventDate *time.Time, narrative string) (*service.RetroView, error)
	submitFn  func(ctx context.Context, userID, retroID int64, narrative string) (*service.RetroView, error)
	reviseFn  func(ctx context.Context, userID, retroID int64, narrative string) (*service.RetroView, error)
	getFn     func(ctx context.Context, userID, retroID int64) (*service.RetroView, error)
	listFn    func(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error)
	resolveFn func(ctx context.Context, userID, retroID int64, opts service.ResolveOptions) (service.ResolveResult, error)
}

func (m *mockRetroService) Create(ctx context.Context, userID int64, title string, eventDate *time.Time, narrative string) (*service.RetroView, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, title, eventDate, narrative)
	}
	return nil, nil
}

func (m *mockRetroService) Submit(ctx context.Context, userID, retroID int64, narrative string) (*service.RetroView, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, userID, retroID, narrative)
	}
	return nil, nil
}

func (m *mockRetroService) Revise(ctx context.Context, userID, retroID int64, narrative string) (*service.RetroView, error) {
	if m.reviseFn != nil {
		return m.reviseFn(ctx, userID, retroID, narrative)
	}
	return nil, nil
}

func (m *mockRetroService) Get(ctx context.Context, userID, retroID int64) (*service.RetroView, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, retroID)
	}
	return nil, nil
}

func (m *mockRetroService) List(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockRetroService) Resolve(ctx context.Context, userID, retroID int64, opts service.ResolveOptions) (service.ResolveResult, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, userID, retroID, opts)
	}
	return service.ResolveResult{}, nil
}

type mockSubmissionService struct {
	saveArtifactFn func(ctx context.Context, userID, submissionID int64, artifact string) (*model.Submission, error)
}

func (m *mockSubmissionService) SaveArtifact(ctx context.Context, userID, submissionID int64, artifact string) (*model.Submission, error) {
	if m.saveArtifactFn != nil {
		return m.saveArtifactFn(ctx, userID, submissionID, artifact)
	}
	return nil, nil
}

type mockReefService struct {
	createFn         func(ctx context.Context, userID int64, name string) (*model.Reef, error)
	inviteFn         func(ctx context.Context, userID int64, email string) (*model.ReefInvitation, string, error)
	validateInviteFn func(ctx context.Context, token string) (*model.ReefInvitation, *model.Reef, error)
	joinFn           func(ctx context.Context, userID int64, token string) (*model.Reef, error)
}

func (m *mockReefService) Create(ctx context.Context, userID int64, name string) (*model.Reef, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name)
	}
	return nil, nil
}

func (m *mockReefService) Invite(ctx context.Context, userID int64, email string) (*model.ReefInvitation, string, error) {
	if m.inviteFn != nil {
		return m.inviteFn(ctx, userID, email)
	}
	return nil, "", nil
}

func (m *mockReefService) ValidateInvite(ctx context.Context, token string) (*model.ReefInvitation, *model.Reef, error) {
	if m.validateInviteFn != nil {
		return m.validateInviteFn(ctx, token)
	}
	return nil, nil, service.ErrInviteInvalid
}

func (m *mockReefService) Join(ctx context.Context, userID int64, token string) (*model.Reef, error) {
	if m.joinFn != nil {
		return m.joinFn(ctx, userID, token)
	}
	return nil, nil
}

type mockUserService struct {
	profileFn func(ctx context.Context, userID int64) (*service.Profile, error)
}

func (m *mockUserService) Profile(ctx context.Context, userID int64) (*service.Profile, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, userID)
	}
	return nil, service.ErrUserNotFound
}

type mockAuthService struct {
	getAuthorizationURLFn func(state string) (string, error)
	handleCallbackFn      func(ctx context.Context, code string) (*model.User, *model.Session, error)
	devLoginFn            func(ctx context.Context, email, name string) (*model.User, *model.Session, error)
	validateSessionFn     func(ctx context.Context, token string) (*model.User, error)
	logoutFn              func(ctx context.Context, token string) error
}

func (m *mockAuthService) GetAuthorizationURL(state string) (string, error) {
	if m.getAuthorizationURLFn != nil {
		return m.getAuthorizationURLFn(state)
	}
	return "", service.ErrAuthNotConfigured
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, code)
	}
	return nil, nil, service.ErrInvalidCode
}

func (m *mockAuthService) DevLogin(ctx context.Context, email, name string) (*model.User, *model.Session, error) {
	if m.devLoginFn != nil {
		return m.devLoginFn(ctx, email, name)
	}
	return nil, nil, service.ErrDevLoginUnavailable
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if m.validateSessionFn != nil {
		return m.validateSessionFn(ctx, token)
	}
	return nil, service.ErrSessionExpired
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

type mockEnricher struct {
	enrichFn func(ctx context.Context, text string, kind model.ContextKind, opts analysis.Options) (*analysis.Result, error)
}

func (m *mockEnricher) Enrich(ctx context.Context, text string, kind model.ContextKind, opts analysis.Options) (*analysis.Result, error) {
	if m.enrichFn != nil {
		return m.enrichFn(ctx, text, kind, opts)
	}
	enrichment := &model.Enrichment{Version: model.EnrichmentVersion, Kind: kind, Source: model.EnrichmentSourceHeuristic}
	if kind == model.ContextKindBridge {
		enrichment.Bridge = analysis.FallbackBridge(text)
	} else {
		enrichment.Retro = analysis.FallbackRetro(text)
	}
	return &analysis.Result{Enrichment: enrichment}, nil
}
