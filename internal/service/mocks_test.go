package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
	"github.com/alex28786/the-reef/internal/store"
)

// memContexts is an in-memory SharedContextStore with the same conditional
// updates as the SQL queries.
type memContexts struct {
	mu    sync.Mutex
	items map[int64]*model.SharedContext
}

func newMemContexts() *memContexts {
	return &memContexts{items: make(map[int64]*model.SharedContext)}
}

func (m *memContexts) put(sc model.SharedContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[sc.ID] = &sc
}

func (m *memContexts) status(id int64) model.ContextStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].Status
}

func (m *memContexts) Create(_ context.Context, sc *model.SharedContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc.CreatedAt = time.Now()
	sc.UpdatedAt = sc.CreatedAt
	c := *sc
	m.items[sc.ID] = &c
	return nil
}

func (m *memContexts) GetByID(_ context.Context, id int64) (*model.SharedContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *sc
	return &c, nil
}

func (m *memContexts) ListByReef(_ context.Context, reefID int64, kind model.ContextKind, limit int32) ([]model.SharedContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SharedContext
	for _, sc := range m.items {
		if sc.ReefID == reefID && sc.Kind == kind {
			out = append(out, *sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if int32(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memContexts) MarkSubmitted(_ context.Context, id int64, round int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.items[id]
	if !ok || sc.Status != model.ContextStatusPending || sc.Round != round {
		return false, nil
	}
	sc.Status = model.ContextStatusSubmitted
	return true, nil
}

func (m *memContexts) MarkRevealed(_ context.Context, id int64, round int) (bool, *model.SharedContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.items[id]
	if !ok || sc.Status == model.ContextStatusRevealed || sc.Round != round {
		return false, nil, nil
	}
	sc.Status = model.ContextStatusRevealed
	c := *sc
	return true, &c, nil
}

func (m *memContexts) AdvanceRound(_ context.Context, id int64, round int) (*model.SharedContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.items[id]
	if !ok || sc.Status != model.ContextStatusRevealed || sc.Round != round {
		return nil, store.ErrNotFound
	}
	sc.Round++
	sc.Status = model.ContextStatusPending
	c := *sc
	return &c, nil
}

// memSubmissions is an in-memory SubmissionStore. Enrichment writes are guarded
// exactly like the SQL: only a row without enrichment is updated.
type memSubmissions struct {
	mu           sync.Mutex
	items        map[int64]*model.Submission
	order        []int64
	enrichWrites map[int64]int
	listErr      error
	// beforeRevise runs ahead of the guarded update, standing in for a
	// concurrent writer.
	beforeRevise func()
}

func newMemSubmissions() *memSubmissions {
	return &memSubmissions{
		items:        make(map[int64]*model.Submission),
		enrichWrites: make(map[int64]int),
	}
}

func (m *memSubmissions) totalWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.enrichWrites {
		total += n
	}
	return total
}

func (m *memSubmissions) writes(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enrichWrites[id]
}

func (m *memSubmissions) get(id int64) *model.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *m.items[id]
	return &c
}

func (m *memSubmissions) Create(_ context.Context, sub *model.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.ContextID == sub.ContextID && existing.Round == sub.Round && existing.AuthorID == sub.AuthorID {
			return store.ErrDuplicate
		}
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	sub.UpdatedAt = sub.SubmittedAt
	c := *sub
	m.items[sub.ID] = &c
	m.order = append(m.order, sub.ID)
	return nil
}

func (m *memSubmissions) GetByID(_ context.Context, id int64) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *sub
	return &c, nil
}

func (m *memSubmissions) ListByContextRound(_ context.Context, contextID int64, round int) ([]model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.Submission
	for _, id := range m.order {
		if sub := m.items[id]; sub.ContextID == contextID && sub.Round == round {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (m *memSubmissions) ListByContext(_ context.Context, contextID int64) ([]model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Submission
	for _, id := range m.order {
		if sub := m.items[id]; sub.ContextID == contextID {
			out = append(out, *sub)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}

func (m *memSubmissions) SetEnrichmentIfEmpty(_ context.Context, id int64, enrichment *model.Enrichment) (bool, *model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.items[id]
	if !ok || sub.Enrichment != nil {
		return false, nil, nil
	}
	now := time.Now()
	sub.Enrichment = enrichment
	sub.EnrichedAt = &now
	m.enrichWrites[id]++
	c := *sub
	return true, &c, nil
}

func (m *memSubmissions) Revise(_ context.Context, id, authorID int64, body string) (*model.Submission, error) {
	if m.beforeRevise != nil {
		m.beforeRevise()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.items[id]
	if !ok || sub.AuthorID != authorID || sub.Enrichment != nil {
		return nil, store.ErrNotFound
	}
	for _, other := range m.items {
		if other.ContextID == sub.ContextID && other.Round == sub.Round && other.AuthorID != authorID {
			return nil, store.ErrNotFound
		}
	}
	sub.Body = body
	c := *sub
	return &c, nil
}

func (m *memSubmissions) SetArtifact(_ context.Context, id, authorID int64, artifact string) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.items[id]
	if !ok || sub.AuthorID != authorID {
		return nil, store.ErrNotFound
	}
	sub.Artifact = &artifact
	c := *sub
	return &c, nil
}

func (m *memSubmissions) Acknowledge(_ context.Context, id int64) (bool, *model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.items[id]
	if !ok {
		return false, nil, store.ErrNotFound
	}
	if sub.AcknowledgedAt != nil {
		return false, nil, nil
	}
	now := time.Now()
	sub.AcknowledgedAt = &now
	c := *sub
	return true, &c, nil
}

type memUsers struct {
	mu    sync.Mutex
	items map[int64]*model.User
}

func newMemUsers(users ...model.User) *memUsers {
	m := &memUsers{items: make(map[int64]*model.User)}
	for i := range users {
		u := users[i]
		m.items[u.ID] = &u
	}
	return m
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) Upsert(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Email == user.Email {
			u.Name = user.Name
			*user = *u
			return nil
		}
	}
	c := *user
	m.items[user.ID] = &c
	return nil
}

func (m *memUsers) JoinReef(_ context.Context, userID, reefID int64, role string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[userID]
	if !ok || u.ReefID != nil {
		return nil, store.ErrNotFound
	}
	u.ReefID = &reefID
	u.Role = &role
	c := *u
	return &c, nil
}

func (m *memUsers) ListByReef(_ context.Context, reefID int64) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.User
	for _, u := range m.items {
		if u.InReef(reefID) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) CountByReef(ctx context.Context, reefID int64) (int64, error) {
	members, _ := m.ListByReef(ctx, reefID)
	return int64(len(members)), nil
}

type memEvals struct {
	mu        sync.Mutex
	items     []model.LLMEval
	createErr error
}

func (m *memEvals) Create(_ context.Context, eval *model.LLMEval) (*model.LLMEval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.items = append(m.items, *eval)
	return eval, nil
}

func (m *memEvals) ListBySubmission(_ context.Context, submissionID int64) ([]model.LLMEval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.LLMEval
	for _, e := range m.items {
		if e.SubmissionID != nil && *e.SubmissionID == submissionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEvals) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type mockReefStore struct {
	createFn  func(ctx context.Context, reef *model.Reef) error
	getByIDFn func(ctx context.Context, id int64) (*model.Reef, error)
}

func (m *mockReefStore) Create(ctx context.Context, reef *model.Reef) error {
	if m.createFn != nil {
		return m.createFn(ctx, reef)
	}
	return nil
}

func (m *mockReefStore) GetByID(ctx context.Context, id int64) (*model.Reef, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Reef{ID: id, Name: "Our reef"}, nil
}

type mockInvitationStore struct {
	createFn          func(ctx context.Context, inv *model.ReefInvitation) error
	getValidByTokenFn func(ctx context.Context, token string) (*model.ReefInvitation, error)
	acceptFn          func(ctx context.Context, id, userID int64) (*model.ReefInvitation, error)
}

func (m *mockInvitationStore) Create(ctx context.Context, inv *model.ReefInvitation) error {
	if m.createFn != nil {
		return m.createFn(ctx, inv)
	}
	return nil
}

func (m *mockInvitationStore) GetValidByToken(ctx context.Context, token string) (*model.ReefInvitation, error) {
	if m.getValidByTokenFn != nil {
		return m.getValidByTokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) Accept(ctx context.Context, id, userID int64) (*model.ReefInvitation, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, id, userID)
	}
	return &model.ReefInvitation{ID: id, AcceptedBy: &userID, Status: model.InvitationStatusAccepted}, nil
}

func (m *mockInvitationStore) ExpireOld(context.Context) error {
	return nil
}

type mockSessionStore struct {
	createFn          func(ctx context.Context, session *model.Session) error
	getValidByTokenFn func(ctx context.Context, token string) (*model.Session, error)
	deleteByTokenFn   func(ctx context.Context, token string) error
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) GetValidByToken(ctx context.Context, token string) (*model.Session, error) {
	if m.getValidByTokenFn != nil {
		return m.getValidByTokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) DeleteByToken(ctx context.Context, token string) error {
	if m.deleteByTokenFn != nil {
		return m.deleteByTokenFn(ctx, token)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(context.Context) error {
	return nil
}

// memTx runs the function against the same in-memory stores.
type memTx struct {
	users       store.UserStore
	reefs       store.ReefStore
	invitations store.ReefInvitationStore
	contexts    store.SharedContextStore
	submissions store.SubmissionStore
}

func (t *memTx) WithTx(_ context.Context, fn func(stores service.StoreProvider) error) error {
	return fn(t)
}

func (t *memTx) Users() store.UserStore                     { return t.users }
func (t *memTx) Reefs() store.ReefStore                     { return t.reefs }
func (t *memTx) ReefInvitations() store.ReefInvitationStore { return t.invitations }
func (t *memTx) SharedContexts() store.SharedContextStore   { return t.contexts }
func (t *memTx) Submissions() store.SubmissionStore         { return t.submissions }

type mockEnricher struct {
	mu       sync.Mutex
	calls    int
	enrichFn func(ctx context.Context, text string, kind model.ContextKind, opts analysis.Options) (*analysis.Result, error)
}

func (m *mockEnricher) Enrich(ctx context.Context, text string, kind model.ContextKind, opts analysis.Options) (*analysis.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.enrichFn != nil {
		return m.enrichFn(ctx, text, kind, opts)
	}
	return heuristicResult(text, kind, "heuristic-v1"), nil
}

func (m *mockEnricher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func heuristicResult(text string, kind model.ContextKind, modelName string) *analysis.Result {
	e := &model.Enrichment{
		Version:    model.EnrichmentVersion,
		Kind:       kind,
		Source:     model.EnrichmentSourceHeuristic,
		Model:      modelName,
		EnrichedAt: time.Now(),
	}
	if kind == model.ContextKindBridge {
		e.Bridge = analysis.FallbackBridge(text)
	} else {
		e.Retro = analysis.FallbackRetro(text)
	}
	return &analysis.Result{Enrichment: e, PromptVersion: "test", Latency: time.Millisecond}
}
