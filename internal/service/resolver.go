package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/alex28786/the-reef/common/id"
	"github.com/alex28786/the-reef/common/logger"
	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

type ResolveStatus string

const (
	ResolveStatusWaiting  ResolveStatus = "waiting"
	ResolveStatusRevealed ResolveStatus = "revealed"
	ResolveStatusError    ResolveStatus = "error"
)

const (
	MessageWaitingForPartner  = "waiting for the other submission"
	MessageAnalysisInProgress = "analysis in progress"
	MessageResolveFailed      = "analysis could not be completed, please try again"
)

// Eval stages recorded per kind.
const (
	EvalStageBridge = "bridge_analysis"
	EvalStageRetro  = "retro_clerk"
)

const defaultLockTTL = 45 * time.Second

// ResolveResult is the outcome of one resolve pass.
type ResolveResult struct {
	Status  ResolveStatus        `json:"status"`
	Message string               `json:"message,omitempty"`
	Context *model.SharedContext `json:"-"`
}

type ResolveOptions struct {
	// Mock asks the enricher for canned results. Ignored unless the server allows mocks.
	Mock bool
}

// Resolver decides whether a shared context's current round can be revealed,
// enriching each of its submissions at most once on the way.
type Resolver interface {
	// Resolve returns ErrContextNotFound for an unknown context. Any other
	// failure comes back as a result with status "error" alongside the error;
	// the context is never revealed by a failed pass.
	Resolve(ctx context.Context, contextID int64, opts ResolveOptions) (ResolveResult, error)
}

type ResolverConfig struct {
	LockTTL time.Duration
}

type resolver struct {
	contexts    store.SharedContextStore
	submissions store.SubmissionStore
	evals       store.LLMEvalStore
	enricher    analysis.Enricher
	locker      Locker
	lockTTL     time.Duration
	passTimeout time.Duration
	group       singleflight.Group
}

func NewResolver(
	contexts store.SharedContextStore,
	submissions store.SubmissionStore,
	evals store.LLMEvalStore,
	enricher analysis.Enricher,
	locker Locker,
	cfg ResolverConfig,
) Resolver {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	return &resolver{
		contexts:    contexts,
		submissions: submissions,
		evals:       evals,
		enricher:    enricher,
		locker:      locker,
		lockTTL:     cfg.LockTTL,
		passTimeout: cfg.LockTTL * model.SubmissionsPerRound,
	}
}

// Resolve shares one pass between concurrent callers of the same context.
// The pass is detached from the caller that started it, so a dropped poll
// does not fail the partner waiting on the same pass.
func (r *resolver) Resolve(ctx context.Context, contextID int64, opts ResolveOptions) (ResolveResult, error) {
	key := strconv.FormatInt(contextID, 10) + ":" + strconv.FormatBool(opts.Mock)
	ch := r.group.DoChan(key, func() (any, error) {
		passCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.passTimeout)
		defer cancel()
		return r.resolve(passCtx, contextID, opts)
	})

	select {
	case res := <-ch:
		if res.Shared {
			slog.DebugContext(ctx, "resolve collapsed with a concurrent call", "context_id", contextID)
		}
		result, _ := res.Val.(ResolveResult)
		return result, res.Err
	case <-ctx.Done():
		return ResolveResult{Status: ResolveStatusError, Message: MessageResolveFailed}, ctx.Err()
	}
}

func (r *resolver) resolve(ctx context.Context, contextID int64, opts ResolveOptions) (ResolveResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ContextID: logger.Ptr(contextID),
		Component: "reef.service.resolver",
	})

	sc := logger.StartSpan(ctx, "resolver.resolve")
	defer sc.End()
	ctx = sc.Context()

	sharedCtx, err := r.contexts.GetByID(ctx, contextID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ResolveResult{}, ErrContextNotFound
		}
		return r.fail(ctx, sc, "loading shared context", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ReefID: logger.Ptr(sharedCtx.ReefID),
		Kind:   logger.Ptr(string(sharedCtx.Kind)),
	})
	sc.Span().SetAttributes(
		attribute.Int64("context_id", contextID),
		attribute.String("kind", string(sharedCtx.Kind)),
		attribute.Int("round", sharedCtx.Round),
	)

	if sharedCtx.IsRevealed() {
		return ResolveResult{Status: ResolveStatusRevealed, Context: sharedCtx}, nil
	}

	subs, err := r.submissions.ListByContextRound(ctx, sharedCtx.ID, sharedCtx.Round)
	if err != nil {
		return r.fail(ctx, sc, "listing submissions", err)
	}

	if len(subs) < model.SubmissionsPerRound {
		return ResolveResult{
			Status:  ResolveStatusWaiting,
			Message: MessageWaitingForPartner,
			Context: sharedCtx,
		}, nil
	}

	if sharedCtx.Status == model.ContextStatusPending {
		if _, err := r.contexts.MarkSubmitted(ctx, sharedCtx.ID, sharedCtx.Round); err != nil {
			return r.fail(ctx, sc, "marking context submitted", err)
		}
		sharedCtx.Status = model.ContextStatusSubmitted
	}

	for _, sub := range subs {
		if sub.IsEnriched() {
			continue
		}

		done, err := r.enrichSubmission(ctx, sharedCtx, sub.ID, opts)
		if err != nil {
			return r.fail(ctx, sc, fmt.Sprintf("enriching submission %d", sub.ID), err)
		}
		if !done {
			return ResolveResult{
				Status:  ResolveStatusWaiting,
				Message: MessageAnalysisInProgress,
				Context: sharedCtx,
			}, nil
		}
	}

	// Reveal only what the store confirms is enriched
	subs, err = r.submissions.ListByContextRound(ctx, sharedCtx.ID, sharedCtx.Round)
	if err != nil {
		return r.fail(ctx, sc, "re-reading submissions", err)
	}
	for _, sub := range subs {
		if !sub.IsEnriched() {
			return ResolveResult{
				Status:  ResolveStatusWaiting,
				Message: MessageAnalysisInProgress,
				Context: sharedCtx,
			}, nil
		}
	}

	revealed, updated, err := r.contexts.MarkRevealed(ctx, sharedCtx.ID, sharedCtx.Round)
	if err != nil {
		return r.fail(ctx, sc, "marking context revealed", err)
	}
	if revealed {
		sharedCtx = updated
		slog.InfoContext(ctx, "shared context revealed", "round", sharedCtx.Round)
	} else {
		sharedCtx.Status = model.ContextStatusRevealed
	}

	return ResolveResult{Status: ResolveStatusRevealed, Context: sharedCtx}, nil
}

// enrichSubmission enriches one submission under its lease lock. It reports
// false when another caller holds the lock.
func (r *resolver) enrichSubmission(ctx context.Context, sharedCtx *model.SharedContext, submissionID int64, opts ResolveOptions) (bool, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{SubmissionID: logger.Ptr(submissionID)})

	unlock, ok, err := r.locker.TryLock(ctx, EnrichLockKey(submissionID), r.lockTTL)
	if err != nil {
		return false, fmt.Errorf("acquiring enrichment lock: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "submission is being enriched by another caller")
		return false, nil
	}
	defer unlock()

	sub, err := r.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return false, fmt.Errorf("re-reading submission: %w", err)
	}
	if sub.IsEnriched() {
		return true, nil
	}

	result, err := r.enricher.Enrich(ctx, sub.Body, sharedCtx.Kind, analysis.Options{Mock: opts.Mock})
	if err != nil {
		return false, err
	}

	written, _, err := r.submissions.SetEnrichmentIfEmpty(ctx, sub.ID, result.Enrichment)
	if err != nil {
		return false, fmt.Errorf("persisting enrichment: %w", err)
	}
	if !written {
		slog.InfoContext(ctx, "enrichment already stored, keeping existing result")
		return true, nil
	}

	slog.InfoContext(ctx, "submission enriched",
		"source", result.Enrichment.Source,
		"latency_ms", result.Latency.Milliseconds())

	r.recordEval(ctx, sharedCtx, sub, result)
	return true, nil
}

// recordEval logs the enrichment run. Failures are logged, never returned.
func (r *resolver) recordEval(ctx context.Context, sharedCtx *model.SharedContext, sub *model.Submission, result *analysis.Result) {
	if r.evals == nil {
		return
	}

	output, err := json.Marshal(result.Enrichment)
	if err != nil {
		slog.WarnContext(ctx, "failed to marshal enrichment for eval log", "error", err)
		return
	}

	stage := EvalStageBridge
	if sharedCtx.Kind == model.ContextKindRetro {
		stage = EvalStageRetro
	}

	latency := int(result.Latency.Milliseconds())
	eval := &model.LLMEval{
		ID:               id.New(),
		ContextID:        logger.Ptr(sharedCtx.ID),
		SubmissionID:     logger.Ptr(sub.ID),
		Stage:            stage,
		InputText:        sub.Body,
		OutputJSON:       output,
		Model:            result.Enrichment.Model,
		PromptVersion:    logger.Ptr(result.PromptVersion),
		LatencyMs:        &latency,
		PromptTokens:     logger.Ptr(result.Usage.PromptTokens),
		CompletionTokens: logger.Ptr(result.Usage.CompletionTokens),
	}
	if _, err := r.evals.Create(ctx, eval); err != nil {
		slog.WarnContext(ctx, "failed to record llm eval", "error", err, "stage", stage)
	}
}

func (r *resolver) fail(ctx context.Context, sc *logger.SpanContext, step string, err error) (ResolveResult, error) {
	err = fmt.Errorf("%s: %w", step, err)
	sc.RecordError(err)
	slog.ErrorContext(ctx, "resolve failed", "error", err)
	return ResolveResult{Status: ResolveStatusError, Message: MessageResolveFailed}, err
}

// EnrichLockKey is the lease held while a submission is read and enriched.
// Anything that rewrites the body takes the same lease.
func EnrichLockKey(submissionID int64) string {
	return "enrich:" + strconv.FormatInt(submissionID, 10)
}
