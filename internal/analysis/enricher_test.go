package analysis_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/core/config"
	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
)

var _ = Describe("Enricher", func() {
	var (
		ctx     context.Context
		backend *mockBackend
		catalog *analysis.PromptCatalog
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = &mockBackend{}

		var err error
		catalog, err = analysis.NewPromptCatalog(nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("validation", func() {
		DescribeTable("rejects unusable text without calling the backend",
			func(text string, kind model.ContextKind) {
				enricher := analysis.NewEnricher(backend, catalog, analysis.Config{})
				_, err := enricher.Enrich(ctx, text, kind, analysis.Options{})

				Expect(errors.Is(err, analysis.ErrInvalidText)).To(BeTrue())
				Expect(backend.bridgeCalls.Load()).To(BeZero())
				Expect(backend.retroCalls.Load()).To(BeZero())
			},
			Entry("empty bridge text", "", model.ContextKindBridge),
			Entry("blank bridge text", "   ", model.ContextKindBridge),
			Entry("two-character bridge text", " hi ", model.ContextKindBridge),
			Entry("empty retro narrative", "\n\t", model.ContextKindRetro),
		)

		It("accepts a short retro narrative", func() {
			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{})
			_, err := enricher.Enrich(ctx, "ok", model.ContextKindRetro, analysis.Options{})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects unknown kinds", func() {
			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{})
			_, err := enricher.Enrich(ctx, "some text", model.ContextKind("poem"), analysis.Options{})
			Expect(errors.Is(err, analysis.ErrUnsupportedKind)).To(BeTrue())
		})
	})

	Describe("bridge", func() {
		It("builds a versioned enrichment with catalog prompts", func() {
			var gotPrompts analysis.BridgePrompts
			backend.bridgeFn = func(_ context.Context, text string, prompts analysis.BridgePrompts) (*model.BridgeAnalysis, analysis.Usage, error) {
				gotPrompts = prompts
				return analysis.FallbackBridge(text), analysis.Usage{PromptTokens: 10, CompletionTokens: 5}, nil
			}

			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{})
			result, err := enricher.Enrich(ctx, "You never call", model.ContextKindBridge, analysis.Options{})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Enrichment.Version).To(Equal(model.EnrichmentVersion))
			Expect(result.Enrichment.Kind).To(Equal(model.ContextKindBridge))
			Expect(result.Enrichment.Source).To(Equal(model.EnrichmentSourceLLM))
			Expect(result.Enrichment.Model).To(Equal("test-model"))
			Expect(result.Enrichment.EnrichedAt).NotTo(BeZero())
			Expect(result.Enrichment.Bridge.HorsemenFlags).To(ContainElement(model.HorsemanCriticism))
			Expect(result.Enrichment.Retro).To(BeNil())
			Expect(result.Usage.PromptTokens).To(Equal(10))
			Expect(result.PromptVersion).To(Equal("bridge_four_horsemen_v1,bridge_nvc_transform_v1"))
			Expect(gotPrompts.FourHorsemen).NotTo(BeEmpty())
		})

		It("uses prompts supplied by the caller", func() {
			var gotPrompts analysis.BridgePrompts
			backend.bridgeFn = func(_ context.Context, text string, prompts analysis.BridgePrompts) (*model.BridgeAnalysis, analysis.Usage, error) {
				gotPrompts = prompts
				return analysis.FallbackBridge(text), analysis.Usage{}, nil
			}

			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{})
			result, err := enricher.Enrich(ctx, "You never call", model.ContextKindBridge, analysis.Options{
				BridgePrompts: analysis.BridgePrompts{FourHorsemen: "fh", NVC: "nvc"},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(gotPrompts).To(Equal(analysis.BridgePrompts{FourHorsemen: "fh", NVC: "nvc"}))
			Expect(result.PromptVersion).To(Equal("request"))
		})

		It("rejects an incomplete backend result", func() {
			backend.bridgeFn = func(_ context.Context, _ string, _ analysis.BridgePrompts) (*model.BridgeAnalysis, analysis.Usage, error) {
				return &model.BridgeAnalysis{}, analysis.Usage{}, nil
			}

			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{})
			_, err := enricher.Enrich(ctx, "You never call", model.ContextKindBridge, analysis.Options{})

			Expect(err).To(MatchError(ContainSubstring("incomplete bridge result")))
		})
	})

	Describe("mock flag", func() {
		It("returns the canned response when mocks are allowed", func() {
			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{AllowMock: true})
			result, err := enricher.Enrich(ctx, "help me", model.ContextKindBridge, analysis.Options{Mock: true})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Enrichment.Source).To(Equal(model.EnrichmentSourceMock))
			Expect(result.Enrichment.Bridge.TransformedText).To(HavePrefix("[MOCK]"))
			Expect(backend.bridgeCalls.Load()).To(BeZero())
		})

		It("ignores the flag when the server does not allow mocks", func() {
			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{AllowMock: false})
			result, err := enricher.Enrich(ctx, "help me", model.ContextKindBridge, analysis.Options{Mock: true})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Enrichment.Source).To(Equal(model.EnrichmentSourceLLM))
			Expect(backend.bridgeCalls.Load()).To(Equal(int32(1)))
		})
	})

	Describe("failures", func() {
		It("surfaces a missing configuration instead of falling back", func() {
			unconfigured, err := analysis.NewBackend(ctx, config.Config{
				Analysis: config.AnalysisConfig{Backend: config.AnalysisBackendLLM},
			}, nil)
			Expect(err).NotTo(HaveOccurred())

			enricher := analysis.NewEnricher(unconfigured, catalog, analysis.Config{})
			_, err = enricher.Enrich(ctx, "You never call", model.ContextKindBridge, analysis.Options{})

			Expect(errors.Is(err, analysis.ErrNotConfigured)).To(BeTrue())
		})

		It("bounds the backend call with the configured timeout", func() {
			backend.retroFn = func(ctx context.Context, _, _ string) (*model.RetroAnalysis, analysis.Usage, error) {
				<-ctx.Done()
				return nil, analysis.Usage{}, ctx.Err()
			}

			enricher := analysis.NewEnricher(backend, catalog, analysis.Config{Timeout: 20 * time.Millisecond})
			start := time.Now()
			_, err := enricher.Enrich(ctx, "We argued.", model.ContextKindRetro, analysis.Options{})

			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))
		})
	})

	Describe("heuristic backend", func() {
		It("enriches retro narratives offline", func() {
			enricher := analysis.NewEnricher(analysis.NewHeuristicBackend(), catalog, analysis.Config{})
			result, err := enricher.Enrich(ctx,
				"I thought we agreed on pepperoni, but she ordered hawaiian. I felt unheard.",
				model.ContextKindRetro, analysis.Options{})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Enrichment.Source).To(Equal(model.EnrichmentSourceHeuristic))
			Expect(result.Enrichment.Complete()).To(BeTrue())
		})
	})
})
