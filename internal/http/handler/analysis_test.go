package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/http/handler"
	"github.com/alex28786/the-reef/internal/model"
)

var _ = Describe("AnalysisHandler", func() {
	var (
		router   *gin.Engine
		enricher *mockEnricher
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		enricher = &mockEnricher{}
		h := handler.NewAnalysisHandler(enricher)
		router.POST("/analysis/bridge", h.Bridge)
		router.POST("/analysis/retro", h.Retro)
	})

	It("answers the bridge wire contract", func() {
		enricher.enrichFn = func(ctx context.Context, text string, kind model.ContextKind, opts analysis.Options) (*analysis.Result, error) {
			Expect(kind).To(Equal(model.ContextKindBridge))
			Expect(opts.Mock).To(BeTrue())
			Expect(opts.BridgePrompts.FourHorsemen).To(Equal("find horsemen"))
			Expect(opts.BridgePrompts.NVC).To(Equal("rewrite"))
			return (&mockEnricher{}).Enrich(ctx, text, kind, opts)
		}

		w := doJSON(router, http.MethodPost, "/analysis/bridge", analysis.BridgeRequest{
			Text:               "You always ignore me about dinner plans",
			FourHorsemenPrompt: "find horsemen",
			NVCPrompt:          "rewrite",
			Mock:               true,
		})

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["transformedText"]).To(HavePrefix("I'm feeling upset"))
		wire := resp["analysis"].(map[string]any)
		Expect(wire["horsemenFlags"]).To(ContainElement("criticism"))
		Expect(wire["detectedHorsemen"]).NotTo(BeEmpty())
	})

	It("answers the retro wire contract", func() {
		w := doJSON(router, http.MethodPost, "/analysis/retro", analysis.RetroRequest{
			Narrative: "She texted at 7. He seemed upset.",
		})

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["videoFacts"]).NotTo(BeEmpty())
		Expect(resp["mindReads"]).NotTo(BeEmpty())
	})

	DescribeTable("maps enricher failures",
		func(err error, status int) {
			enricher.enrichFn = func(context.Context, string, model.ContextKind, analysis.Options) (*analysis.Result, error) {
				return nil, err
			}
			w := doJSON(router, http.MethodPost, "/analysis/bridge", analysis.BridgeRequest{Text: "hi"})
			Expect(w.Code).To(Equal(status))
		},
		Entry("short text", analysis.ErrInvalidText, http.StatusBadRequest),
		Entry("no credentials", analysis.ErrNotConfigured, http.StatusServiceUnavailable),
		Entry("provider outage", &analysis.UpstreamError{StatusCode: 503, Body: "down"}, http.StatusBadGateway),
		Entry("timeout", errors.New("analysis timed out after 20s"), http.StatusBadGateway),
	)
})
