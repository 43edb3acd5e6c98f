package analysis_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
)

var _ = Describe("HTTP backend", func() {
	var (
		ctx     context.Context
		server  *httptest.Server
		handler http.HandlerFunc
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler(w, r)
		}))
		DeferCleanup(server.Close)
	})

	It("posts the bridge wire contract and normalizes the answer", func() {
		var got analysis.BridgeRequest
		handler = func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/analysis/bridge"))
			Expect(json.NewDecoder(r.Body).Decode(&got)).To(Succeed())
			_, _ = w.Write([]byte(`{"analysis":{"horsemenFlags":["criticism","blame"],"detectedHorsemen":[{"type":"criticism","reason":"r","quote":"you never"}],"sentiment":"tense","suggestions":["pause"]},"transformedText":"I miss our calls."}`))
		}

		backend := analysis.NewHTTPBackend(server.URL+"/", server.Client())
		a, _, err := backend.AnalyzeBridge(ctx, "You never call", analysis.BridgePrompts{FourHorsemen: "fh", NVC: "nvc"})

		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(analysis.BridgeRequest{Text: "You never call", FourHorsemenPrompt: "fh", NVCPrompt: "nvc"}))
		Expect(a.HorsemenFlags).To(Equal([]model.Horseman{model.HorsemanCriticism}))
		Expect(a.TransformedText).To(Equal("I miss our calls."))
		Expect(backend.Source()).To(Equal(model.EnrichmentSourceHTTP))
	})

	It("reports non-2xx answers as upstream errors", func() {
		handler = func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
		}

		backend := analysis.NewHTTPBackend(server.URL, server.Client())
		_, _, err := backend.AnalyzeRetro(ctx, "We argued.", "prompt")

		var upstream *analysis.UpstreamError
		Expect(errors.As(err, &upstream)).To(BeTrue())
		Expect(upstream.StatusCode).To(Equal(http.StatusBadGateway))
		Expect(upstream.Body).To(ContainSubstring("model overloaded"))
	})

	It("degrades malformed bodies to defaults", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}

		backend := analysis.NewHTTPBackend(server.URL, server.Client())

		a, _, err := backend.AnalyzeBridge(ctx, "You never call", analysis.BridgePrompts{})
		Expect(err).NotTo(HaveOccurred())
		Expect(a.HorsemenFlags).To(BeEmpty())
		Expect(a.Sentiment).To(Equal("neutral"))
		Expect(a.TransformedText).To(Equal("You never call"))

		r, _, err := backend.AnalyzeRetro(ctx, "We argued.", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(r.VideoFacts).NotTo(BeEmpty())
		Expect(r.MindReads).NotTo(BeEmpty())
	})
})
