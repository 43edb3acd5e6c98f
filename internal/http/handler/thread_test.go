package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/internal/http/handler"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

var _ = Describe("ThreadHandler", func() {
	var (
		router *gin.Engine
		svc    *mockBridgeService
		alice  *model.User
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockBridgeService{}
		alice = &model.User{ID: 1, Name: "Alice"}
		h := handler.NewThreadHandler(svc)

		threads := router.Group("/threads", asUser(alice))
		threads.GET("", h.List)
		threads.POST("", h.Compose)
		threads.GET("/:id", h.Get)
		threads.POST("/:id/messages", h.Send)
		threads.POST("/:id/acknowledge", h.Acknowledge)
		threads.POST("/:id/resolve", h.Resolve)
	})

	Describe("Compose", func() {
		It("returns 201 with the thread", func() {
			svc.composeFn = func(_ context.Context, userID int64, title string, msg service.MessageParams) (*service.ThreadView, error) {
				Expect(userID).To(Equal(alice.ID))
				Expect(title).To(Equal("Dinner"))
				Expect(*msg.Emotion).To(Equal(model.EmotionHurt))
				body := msg.Body
				return &service.ThreadView{
					Context:  thread(100, model.ContextStatusPending),
					Messages: []service.SubmissionView{{ID: 5, AuthorID: userID, Mine: true, Round: 1, Body: &body, Emotion: msg.Emotion}},
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/threads", map[string]any{
				"title":   "Dinner",
				"body":    "You always ignore me about dinner plans",
				"emotion": "hurt",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decode(w)
			Expect(resp["thread"].(map[string]any)["id"]).To(Equal("100"))
			messages := resp["messages"].([]any)
			Expect(messages).To(HaveLen(1))
			Expect(messages[0].(map[string]any)["body"]).To(Equal("You always ignore me about dinner plans"))
		})

		It("returns 400 without an emotion", func() {
			w := doJSON(router, http.MethodPost, "/threads", map[string]any{"body": "hello there"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 409 when the reef has no partner", func() {
			svc.composeFn = func(context.Context, int64, string, service.MessageParams) (*service.ThreadView, error) {
				return nil, service.ErrPartnerMissing
			}

			w := doJSON(router, http.MethodPost, "/threads", map[string]any{"body": "hello there", "emotion": "sad"})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decode(w)["code"]).To(Equal("partner_missing"))
		})
	})

	It("omits hidden message bodies", func() {
		svc.getFn = func(context.Context, int64, int64) (*service.ThreadView, error) {
			hurt := model.EmotionHurt
			return &service.ThreadView{
				Context:  thread(100, model.ContextStatusPending),
				Messages: []service.SubmissionView{{ID: 5, AuthorID: 2, Round: 1, Emotion: &hurt}},
			}, nil
		}

		w := doJSON(router, http.MethodGet, "/threads/100", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		msg := decode(w)["messages"].([]any)[0].(map[string]any)
		Expect(msg).NotTo(HaveKey("body"))
		Expect(msg["emotion"]).To(Equal("hurt"))
	})

	DescribeTable("maps service errors",
		func(err error, status int) {
			svc.sendFn = func(context.Context, int64, int64, service.MessageParams) (*service.ThreadView, error) {
				return nil, err
			}
			w := doJSON(router, http.MethodPost, "/threads/100/messages", map[string]any{"body": "I hear you"})
			Expect(w.Code).To(Equal(status))
		},
		Entry("unknown thread", service.ErrContextNotFound, http.StatusNotFound),
		Entry("a retro id", service.ErrWrongKind, http.StatusNotFound),
		Entry("outside the reef", service.ErrNotParticipant, http.StatusForbidden),
		Entry("second message", service.ErrAlreadySubmitted, http.StatusConflict),
		Entry("full round", service.ErrRoundClosed, http.StatusConflict),
		Entry("bad body", service.ErrInvalidInput, http.StatusBadRequest),
		Entry("store failure", errors.New("connection refused"), http.StatusInternalServerError),
	)

	It("returns 400 for a malformed id", func() {
		w := doJSON(router, http.MethodGet, "/threads/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("passes the list limit through", func() {
		svc.listFn = func(_ context.Context, _ int64, limit int32) ([]model.SharedContext, error) {
			Expect(limit).To(Equal(int32(5)))
			return []model.SharedContext{*thread(100, model.ContextStatusRevealed)}, nil
		}

		w := doJSON(router, http.MethodGet, "/threads?limit=5", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["contexts"]).To(HaveLen(1))
	})

	Describe("Resolve", func() {
		It("returns waiting without a body", func() {
			svc.resolveFn = func(_ context.Context, _, _ int64, opts service.ResolveOptions) (service.ResolveResult, error) {
				Expect(opts.Mock).To(BeFalse())
				return service.ResolveResult{Status: service.ResolveStatusWaiting, Message: service.MessageWaitingForPartner}, nil
			}

			w := doJSON(router, http.MethodPost, "/threads/100/resolve", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)).To(Equal(map[string]any{
				"status":  "waiting",
				"message": service.MessageWaitingForPartner,
			}))
		})

		It("forwards the mock flag", func() {
			svc.resolveFn = func(_ context.Context, _, _ int64, opts service.ResolveOptions) (service.ResolveResult, error) {
				Expect(opts.Mock).To(BeTrue())
				return service.ResolveResult{Status: service.ResolveStatusRevealed, Context: thread(100, model.ContextStatusRevealed)}, nil
			}

			w := doJSON(router, http.MethodPost, "/threads/100/resolve", map[string]any{"mock": true})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["status"]).To(Equal("revealed"))
			Expect(resp["context"].(map[string]any)["status"]).To(Equal("revealed"))
		})

		It("returns 404 for an unknown thread", func() {
			svc.resolveFn = func(context.Context, int64, int64, service.ResolveOptions) (service.ResolveResult, error) {
				return service.ResolveResult{}, service.ErrContextNotFound
			}

			w := doJSON(router, http.MethodPost, "/threads/100/resolve", nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("reports a failed pass as an error status", func() {
			svc.resolveFn = func(context.Context, int64, int64, service.ResolveOptions) (service.ResolveResult, error) {
				err := errors.New("enriching submission 5: upstream down")
				return service.ResolveResult{Status: service.ResolveStatusError, Message: service.MessageResolveFailed}, err
			}

			w := doJSON(router, http.MethodPost, "/threads/100/resolve", nil)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			resp := decode(w)
			Expect(resp["status"]).To(Equal("error"))
			Expect(resp["message"]).To(Equal(service.MessageResolveFailed))
			Expect(resp["message"]).NotTo(ContainSubstring("upstream down"))
		})
	})
})
