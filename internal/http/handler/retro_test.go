package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/internal/http/handler"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

var _ = Describe("RetroHandler", func() {
	var (
		router *gin.Engine
		svc    *mockRetroService
		subs   *mockSubmissionService
	)

	retro := func(status model.ContextStatus) *model.SharedContext {
		sc := thread(200, status)
		sc.Kind = model.ContextKindRetro
		sc.Title = "Pizza night"
		return sc
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockRetroService{}
		subs = &mockSubmissionService{}
		h := handler.NewRetroHandler(svc)
		sh := handler.NewSubmissionHandler(subs)

		authed := router.Group("", asUser(&model.User{ID: 1}))
		authed.POST("/retros", h.Create)
		authed.GET("/retros/:id", h.Get)
		authed.POST("/retros/:id/submissions", h.Submit)
		authed.PUT("/retros/:id/submissions/mine", h.Revise)
		authed.PUT("/submissions/:id/artifact", sh.SaveArtifact)
	})

	Describe("Create", func() {
		It("parses the event date", func() {
			svc.createFn = func(_ context.Context, _ int64, title string, eventDate *time.Time, narrative string) (*service.RetroView, error) {
				Expect(title).To(Equal("Pizza night"))
				Expect(eventDate.Format("2006-01-02")).To(Equal("2026-03-14"))
				sc := retro(model.ContextStatusPending)
				sc.EventDate = eventDate
				return &service.RetroView{
					Context: sc,
					Mine:    &service.SubmissionView{ID: 7, AuthorID: 1, Mine: true, Round: 1, Body: &narrative},
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/retros", map[string]any{
				"title":      "Pizza night",
				"event_date": "2026-03-14",
				"narrative":  "I thought we agreed on pepperoni.",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decode(w)
			Expect(resp["retro"].(map[string]any)["event_date"]).To(Equal("2026-03-14"))
			Expect(resp["mine"].(map[string]any)["id"]).To(Equal("7"))
			Expect(resp["partner_submitted"]).To(BeFalse())
			Expect(resp).NotTo(HaveKey("partner"))
		})

		It("rejects a malformed event date", func() {
			w := doJSON(router, http.MethodPost, "/retros", map[string]any{
				"title":      "Pizza night",
				"event_date": "14/03/2026",
				"narrative":  "story",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("requires a narrative", func() {
			w := doJSON(router, http.MethodPost, "/retros", map[string]any{"title": "Pizza night"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("shows only the partner flag before the reveal", func() {
		svc.getFn = func(context.Context, int64, int64) (*service.RetroView, error) {
			return &service.RetroView{Context: retro(model.ContextStatusSubmitted), PartnerSubmitted: true}, nil
		}

		w := doJSON(router, http.MethodGet, "/retros/200", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["partner_submitted"]).To(BeTrue())
		Expect(resp).NotTo(HaveKey("partner"))
	})

	It("returns 409 when revising a locked narrative", func() {
		svc.reviseFn = func(context.Context, int64, int64, string) (*service.RetroView, error) {
			return nil, service.ErrSubmissionLocked
		}

		w := doJSON(router, http.MethodPut, "/retros/200/submissions/mine", map[string]any{"narrative": "new"})

		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(decode(w)["code"]).To(Equal("submission_locked"))
	})

	It("returns 409 when submitting to a revealed retro", func() {
		svc.submitFn = func(context.Context, int64, int64, string) (*service.RetroView, error) {
			return nil, service.ErrAlreadyRevealed
		}

		w := doJSON(router, http.MethodPost, "/retros/200/submissions", map[string]any{"narrative": "late"})

		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	Describe("SaveArtifact", func() {
		It("returns the stored artifact", func() {
			subs.saveArtifactFn = func(_ context.Context, userID, submissionID int64, artifact string) (*model.Submission, error) {
				Expect(userID).To(Equal(int64(1)))
				Expect(submissionID).To(Equal(int64(7)))
				return &model.Submission{ID: 7, ContextID: 200, Artifact: &artifact}, nil
			}

			w := doJSON(router, http.MethodPut, "/submissions/7/artifact", map[string]any{"artifact": "Next time we pick together."})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["artifact"]).To(Equal("Next time we pick together."))
		})

		DescribeTable("maps refusals",
			func(err error, status int) {
				subs.saveArtifactFn = func(context.Context, int64, int64, string) (*model.Submission, error) {
					return nil, err
				}
				w := doJSON(router, http.MethodPut, "/submissions/7/artifact", map[string]any{"artifact": "text"})
				Expect(w.Code).To(Equal(status))
			},
			Entry("not the author", service.ErrNotAuthor, http.StatusForbidden),
			Entry("before the reveal", service.ErrNotRevealed, http.StatusConflict),
			Entry("unknown submission", service.ErrSubmissionNotFound, http.StatusNotFound),
		)
	})
})
