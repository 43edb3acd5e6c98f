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

var _ = Describe("ReefHandler", func() {
	var (
		router *gin.Engine
		svc    *mockReefService
		users  *mockUserService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockReefService{}
		users = &mockUserService{}
		h := handler.NewReefHandler(svc)
		uh := handler.NewUserHandler(users)

		router.GET("/invites/validate", h.ValidateInvite)
		authed := router.Group("", asUser(&model.User{ID: 1}))
		authed.POST("/reefs", h.Create)
		authed.POST("/reefs/invitations", h.Invite)
		authed.POST("/reefs/join", h.Join)
		authed.GET("/users/me", uh.Me)
	})

	It("creates a reef", func() {
		svc.createFn = func(_ context.Context, userID int64, name string) (*model.Reef, error) {
			return &model.Reef{ID: 10, Name: name}, nil
		}

		w := doJSON(router, http.MethodPost, "/reefs", map[string]any{"name": "Our reef"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(decode(w)["id"]).To(Equal("10"))
	})

	It("returns the invitation link", func() {
		svc.inviteFn = func(_ context.Context, _ int64, email string) (*model.ReefInvitation, string, error) {
			return &model.ReefInvitation{ID: 3, Email: email, Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
				"https://reef.test/invite?token=tok", nil
		}

		w := doJSON(router, http.MethodPost, "/reefs/invitations", map[string]any{"email": "bob@example.com"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(decode(w)["invite_url"]).To(Equal("https://reef.test/invite?token=tok"))
	})

	DescribeTable("maps join refusals",
		func(err error, status int) {
			svc.joinFn = func(context.Context, int64, string) (*model.Reef, error) {
				return nil, err
			}
			w := doJSON(router, http.MethodPost, "/reefs/join", map[string]any{"token": "tok"})
			Expect(w.Code).To(Equal(status))
		},
		Entry("full reef", service.ErrReefFull, http.StatusConflict),
		Entry("already paired", service.ErrAlreadyInReef, http.StatusConflict),
		Entry("stale token", service.ErrInviteInvalid, http.StatusGone),
	)

	It("validates a token publicly", func() {
		svc.validateInviteFn = func(_ context.Context, token string) (*model.ReefInvitation, *model.Reef, error) {
			return &model.ReefInvitation{Email: "bob@example.com", Token: token}, &model.Reef{Name: "Our reef"}, nil
		}

		w := doJSON(router, http.MethodGet, "/invites/validate?token=tok", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["valid"]).To(BeTrue())
		Expect(resp["reef_name"]).To(Equal("Our reef"))
	})

	It("returns the profile with the partner", func() {
		reefID := int64(10)
		users.profileFn = func(_ context.Context, userID int64) (*service.Profile, error) {
			return &service.Profile{
				User:    &model.User{ID: userID, Name: "Alice", ReefID: &reefID},
				Reef:    &model.Reef{ID: reefID, Name: "Our reef"},
				Partner: &model.User{ID: 2, Name: "Bob", ReefID: &reefID},
			}, nil
		}

		w := doJSON(router, http.MethodGet, "/users/me", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["partner"].(map[string]any)["name"]).To(Equal("Bob"))
		Expect(resp["reef"].(map[string]any)["id"]).To(Equal("10"))
	})
})
