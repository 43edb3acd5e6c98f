package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/internal/http/handler"
	"github.com/alex28786/the-reef/internal/http/middleware"
	"github.com/alex28786/the-reef/internal/model"
)

var _ = Describe("AuthHandler", func() {
	var (
		router *gin.Engine
		svc    *mockAuthService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockAuthService{}
		h := handler.NewAuthHandler(svc, "https://reef.test", false)
		router.GET("/auth/login", h.Login)
		router.GET("/auth/callback", h.Callback)
		router.POST("/auth/logout", h.Logout)
		router.POST("/auth/dev-login", h.DevLogin)
	})

	Describe("DevLogin", func() {
		It("returns the session token and sets the cookie", func() {
			svc.devLoginFn = func(_ context.Context, email, name string) (*model.User, *model.Session, error) {
				return &model.User{ID: 1, Email: email, Name: name},
					&model.Session{ID: 9, UserID: 1, Token: "secret", ExpiresAt: time.Now().Add(time.Hour)}, nil
			}

			w := doJSON(router, http.MethodPost, "/auth/dev-login", map[string]any{"email": "alice@example.com", "name": "Alice"})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["token"]).To(Equal("secret"))
			Expect(resp["user"].(map[string]any)["email"]).To(Equal("alice@example.com"))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(middleware.SessionCookieName + "=secret"))
		})

		It("returns 403 when dev login is disabled", func() {
			w := doJSON(router, http.MethodPost, "/auth/dev-login", map[string]any{"email": "alice@example.com"})
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 400 for a malformed email", func() {
			w := doJSON(router, http.MethodPost, "/auth/dev-login", map[string]any{"email": "alice"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Login", func() {
		It("redirects to the identity provider with a state cookie", func() {
			svc.getAuthorizationURLFn = func(state string) (string, error) {
				Expect(state).NotTo(BeEmpty())
				return "https://auth.example.com/authorize?state=" + state, nil
			}

			w := doJSON(router, http.MethodGet, "/auth/login", nil)

			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
			Expect(w.Header().Get("Location")).To(HavePrefix("https://auth.example.com/authorize"))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("reef_oauth_state="))
		})

		It("returns 503 without an identity provider", func() {
			w := doJSON(router, http.MethodGet, "/auth/login", nil)
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	It("rejects a callback with a mismatched state", func() {
		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=forged", nil)
		req.AddCookie(&http.Cookie{Name: "reef_oauth_state", Value: "expected"})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
		Expect(w.Header().Get("Location")).To(Equal("https://reef.test?auth_error=invalid_state"))
	})

	It("deletes the bearer session on logout", func() {
		var deleted string
		svc.logoutFn = func(_ context.Context, token string) error {
			deleted = token
			return nil
		}
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(deleted).To(Equal("secret"))
	})
})

var _ = Describe("RequireAuth", func() {
	var (
		router *gin.Engine
		svc    *mockAuthService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockAuthService{}
		router.GET("/me", middleware.RequireAuth(svc), func(c *gin.Context) {
			user := middleware.GetUser(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"id": user.ID})
		})
	})

	It("accepts a bearer token", func() {
		svc.validateSessionFn = func(_ context.Context, token string) (*model.User, error) {
			Expect(token).To(Equal("secret"))
			return &model.User{ID: 42}, nil
		}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["id"]).To(BeNumerically("==", 42))
	})

	It("accepts the session cookie", func() {
		svc.validateSessionFn = func(_ context.Context, token string) (*model.User, error) {
			Expect(token).To(Equal("from-cookie"))
			return &model.User{ID: 42}, nil
		}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "from-cookie"})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("returns 401 without credentials", func() {
		w := doJSON(router, http.MethodGet, "/me", nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns 401 for an expired session", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer stale")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(decode(w)["error"]).To(Equal("session expired"))
	})

	It("returns 500 when the session store fails", func() {
		svc.validateSessionFn = func(context.Context, string) (*model.User, error) {
			return nil, errors.New("connection refused")
		}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
