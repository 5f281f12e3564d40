package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/maxaizer/career-dashboard/internal/config"
	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/maxaizer/career-dashboard/internal/workspace"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	echo   *echo.Echo
	store  *workspace.Store
	config config.WebConfig
}

func NewServer(cfg config.WebConfig, store *workspace.Store) (*Server, error) {
	if store == nil {
		return nil, errors.New("workspace store is nil")
	}

	r, err := newRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = r
	e.HTTPErrorHandler = errorHandler

	s := &Server{echo: e, store: store, config: cfg}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo
	e.Use(middleware.Recover())
	e.Use(requestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	site := e.Group("", s.visitor())
	site.GET(string(pages.RouteLanding), s.landing)
	site.GET(string(pages.RouteLogin), s.loginForm)
	site.POST(string(pages.RouteLogin), s.login)
	site.GET(string(pages.RouteRegister), s.registerForm)
	site.POST(string(pages.RouteRegister), s.register)
	site.POST("/logout", s.logout)

	dashboard := site.Group(string(pages.RouteDashboard), s.sessionGuard())
	dashboard.GET("", s.overview)
	dashboard.GET("/documents", s.documents)
	dashboard.POST("/documents", s.uploadDocument, middleware.BodyLimit(bodyLimit(s.config.MaxUploadBytes)))
	dashboard.GET("/skills", s.skills)
	dashboard.POST("/skills", s.addSkill)
	dashboard.POST("/skills/:id/delete", s.removeSkill)
	dashboard.GET("/roles", s.roles)
	dashboard.GET("/jobs", s.jobs)
	dashboard.GET("/chat", s.chat)
	dashboard.POST("/chat", s.sendChat)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	log.Infof("web dashboard listening on %s", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// bodyLimit formats a byte count for the echo body limit middleware, leaving
// room for the multipart envelope.
func bodyLimit(maxUploadBytes int64) string {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return fmt.Sprintf("%dK", maxUploadBytes/1024+64)
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong"
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	if code >= http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeWeb).Errorf("%s %s failed: %v",
			c.Request().Method, c.Request().URL.Path, err)
	}

	if renderErr := c.Render(code, "error", errorView{Code: code, Message: message}); renderErr != nil {
		_ = c.String(code, message)
	}
}
