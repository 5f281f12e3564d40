package web

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/maxaizer/career-dashboard/internal/workspace"
	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
)

const workspaceKey = "workspace"

// visitor attaches the workspace named by the visitor cookie, issuing a new
// id when the cookie is missing or malformed.
func (s *Server) visitor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(s.config.VisitorCookie); err == nil {
				if _, err := ulid.ParseStrict(cookie.Value); err == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = workspace.NewID()
			}

			c.SetCookie(&http.Cookie{
				Name:     s.config.VisitorCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.config.SecureCookie,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
			})

			ws, err := s.store.Get(c.Request().Context(), id)
			if err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeWeb).Errorf("failed to open workspace: %v", err)
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.Set(workspaceKey, ws)
			return next(c)
		}
	}
}

// sessionGuard confirms the session before any dashboard page is rendered.
func (s *Server) sessionGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws := current(c)
			if _, err := ws.Session.Ensure(c.Request().Context()); err != nil {
				ws.Navigator.TakeRedirect()
				return c.Redirect(http.StatusSeeOther, string(pages.RouteLogin))
			}
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.WithFields(log.Fields{
				"method":   c.Request().Method,
				"path":     c.Request().URL.Path,
				"status":   c.Response().Status,
				"duration": time.Since(started).String(),
			}).Debug("request served")
			return nil
		}
	}
}

func current(c echo.Context) *workspace.Workspace {
	return c.Get(workspaceKey).(*workspace.Workspace)
}
