package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/maxaizer/career-dashboard/internal/workspace"
)

func layout(ws *workspace.Workspace, title string, active pages.Route) layoutView {
	view := layoutView{Title: title, Active: active}
	if user, ok := ws.Session.User(); ok {
		view.User = &user
	}
	return view
}

// render follows a pending navigation first, so a session that expired
// during the request ends on the login screen instead of a stale page.
func render(c echo.Context, ws *workspace.Workspace, name string, data interface{}) error {
	if route, ok := ws.Navigator.TakeRedirect(); ok {
		return c.Redirect(http.StatusSeeOther, string(route))
	}
	return c.Render(http.StatusOK, name, data)
}

func (s *Server) landing(c echo.Context) error {
	ws := current(c)
	if ws.SignedIn() {
		return c.Redirect(http.StatusSeeOther, string(pages.RouteDashboard))
	}
	return c.Render(http.StatusOK, "landing", layout(ws, "Career Dashboard", pages.RouteLanding))
}

func (s *Server) loginForm(c echo.Context) error {
	ws := current(c)
	ws.Navigator.TakeRedirect()
	return c.Render(http.StatusOK, "login", loginView{layoutView: layout(ws, "Sign in", pages.RouteLogin)})
}

func (s *Server) login(c echo.Context) error {
	ws := current(c)
	form := pages.LoginForm{Email: c.FormValue("email"), Password: c.FormValue("password")}

	_ = ws.Login.Submit(c.Request().Context(), form)

	return render(c, ws, "login", loginView{
		layoutView: layout(ws, "Sign in", pages.RouteLogin),
		Email:      form.Email,
		Error:      ws.Login.Error(),
	})
}

func (s *Server) registerForm(c echo.Context) error {
	ws := current(c)
	return c.Render(http.StatusOK, "register", registerView{
		layoutView: layout(ws, "Create account", pages.RouteRegister),
		Role:       models.UserRoleStudent,
	})
}

func (s *Server) register(c echo.Context) error {
	ws := current(c)
	form := pages.RegisterForm{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Role:     models.UserRole(c.FormValue("role")),
	}

	_ = ws.Register.Submit(c.Request().Context(), form)

	return render(c, ws, "register", registerView{
		layoutView: layout(ws, "Create account", pages.RouteRegister),
		Email:      form.Email,
		Role:       form.Role,
		Error:      ws.Register.Error(),
	})
}

func (s *Server) logout(c echo.Context) error {
	ws := current(c)
	_ = ws.Session.Logout(c.Request().Context())
	ws.Navigator.TakeRedirect()
	return c.Redirect(http.StatusSeeOther, string(pages.RouteLogin))
}

func (s *Server) overview(c echo.Context) error {
	ws := current(c)
	page := ws.Overview
	page.Load(c.Request().Context())

	return render(c, ws, "overview", overviewView{
		layoutView:    layout(ws, "Overview", pages.RouteDashboard),
		Loading:       page.Loading(),
		Summary:       page.Summary(),
		ShowSkillGaps: page.ShowSkillGaps(),
		LearningPlan:  page.LearningPlan(),
	})
}

func (s *Server) documents(c echo.Context) error {
	ws := current(c)
	ws.Documents.Load(c.Request().Context())
	return s.renderDocuments(c, ws)
}

func (s *Server) uploadDocument(c echo.Context) error {
	ws := current(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = ws.Documents.Upload(c.Request().Context(), pages.Upload{})
		return s.renderDocuments(c, ws)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read the uploaded file")
	}
	defer file.Close()

	_ = ws.Documents.Upload(c.Request().Context(), pages.Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Body:        file,
		Size:        fileHeader.Size,
	})

	return s.renderDocuments(c, ws)
}

func (s *Server) renderDocuments(c echo.Context, ws *workspace.Workspace) error {
	return render(c, ws, "documents", documentsView{
		layoutView: layout(ws, "Documents", pages.RouteDocuments),
		Documents:  ws.Documents.Documents(),
		Notice:     ws.Documents.Notice(),
		Error:      ws.Documents.Error(),
	})
}

func (s *Server) skills(c echo.Context) error {
	ws := current(c)
	ws.Skills.Load(c.Request().Context())
	return s.renderSkills(c, ws)
}

func (s *Server) addSkill(c echo.Context) error {
	ws := current(c)
	ws.Skills.SetInput(c.FormValue("name"))

	err := ws.Skills.Submit(c.Request().Context())
	if errors.Is(err, pages.ErrEmptyInput) {
		ws.Skills.Load(c.Request().Context())
	}

	return s.renderSkills(c, ws)
}

func (s *Server) removeSkill(c echo.Context) error {
	ws := current(c)
	_ = ws.Skills.Remove(c.Request().Context(), c.Param("id"))
	return s.renderSkills(c, ws)
}

func (s *Server) renderSkills(c echo.Context, ws *workspace.Workspace) error {
	return render(c, ws, "skills", skillsView{
		layoutView: layout(ws, "Skills", pages.RouteSkills),
		Skills:     ws.Skills.Skills(),
		Input:      ws.Skills.Input(),
		Error:      ws.Skills.Error(),
	})
}

func (s *Server) roles(c echo.Context) error {
	ws := current(c)
	ctx := c.Request().Context()
	ws.Roles.Load(ctx)

	view := rolesView{
		layoutView: layout(ws, "Recommended roles", pages.RouteRoles),
		Roles:      ws.Roles.Roles(),
		Message:    ws.Roles.Message(),
	}
	if id := c.QueryParam("id"); id != "" {
		view.Detail, view.Selected = ws.Roles.Select(ctx, id)
	}

	return render(c, ws, "roles", view)
}

func (s *Server) jobs(c echo.Context) error {
	ws := current(c)
	ws.Jobs.Load(c.Request().Context())
	view := ws.Jobs.View()

	return render(c, ws, "jobs", jobsView{
		layoutView: layout(ws, "Jobs", pages.RouteJobs),
		Matched:    view.Matched,
		All:        view.All,
	})
}

func (s *Server) chat(c echo.Context) error {
	ws := current(c)
	return s.renderChat(c, ws)
}

func (s *Server) sendChat(c echo.Context) error {
	ws := current(c)
	ws.Chat.SetInput(c.FormValue("message"))
	_, _ = ws.Chat.Send(c.Request().Context())
	return s.renderChat(c, ws)
}

func (s *Server) renderChat(c echo.Context, ws *workspace.Workspace) error {
	return render(c, ws, "chat", chatView{
		layoutView: layout(ws, "Career mentor", pages.RouteChat),
		Messages:   ws.Chat.Messages(),
		Input:      ws.Chat.Input(),
	})
}
