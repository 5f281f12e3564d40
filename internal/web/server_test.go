package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/asaskevich/EventBus"
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/career-dashboard/internal/clients/storage"
	"github.com/maxaizer/career-dashboard/internal/config"
	"github.com/maxaizer/career-dashboard/internal/workspace"
	"github.com/stretchr/testify/assert"
)

// fakeAPI is a minimal career API keeping skills in memory.
type fakeAPI struct {
	mu        sync.Mutex
	skills    []map[string]string
	dashboard string
	requests  []string
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
}

func (f *fakeAPI) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.requests...)
}

func (f *fakeAPI) start(t *testing.T) *httptest.Server {
	authorized := func(r *http.Request) bool {
		cookie, err := r.Cookie("access_token")
		return err == nil && cookie.Value == "token"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "token", Path: "/"})
		_, _ = w.Write([]byte(`{"id":"u1","email":"` + body["email"] + `","role":"student","is_active":true}`))
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"ann@example.com","role":"student","is_active":true}`))
	})
	mux.HandleFunc("/api/analytics/dashboard/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(f.dashboard))
	})
	mux.HandleFunc("/api/skills/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(f.skills)
		case r.Method == http.MethodDelete:
			id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/skills/"), "/")
			kept := f.skills[:0]
			for _, skill := range f.skills {
				if skill["id"] != id {
					kept = append(kept, skill)
				}
			}
			f.skills = kept
			w.WriteHeader(http.StatusNoContent)
		default:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			skill := map[string]string{"id": "2", "skill_name": body["name"], "source": "manual"}
			f.skills = append(f.skills, skill)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(skill)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

type harness struct {
	t       *testing.T
	server  *Server
	visitor string
}

func newHarness(t *testing.T, api *fakeAPI) *harness {
	apiServer := api.start(t)

	store, err := workspace.NewStore(workspace.Options{BaseURL: apiServer.URL + "/api", Timeout: 5 * time.Second},
		storage.NewUploader(), nil, EventBus.New(), time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	server, err := NewServer(config.WebConfig{VisitorCookie: "dashboard_visitor", MaxUploadBytes: 1 << 20}, store)
	if err != nil {
		t.Fatal(err)
	}

	return &harness{t: t, server: server, visitor: workspace.NewID()}
}

func (h *harness) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body).WithContext(context.Background())
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	req.AddCookie(&http.Cookie{Name: "dashboard_visitor", Value: h.visitor})

	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (h *harness) login() {
	rec := h.do(http.MethodPost, "/login", url.Values{"email": {"ann@example.com"}, "password": {"secret123"}})
	if rec.Code != http.StatusSeeOther {
		h.t.Fatalf("login failed with status %d", rec.Code)
	}
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func Test_Web_Landing_WhenAnonymous_ShouldRenderAndIssueVisitorCookie(t *testing.T) {

	assert := assert.New(t)

	h := newHarness(t, &fakeAPI{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Header().Get("Set-Cookie"), "dashboard_visitor=")
	assert.Equal(1, document(t, rec).Find("section.landing").Length())
}

func Test_Web_Login_WhenCredentialsInvalid_ShouldShowServerDetail(t *testing.T) {

	assert := assert.New(t)

	h := newHarness(t, &fakeAPI{})

	rec := h.do(http.MethodPost, "/login", url.Values{"email": {"ann@example.com"}, "password": {"wrong"}})

	assert.Equal(http.StatusOK, rec.Code)
	doc := document(t, rec)
	assert.Equal("Invalid credentials", strings.TrimSpace(doc.Find(".form-error").Text()))
	value, _ := doc.Find("input[name=email]").Attr("value")
	assert.Equal("ann@example.com", value)
}

func Test_Web_Login_WhenCredentialsValid_ShouldRedirectToDashboard(t *testing.T) {

	assert := assert.New(t)

	h := newHarness(t, &fakeAPI{dashboard: `{"skill_gaps":[]}`})

	rec := h.do(http.MethodPost, "/login", url.Values{"email": {"ann@example.com"}, "password": {"secret123"}})
	assert.Equal(http.StatusSeeOther, rec.Code)
	assert.Equal("/dashboard", rec.Header().Get(echo.HeaderLocation))

	rec = h.do(http.MethodGet, "/", nil)
	assert.Equal(http.StatusSeeOther, rec.Code)
	assert.Equal("/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func Test_Web_Dashboard_WhenNoSession_ShouldRedirectToLogin(t *testing.T) {

	h := newHarness(t, &fakeAPI{})

	rec := h.do(http.MethodGet, "/dashboard/skills", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func Test_Web_Skills_ShouldShowChipAndRemoveItThenRefetch(t *testing.T) {

	assert := assert.New(t)

	api := &fakeAPI{skills: []map[string]string{{"id": "1", "skill_name": "Python", "source": "manual"}}}
	h := newHarness(t, api)
	h.login()

	rec := h.do(http.MethodGet, "/dashboard/skills", nil)
	assert.Equal(http.StatusOK, rec.Code)

	chips := document(t, rec).Find(".skill-chip")
	assert.Equal(1, chips.Length())
	assert.Equal("Python", chips.Find(".skill-name").Text())
	action, _ := chips.Find("form.remove-skill").Attr("action")
	assert.Equal("/dashboard/skills/1/delete", action)

	before := len(api.recorded())
	rec = h.do(http.MethodPost, action, url.Values{})

	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal([]string{"DELETE /api/skills/1/", "GET /api/skills/"}, api.recorded()[before:])
	assert.Equal(0, document(t, rec).Find(".skill-chip").Length())
}

func Test_Web_AddSkill_ShouldClearInputAndShowNewChip(t *testing.T) {

	assert := assert.New(t)

	h := newHarness(t, &fakeAPI{skills: []map[string]string{}})
	h.login()

	rec := h.do(http.MethodPost, "/dashboard/skills", url.Values{"name": {"Go"}})

	assert.Equal(http.StatusOK, rec.Code)
	doc := document(t, rec)
	value, _ := doc.Find("input[name=name]").Attr("value")
	assert.Equal("", value)
	assert.Equal("Go", doc.Find(".skill-chip .skill-name").Text())
}

func Test_Web_Overview_WhenNoMissingSkills_ShouldOmitSkillGapsSection(t *testing.T) {

	h := newHarness(t, &fakeAPI{dashboard: `{"match_score":0.5,"skill_gaps":{"missing_skills":[],"coverage_percent":100}}`})
	h.login()

	rec := h.do(http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)
	assert.Equal(t, 0, doc.Find(".skill-gaps").Length())
	assert.Equal(t, "50%", strings.TrimSpace(doc.Find(".match-score strong").Text()))
}

func Test_Web_Overview_WhenMissingSkills_ShouldRenderEachAsBadge(t *testing.T) {

	assert := assert.New(t)

	h := newHarness(t, &fakeAPI{dashboard: `{"skill_gaps":{"missing_skills":["Docker","Kubernetes"]}}`})
	h.login()

	rec := h.do(http.MethodGet, "/dashboard", nil)

	badges := document(t, rec).Find(".skill-gaps .missing-skill")
	assert.Equal(2, badges.Length())
	assert.Equal("Docker", badges.Eq(0).Text())
	assert.Equal("Kubernetes", badges.Eq(1).Text())
}

func Test_Web_Healthz_ShouldRespondOK(t *testing.T) {

	h := newHarness(t, &fakeAPI{})

	rec := h.do(http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
