package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/career-dashboard/internal/clients/storage"
	"github.com/maxaizer/career-dashboard/internal/domain/events"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/maxaizer/career-dashboard/internal/workspace"
	"github.com/stretchr/testify/assert"
)

type mockApi struct {
	mu           sync.Mutex
	SentMessages []botApi.Chattable
}

func (m *mockApi) Send(chattable botApi.Chattable) (botApi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = append(m.SentMessages, chattable)
	return botApi.Message{}, nil
}

func (m *mockApi) GetFileDirectURL(fileID string) (string, error) {
	return "http://files.invalid/" + fileID, nil
}

func (m *mockApi) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	texts := make([]string, 0, len(m.SentMessages))
	for _, chattable := range m.SentMessages {
		if msg, ok := chattable.(botApi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

func (m *mockApi) LastText() string {
	texts := m.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// careerAPI is a small in-memory career API with one account.
type careerAPI struct {
	mu       sync.Mutex
	skills   []models.UserSkill
	requests []string

	// accessExpired makes login hand out only the refresh cookie.
	accessExpired bool
	refreshes     int
}

func (f *careerAPI) start(t *testing.T) *httptest.Server {
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
		if !f.accessExpired {
			http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "token", Path: "/"})
		}
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "refresh", Path: "/"})
		_, _ = w.Write([]byte(`{"id":"u1","email":"ann@example.com","role":"student"}`))
	})
	mux.HandleFunc("/api/auth/register/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email":["user with this email already exists."]}`))
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("refresh_token")
		if err != nil || cookie.Value != "refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		f.refreshes++
		f.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "token", Path: "/"})
		_, _ = w.Write([]byte(`{"detail":"Token refreshed"}`))
	})
	mux.HandleFunc("/api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"ann@example.com","role":"student"}`))
	})
	mux.HandleFunc("/api/chatbot/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Learn Docker next."}`))
	})
	mux.HandleFunc("/api/documents/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/skills/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)

		if r.Method == http.MethodDelete {
			id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/skills/"), "/")
			kept := make([]models.UserSkill, 0, len(f.skills))
			for _, skill := range f.skills {
				if skill.ID != id {
					kept = append(kept, skill)
				}
			}
			f.skills = kept
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if f.skills == nil {
			f.skills = []models.UserSkill{}
		}
		_ = json.NewEncoder(w).Encode(f.skills)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestBot(t *testing.T, career *careerAPI) (*Bot, *mockApi, EventBus.Bus) {
	server := career.start(t)
	bus := EventBus.New()

	store, err := workspace.NewStore(workspace.Options{BaseURL: server.URL + "/api", Timeout: 5 * time.Second},
		storage.NewUploader(), nil, bus, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	api := &mockApi{}
	b, err := newBot(api, bus, store)
	if err != nil {
		t.Fatal(err)
	}
	return b, api, bus
}

func textMessage(chatID int64, text string) *botApi.Message {
	return &botApi.Message{Text: text, Chat: &botApi.Chat{ID: chatID, Type: "private"}}
}

func commandMessage(chatID int64, text string) *botApi.Message {
	msg := textMessage(chatID, text)
	length := strings.Index(text, " ")
	if length < 0 {
		length = len(text)
	}
	msg.Entities = []botApi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	return msg
}

func simulateUserInput(b *Bot, chatID int64, inputs []string) {
	for _, input := range inputs {
		if strings.HasPrefix(input, "/") {
			b.handleMessage(context.Background(), commandMessage(chatID, input))
		} else {
			b.handleMessage(context.Background(), textMessage(chatID, input))
		}
	}
}

func Test_DashboardCommand_WhenNotSignedIn_ShouldAskToSignIn(t *testing.T) {

	b, api, _ := newTestBot(t, &careerAPI{})

	simulateUserInput(b, 1, []string{"/overview"})

	assert.Equal(t, "Sign in first with /login or create an account with /register.", api.LastText())
}

func Test_LoginCmd_WhenValidData_ShouldSignInAndShowSkills(t *testing.T) {

	assert := assert.New(t)

	career := &careerAPI{skills: []models.UserSkill{{ID: "1", SkillName: "Python"}}}
	b, api, _ := newTestBot(t, career)

	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "secret123"})
	assert.Equal("Signed in as ann@example.com.", api.LastText())

	simulateUserInput(b, 1, []string{skillsButton})
	assert.Equal("Your skills: Python", api.LastText())
}

func Test_SkillsCmd_WhenAccessCookieExpired_ShouldRefreshAndAnswer(t *testing.T) {

	assert := assert.New(t)

	career := &careerAPI{skills: []models.UserSkill{{ID: "1", SkillName: "Python"}}, accessExpired: true}
	b, api, _ := newTestBot(t, career)

	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "secret123"})
	assert.Equal("Signed in as ann@example.com.", api.LastText())

	simulateUserInput(b, 1, []string{skillsButton})
	assert.Equal("Your skills: Python", api.LastText())
	assert.Equal(1, career.refreshes)
}

func Test_AddSkillCmd_WhenNameIsBlank_ShouldAskAgain(t *testing.T) {

	assert := assert.New(t)

	career := &careerAPI{}
	b, api, _ := newTestBot(t, career)

	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "secret123", "/addskill", "   "})

	assert.Equal("The skill name cannot be empty.", api.LastText())
	assert.NotContains(api.Texts(), "")
	assert.Empty(career.requests)
}

func Test_LoginCmd_WhenEmailInvalid_ShouldAskAgain(t *testing.T) {

	assert := assert.New(t)

	b, api, _ := newTestBot(t, &careerAPI{})

	simulateUserInput(b, 1, []string{"/login", "not-an-email"})
	assert.Equal("Enter a valid email address.", api.LastText())

	simulateUserInput(b, 1, []string{"ann@example.com"})
	assert.Equal("Enter your password.", api.LastText())
}

func Test_LoginCmd_WhenPasswordWrong_ShouldShowServerDetail(t *testing.T) {

	b, api, _ := newTestBot(t, &careerAPI{})

	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "wrong"})

	assert.Equal(t, "Invalid credentials", api.LastText())
}

func Test_RegisterCmd_WhenPasswordShort_ShouldRejectIt(t *testing.T) {

	b, api, _ := newTestBot(t, &careerAPI{})

	simulateUserInput(b, 1, []string{"/register", "ann@example.com", "short"})

	assert.Equal(t, "The password must be at least 8 characters.", api.LastText())
}

func Test_RegisterCmd_WhenEmailTaken_ShouldShowFieldError(t *testing.T) {

	assert := assert.New(t)

	b, api, _ := newTestBot(t, &careerAPI{})

	simulateUserInput(b, 1, []string{"/register", "ann@example.com", "secret123", "Chef"})
	assert.Equal("Please pick one of the offered options.", api.LastText())

	simulateUserInput(b, 1, []string{"teacher"})
	assert.Equal("user with this email already exists.", api.LastText())
}

func Test_RemoveSkillCmd_ShouldDeleteChosenSkillAndRefetch(t *testing.T) {

	assert := assert.New(t)

	career := &careerAPI{skills: []models.UserSkill{{ID: "1", SkillName: "Python"}, {ID: "2", SkillName: "Go"}}}
	b, api, _ := newTestBot(t, career)

	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "secret123", "/removeskill", "Python"})

	assert.Equal("Your skills: Go", api.LastText())
	assert.Equal([]string{"GET /api/skills/", "DELETE /api/skills/1/", "GET /api/skills/"}, career.requests)
}

func Test_RemoveSkillCmd_WhenNoSkills_ShouldSayThereIsNothingToRemove(t *testing.T) {

	b, api, _ := newTestBot(t, &careerAPI{})

	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "secret123", "/removeskill"})

	assert.Equal(t, "You have no skills to remove.", api.LastText())
}

func Test_ChatCmd_ShouldRelayMentorReplies(t *testing.T) {

	assert := assert.New(t)

	b, api, _ := newTestBot(t, &careerAPI{})

	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "secret123", chatButton, "What next?"})
	assert.Equal("Learn Docker next.", api.LastText())

	simulateUserInput(b, 1, []string{backToMenuCommandName, "hello"})
	assert.Equal("Waiting for a command.", api.LastText())
}

func Test_Document_WhenNotPDF_ShouldRejectWithoutDownloading(t *testing.T) {

	b, api, _ := newTestBot(t, &careerAPI{})
	simulateUserInput(b, 1, []string{"/login", "ann@example.com", "secret123"})

	msg := textMessage(1, "")
	msg.Document = &botApi.Document{FileID: "f1", FileName: "cv.docx", MimeType: "application/msword"}
	b.handleMessage(context.Background(), msg)

	assert.Equal(t, "Only PDF files allowed", api.LastText())
}

func Test_SessionEnded_WhenExpiredInChatWorkspace_ShouldAnnounceIt(t *testing.T) {

	assert := assert.New(t)

	_, api, bus := newTestBot(t, &careerAPI{})

	bus.Publish(events.SessionEndedTopic, events.SessionEnded{WorkspaceID: "tg-42", Reason: events.ReasonLogout})
	bus.Publish(events.SessionEndedTopic, events.SessionEnded{WorkspaceID: workspace.NewID(), Reason: events.ReasonExpired})
	assert.Empty(api.Texts())

	bus.Publish(events.SessionEndedTopic, events.SessionEnded{WorkspaceID: "tg-42", Reason: events.ReasonExpired})

	assert.Len(api.SentMessages, 1)
	msg := api.SentMessages[0].(botApi.MessageConfig)
	assert.Equal(int64(42), msg.ChatID)
	assert.Equal("Your session has expired. Sign in again with /login.", msg.Text)
}

func Test_OverviewText_WhenNoSkillGaps_ShouldOmitThem(t *testing.T) {

	assert := assert.New(t)

	summary := models.DashboardSummary{
		SkillDistribution: []models.SkillShare{{Skill: "Python"}},
		MatchScore:        0.75,
		SkillGaps:         models.SkillGap{MissingSkills: []string{}},
	}

	text := overviewText(summary, false, nil)

	assert.Contains(text, "Your skills: Python")
	assert.Contains(text, "Match score: 75%")
	assert.NotContains(text, "Skill gaps")
}

func Test_RolesText_WhenNoRoles_ShouldShowServerMessage(t *testing.T) {

	assert.Equal(t, "Add skills first", rolesText(nil, "Add skills first"))
}

func Test_RoleDetailText_WhenGapNotLoaded_ShouldSaySo(t *testing.T) {

	text := roleDetailText(pages.RoleDetail{Role: models.Role{Title: "Data Analyst"}, PlanLoaded: true})

	assert.Contains(t, text, "Data Analyst")
	assert.Contains(t, text, "The skill gap could not be loaded.")
}
