package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/career-dashboard/internal/domain/events"
	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/maxaizer/career-dashboard/internal/workspace"
	log "github.com/sirupsen/logrus"
)

const workspacePrefix = "tg-"

const (
	startCommandName     = "start"
	logoutCommandName    = "logout"
	overviewCommandName  = "overview"
	skillsCommandName    = "skills"
	rolesCommandName     = "roles"
	jobsCommandName      = "jobs"
	documentsCommandName = "documents"

	backToMenuCommandName = "Main menu"
)

const (
	overviewButton    = "Overview"
	skillsButton      = "Skills"
	addSkillButton    = "Add skill"
	removeSkillButton = "Remove skill"
	rolesButton       = "Roles"
	jobsButton        = "Jobs"
	documentsButton   = "Documents"
	chatButton        = "Chat"
	logoutButton      = "Log out"
	loginButton       = "Sign in"
	registerButton    = "Register"
)

var buttonCommands = map[string]string{
	overviewButton:        overviewCommandName,
	skillsButton:          skillsCommandName,
	addSkillButton:        addSkillCommandName,
	removeSkillButton:     removeSkillCommandName,
	rolesButton:           rolesCommandName,
	jobsButton:            jobsCommandName,
	documentsButton:       documentsCommandName,
	chatButton:            chatCommandName,
	logoutButton:          logoutCommandName,
	loginButton:           loginCommandName,
	registerButton:        registerCommandName,
	backToMenuCommandName: backToMenuCommandName,
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type botAPI interface {
	apiInterface
	GetFileDirectURL(fileID string) (string, error)
}

type Bot struct {
	tg           *botApi.BotAPI
	api          botAPI
	store        *workspace.Store
	httpClient   HTTPClient
	mu           sync.Mutex
	userContexts map[int64]*userContext
}

func NewBot(token string, bus EventBus.Bus, store *workspace.Store) (*Bot, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	createdBot, err := newBot(api, bus, store)
	if err != nil {
		return nil, err
	}
	createdBot.tg = api
	return createdBot, nil
}

func newBot(api botAPI, bus EventBus.Bus, store *workspace.Store) (*Bot, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if store == nil {
		return nil, errors.New("workspace store is nil")
	}

	createdBot := &Bot{
		api:          api,
		store:        store,
		httpClient:   &http.Client{Timeout: time.Minute},
		userContexts: make(map[int64]*userContext),
	}

	if err := bus.Subscribe(events.SessionEndedTopic, createdBot.onSessionEnded); err != nil {
		return nil, err
	}
	return createdBot, nil
}

func (b *Bot) SetHTTPClient(client HTTPClient) {
	b.httpClient = client
}

// Run handles updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {

	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.tg.GetUpdatesChan(updateConfig)

	go func() {
		<-ctx.Done()
		b.tg.StopReceivingUpdates()
	}()

	for update := range updates {

		if update.Message == nil {
			continue
		}

		if update.Message.Chat.IsGroup() || update.Message.Chat.IsSuperGroup() {
			continue
		}

		go b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *botApi.Message) {

	chatID := message.Chat.ID
	uc := b.userContext(chatID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ws, err := b.store.Get(ctx, workspaceID(chatID))
	if err != nil {
		log.Errorf("failed to open workspace of chat %d: %v", chatID, err)
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, "Internal error!"))
		return
	}

	if message.Document != nil {
		b.handleDocument(ctx, ws, chatID, message.Document)
		return
	}

	cmd := message.Command()
	if cmd == "" {
		cmd = buttonCommands[message.Text]
	}

	if cmd != "" {
		b.handleCommand(ctx, uc, ws, cmd, strings.TrimSpace(message.CommandArguments()))
	} else {
		b.handleInput(uc, message.Text)
	}
}

func (b *Bot) handleCommand(ctx context.Context, uc *userContext, ws *workspace.Workspace, command string, args string) {

	var response botApi.Chattable
	var err error
	chatID := uc.chatID

	switch command {
	case startCommandName, backToMenuCommandName:
		uc.Reset()
		text := "Main menu."
		if command == startCommandName {
			text = "Welcome to your career dashboard! Upload a résumé, track your skills and find roles and jobs that fit you."
		}
		messageResponse := botApi.NewMessage(chatID, text)
		messageResponse.ReplyMarkup = mainKeyboard(ws.HasSession())
		response = messageResponse
	case loginCommandName:
		uc.RunCommand(newLoginCommand(b.api, chatID, ws), command)
	case registerCommandName:
		uc.RunCommand(newRegisterCommand(b.api, chatID, ws), command)
	case logoutCommandName:
		uc.Reset()
		_ = ws.Session.Logout(ctx)
		ws.Navigator.TakeRedirect()
		messageResponse := botApi.NewMessage(chatID, "You have been signed out.")
		messageResponse.ReplyMarkup = guestKeyboard()
		response = messageResponse
	case overviewCommandName, skillsCommandName, rolesCommandName, jobsCommandName, documentsCommandName,
		addSkillCommandName, removeSkillCommandName, chatCommandName:
		uc.Reset()
		if !b.ensureSession(ctx, chatID, ws) {
			return
		}
		response, err = b.handleDashboardCommand(ctx, uc, ws, command, args)
	default:
		response = botApi.NewMessage(chatID, "Unknown command!")
	}

	if err != nil {
		if errors.Is(err, errorNoUserSkills) {
			response = botApi.NewMessage(chatID, "You have no skills to remove.")
		} else {
			response = botApi.NewMessage(chatID, "Internal error!")
			log.Error(err)
		}
	}

	if response == nil {
		return
	}

	_, _ = sendWithLogError(b.api, response)
}

func (b *Bot) handleDashboardCommand(ctx context.Context, uc *userContext, ws *workspace.Workspace,
	command string, args string) (botApi.Chattable, error) {

	chatID := uc.chatID
	var text string

	switch command {
	case overviewCommandName:
		ws.Overview.Load(ctx)
		text = overviewText(ws.Overview.Summary(), ws.Overview.ShowSkillGaps(), ws.Overview.LearningPlan())
	case skillsCommandName:
		ws.Skills.Load(ctx)
		text = skillsText(ws.Skills.Skills())
	case rolesCommandName:
		ws.Roles.Load(ctx)
		text = b.rolesResponse(ctx, ws, args)
	case jobsCommandName:
		ws.Jobs.Load(ctx)
		text = jobsText(ws.Jobs.View())
	case documentsCommandName:
		ws.Documents.Load(ctx)
		text = documentsText(ws.Documents.Documents())
	case addSkillCommandName:
		uc.RunCommand(newAddSkillCommand(b.api, chatID, ws), command)
		return nil, nil
	case removeSkillCommandName:
		cmd, err := newRemoveSkillCommand(b.api, chatID, ws)
		if err != nil {
			return nil, err
		}
		uc.RunCommand(cmd, command)
		return nil, nil
	case chatCommandName:
		uc.RunCommand(newChatCommand(b.api, chatID, ws), command)
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown command: %v", command)
	}

	// the session expired while reading, the chat was already told
	if route, ok := ws.Navigator.TakeRedirect(); ok && route == pages.RouteLogin {
		return nil, nil
	}

	msg := botApi.NewMessage(chatID, text)
	msg.ReplyMarkup = dashboardKeyboard()
	return msg, nil
}

func (b *Bot) rolesResponse(ctx context.Context, ws *workspace.Workspace, args string) string {
	roles := ws.Roles.Roles()
	if args == "" {
		return rolesText(roles, ws.Roles.Message())
	}

	number, err := strconv.Atoi(args)
	if err != nil || number < 1 || number > len(roles) {
		return "There is no role with this number."
	}

	detail, _ := ws.Roles.Select(ctx, roles[number-1].ID)
	return roleDetailText(detail)
}

func (b *Bot) handleInput(uc *userContext, input string) {

	if uc.HasRunningCommand() {
		uc.OnUserInput(input)
		return
	}

	_, _ = sendWithLogError(b.api, botApi.NewMessage(uc.chatID, "Waiting for a command."))
}

// handleDocument runs the documents upload flow for a file sent to the chat.
func (b *Bot) handleDocument(ctx context.Context, ws *workspace.Workspace, chatID int64, document *botApi.Document) {

	if !b.ensureSession(ctx, chatID, ws) {
		return
	}

	upload := pages.Upload{FileName: document.FileName, ContentType: document.MimeType, Size: int64(document.FileSize)}

	if isPDF(document) {
		body, err := b.download(ctx, document.FileID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("failed to download file: %v", err)
			_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, "Could not download the file, try again."))
			return
		}
		defer body.Close()
		upload.Body = body
	}

	_ = ws.Documents.Upload(ctx, upload)
	if route, ok := ws.Navigator.TakeRedirect(); ok && route == pages.RouteLogin {
		return
	}

	text := ws.Documents.Error()
	if text == "" {
		text = ws.Documents.Notice()
	}
	_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, text))
}

func (b *Bot) download(ctx context.Context, fileID string) (io.ReadCloser, error) {

	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("file download failed with status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// ensureSession tells the chat to sign in when there is no usable session.
func (b *Bot) ensureSession(ctx context.Context, chatID int64, ws *workspace.Workspace) bool {

	if !ws.HasSession() {
		msg := botApi.NewMessage(chatID, "Sign in first with /login or create an account with /register.")
		msg.ReplyMarkup = guestKeyboard()
		_, _ = sendWithLogError(b.api, msg)
		return false
	}

	if _, err := ws.Session.Ensure(ctx); err != nil {
		ws.Navigator.TakeRedirect()
		// an expired session has already been announced
		if ws.HasSession() {
			_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID,
				"The career service is unavailable right now, try again later."))
		}
		return false
	}

	return true
}

func (b *Bot) onSessionEnded(event events.SessionEnded) {

	if event.Reason != events.ReasonExpired {
		return
	}

	chatID, ok := chatIDFromWorkspace(event.WorkspaceID)
	if !ok {
		return
	}

	msg := botApi.NewMessage(chatID, "Your session has expired. Sign in again with /login.")
	msg.ReplyMarkup = guestKeyboard()
	_, _ = sendWithLogError(b.api, msg)
}

func (b *Bot) userContext(chatID int64) *userContext {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.userContexts[chatID] == nil {
		b.userContexts[chatID] = newUserContext(chatID)
	}
	return b.userContexts[chatID]
}

func workspaceID(chatID int64) string {
	return workspacePrefix + strconv.FormatInt(chatID, 10)
}

func chatIDFromWorkspace(id string) (int64, bool) {
	if !strings.HasPrefix(id, workspacePrefix) {
		return 0, false
	}
	chatID, err := strconv.ParseInt(strings.TrimPrefix(id, workspacePrefix), 10, 64)
	return chatID, err == nil
}

func isPDF(document *botApi.Document) bool {
	return strings.HasPrefix(document.MimeType, "application/pdf") &&
		strings.HasSuffix(strings.ToLower(document.FileName), ".pdf")
}

func mainKeyboard(signedIn bool) botApi.ReplyKeyboardMarkup {
	if signedIn {
		return dashboardKeyboard()
	}
	return guestKeyboard()
}

func dashboardKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(overviewButton),
			botApi.NewKeyboardButton(skillsButton),
			botApi.NewKeyboardButton(rolesButton),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(addSkillButton),
			botApi.NewKeyboardButton(removeSkillButton),
			botApi.NewKeyboardButton(jobsButton),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(documentsButton),
			botApi.NewKeyboardButton(chatButton),
			botApi.NewKeyboardButton(logoutButton),
		),
	)
}

func guestKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(loginButton),
			botApi.NewKeyboardButton(registerButton),
		),
	)
}

func keyboardWithExit() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(backToMenuCommandName),
		),
	)
}
