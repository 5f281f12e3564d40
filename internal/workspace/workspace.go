package workspace

import (
	"time"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/clients/storage"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/maxaizer/career-dashboard/internal/session"
)

type Options struct {
	BaseURL                  string
	Timeout                  time.Duration
	MaxRequestsPerSecond     float32
	ExtractSkillsAfterUpload bool
}

// Workspace is everything one visitor owns: an API client with its own
// cookie jar, the session, the navigator and one controller per page.
type Workspace struct {
	ID        string
	Client    *api.Client
	Session   *session.Session
	Navigator *pages.Navigator

	Login     *pages.LoginPage
	Register  *pages.RegisterPage
	Overview  *pages.OverviewPage
	Documents *pages.DocumentsPage
	Skills    *pages.SkillsPage
	Roles     *pages.RolesPage
	Jobs      *pages.JobsPage
	Chat      *pages.ChatPage
}

func New(id string, options Options, uploader *storage.Uploader) (*Workspace, error) {

	client, err := api.NewClient(options.BaseURL)
	if err != nil {
		return nil, err
	}
	if options.Timeout > 0 {
		client.SetTimeout(options.Timeout)
	}
	client.SetRateLimit(options.MaxRequestsPerSecond)

	navigator := pages.NewNavigator()
	sess := session.New(client, navigator)
	client.OnSessionExpired(sess.Expire)

	ws := &Workspace{
		ID:        id,
		Client:    client,
		Session:   sess,
		Navigator: navigator,
		Login:     pages.NewLoginPage(client, navigator),
		Register:  pages.NewRegisterPage(client, navigator),
		Overview:  pages.NewOverviewPage(client),
		Documents: pages.NewDocumentsPage(client, uploader, options.ExtractSkillsAfterUpload),
		Skills:    pages.NewSkillsPage(client),
		Roles:     pages.NewRolesPage(client),
		Jobs:      pages.NewJobsPage(client),
		Chat:      pages.NewChatPage(client),
	}

	return ws, nil
}

// SignedIn reports whether the workspace holds an access token, which is
// what the landing page checks before sending a visitor to the dashboard.
func (w *Workspace) SignedIn() bool {
	return w.Client.HasCookie(api.AccessTokenCookie)
}

// HasSession reports whether the workspace holds any credential the API could
// accept, directly or after a silent refresh.
func (w *Workspace) HasSession() bool {
	return w.Client.HasCookie(api.AccessTokenCookie) || w.Client.HasCookie(api.RefreshTokenCookie)
}
