package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginPage struct {
	auth      authAPI
	navigator *Navigator
	guard     busyGuard
	formErr   formError
	loggedIn  func(models.User)
}

func NewLoginPage(auth authAPI, navigator *Navigator) *LoginPage {
	return &LoginPage{auth: auth, navigator: navigator}
}

func (p *LoginPage) OnLoggedIn(hook func(models.User)) {
	p.loggedIn = hook
}

// Submit signs the visitor in and sends them to the dashboard. On failure the
// server's detail message becomes the inline error and nothing navigates.
func (p *LoginPage) Submit(ctx context.Context, form LoginForm) error {
	return p.guard.run(func() error {
		form.Email = strings.TrimSpace(form.Email)

		if err := validate.Struct(form); err != nil {
			p.formErr.set(validationMessage(err))
			return fmt.Errorf("invalid login form: %w", err)
		}

		user, err := p.auth.Login(ctx, api.Credentials{Email: form.Email, Password: form.Password})
		if err != nil {
			p.formErr.set(api.Message(err, "Login failed"))
			return err
		}

		p.formErr.set("")
		if p.loggedIn != nil {
			p.loggedIn(user)
		}
		p.navigator.Navigate(RouteDashboard)
		return nil
	})
}

func (p *LoginPage) Error() string {
	return p.formErr.Message()
}

func (p *LoginPage) Busy() bool {
	return p.guard.Busy()
}
