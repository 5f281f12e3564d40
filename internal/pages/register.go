package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

const MinPasswordLength = 8

type RegisterForm struct {
	Email    string          `validate:"required,email"`
	Password string          `validate:"required,min=8"`
	Role     models.UserRole `validate:"oneof=student teacher"`
}

type RegisterPage struct {
	auth      authAPI
	navigator *Navigator
	guard     busyGuard
	formErr   formError
}

func NewRegisterPage(auth authAPI, navigator *Navigator) *RegisterPage {
	return &RegisterPage{auth: auth, navigator: navigator}
}

// Submit creates the account and sends the visitor to the login screen.
func (p *RegisterPage) Submit(ctx context.Context, form RegisterForm) error {
	return p.guard.run(func() error {
		form.Email = strings.TrimSpace(form.Email)
		if form.Role == "" {
			form.Role = models.UserRoleStudent
		}

		if err := validate.Struct(form); err != nil {
			p.formErr.set(validationMessage(err))
			return fmt.Errorf("invalid register form: %w", err)
		}

		_, err := p.auth.Register(ctx, api.Registration{Email: form.Email, Password: form.Password, Role: form.Role})
		if err != nil {
			p.formErr.set(api.Message(err, "Registration failed", "email", "password"))
			return err
		}

		p.formErr.set("")
		p.navigator.Navigate(RouteLogin)
		return nil
	})
}

func (p *RegisterPage) Error() string {
	return p.formErr.Message()
}

func (p *RegisterPage) Busy() bool {
	return p.guard.Busy()
}
