package bot

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/maxaizer/career-dashboard/internal/workspace"
)

const (
	loginCommandName    = "login"
	registerCommandName = "register"
)

var validate = validator.New()

func newLoginCommand(api apiInterface, chatID int64, ws *workspace.Workspace) *stepCommand {

	var form pages.LoginForm
	cmd := &stepCommand{api: api, chatID: chatID}

	email := newEmailInput(chatID, func(input string) {
		form.Email = input
		cmd.next()
	})
	password := newTextInput(chatID, "Enter your password.", func(input string) {
		form.Password = input
		cmd.next()
	})

	cmd.inputHandlers = []inputHandler{email, password}
	cmd.finish = func() {
		err := ws.Login.Submit(context.Background(), form)
		ws.Navigator.TakeRedirect()

		if err != nil {
			msg := cmd.finalMessage(ws.Login.Error())
			msg.ReplyMarkup = guestKeyboard()
			_, _ = sendWithLogError(api, msg)
			return
		}

		user, _ := ws.Session.User()
		_, _ = sendWithLogError(api, cmd.finalMessage(fmt.Sprintf("Signed in as %s.", user.Email)))
	}
	return cmd
}

func newRegisterCommand(api apiInterface, chatID int64, ws *workspace.Workspace) *stepCommand {

	form := pages.RegisterForm{Role: models.UserRoleStudent}
	roles := []string{string(models.UserRoleStudent), string(models.UserRoleTeacher)}
	cmd := &stepCommand{api: api, chatID: chatID}

	email := newEmailInput(chatID, func(input string) {
		form.Email = input
		cmd.next()
	})
	password := newTextInput(chatID, fmt.Sprintf("Choose a password of at least %d characters.",
		pages.MinPasswordLength), func(input string) {
		form.Password = input
		cmd.next()
	})
	password.AddValidation(validation{
		function:     func(input string) bool { return len(input) >= pages.MinPasswordLength },
		errorMessage: fmt.Sprintf("The password must be at least %d characters.", pages.MinPasswordLength),
	})
	role := newChoiceInput(chatID, "Are you a student or a teacher?", roles, func(index int) {
		form.Role = models.UserRole(roles[index])
		cmd.next()
	})

	cmd.inputHandlers = []inputHandler{email, password, role}
	cmd.finish = func() {
		err := ws.Register.Submit(context.Background(), form)
		ws.Navigator.TakeRedirect()

		text := "Account created. Sign in with /login."
		if err != nil {
			text = ws.Register.Error()
		}
		msg := cmd.finalMessage(text)
		msg.ReplyMarkup = guestKeyboard()
		_, _ = sendWithLogError(api, msg)
	}
	return cmd
}

func newEmailInput(chatID int64, onFinish func(input string)) *textInput {
	input := newTextInput(chatID, "Enter your email.", onFinish)
	input.AddValidation(validation{
		function:     func(input string) bool { return validate.Var(input, "required,email") == nil },
		errorMessage: "Enter a valid email address.",
	})
	return input
}
