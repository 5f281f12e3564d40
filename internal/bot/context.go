package bot

import "sync"

type userContext struct {
	mu             sync.Mutex
	chatID         int64
	curCommand     command
	curCommandName string
}

func newUserContext(chatID int64) *userContext {
	return &userContext{chatID: chatID}
}

func (u *userContext) RunCommand(command command, name string) {
	u.setCommand(command, name)
	u.curCommand.Run()
}

func (u *userContext) HasRunningCommand() bool {
	return u.curCommand != nil
}

func (u *userContext) OnUserInput(input string) {
	u.curCommand.OnUserInput(input)
}

func (u *userContext) Reset() {
	u.curCommand = nil
	u.curCommandName = ""
}

func (u *userContext) setCommand(command command, name string) {
	u.curCommand = command
	u.curCommandName = name
	u.curCommand.WithFinishCallback(u.Reset)
	u.curCommand.WithKeyboardOnFinalMessage(dashboardKeyboard())
}
