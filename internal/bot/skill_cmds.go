package bot

import (
	"context"
	"strings"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/workspace"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	addSkillCommandName    = "addskill"
	removeSkillCommandName = "removeskill"

	maxSkillNameLength = 100
)

var errorNoUserSkills = errors.New("user has no skills")

func newAddSkillCommand(api apiInterface, chatID int64, ws *workspace.Workspace) *stepCommand {

	cmd := &stepCommand{api: api, chatID: chatID}

	name := newTextInput(chatID, "Which skill do you want to add? For example, \"Python\".", func(input string) {
		ws.Skills.SetInput(input)
		cmd.next()
	})
	name.AddValidation(validation{
		function:     func(input string) bool { return strings.TrimSpace(input) != "" },
		errorMessage: "The skill name cannot be empty.",
	})
	name.AddValidation(validation{
		function:     func(input string) bool { return len(input) <= maxSkillNameLength },
		errorMessage: "The skill name is too long.",
	})

	cmd.inputHandlers = []inputHandler{name}
	cmd.finish = func() {
		var text string
		if err := ws.Skills.Submit(context.Background()); err != nil {
			text = ws.Skills.Error()
		} else {
			text = skillsText(ws.Skills.Skills())
		}
		_, _ = sendWithLogError(api, cmd.finalMessage(text))
	}
	return cmd
}

func newRemoveSkillCommand(api apiInterface, chatID int64, ws *workspace.Workspace) (*stepCommand, error) {

	ws.Skills.Load(context.Background())
	skills := ws.Skills.Skills()
	if len(skills) == 0 {
		return nil, errorNoUserSkills
	}

	cmd := &stepCommand{api: api, chatID: chatID}
	var selected string

	names := lo.Map(skills, func(skill models.UserSkill, _ int) string { return skill.SkillName })
	choice := newChoiceInput(chatID, "Which skill do you want to remove?", names, func(index int) {
		selected = skills[index].ID
		cmd.next()
	})

	cmd.inputHandlers = []inputHandler{choice}
	cmd.finish = func() {
		var text string
		if err := ws.Skills.Remove(context.Background(), selected); err != nil {
			text = ws.Skills.Error()
		} else {
			text = skillsText(ws.Skills.Skills())
		}
		_, _ = sendWithLogError(api, cmd.finalMessage(text))
	}
	return cmd, nil
}
