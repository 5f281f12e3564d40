package pages

import (
	"context"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

type SkillsPage struct {
	skills      skillsAPI
	list        *list[models.UserSkill]
	input       field
	addGuard    busyGuard
	removeGuard busyGuard
	formErr     formError
}

func NewSkillsPage(skills skillsAPI) *SkillsPage {
	return &SkillsPage{skills: skills, list: newList("skills", skills.Skills)}
}

func (p *SkillsPage) Load(ctx context.Context) Result[[]models.UserSkill] {
	return p.list.Load(ctx)
}

func (p *SkillsPage) Skills() []models.UserSkill {
	return p.list.Items()
}

func (p *SkillsPage) Loading() bool {
	return p.list.Loading()
}

func (p *SkillsPage) SetInput(value string) {
	p.input.Set(value)
}

func (p *SkillsPage) Input() string {
	return p.input.Value()
}

// Submit adds the typed skill. The input is cleared before the call is made
// and the list is read again once the call settles.
func (p *SkillsPage) Submit(ctx context.Context) error {
	return p.addGuard.run(func() error {
		name := p.input.take()
		if name == "" {
			return ErrEmptyInput
		}

		_, err := p.skills.AddSkill(ctx, name)
		if err != nil {
			p.formErr.set(api.Message(err, "Could not add skill"))
		} else {
			p.formErr.set("")
		}

		p.list.Load(ctx)
		return err
	})
}

func (p *SkillsPage) Remove(ctx context.Context, id string) error {
	return p.removeGuard.run(func() error {
		err := p.skills.RemoveSkill(ctx, id)
		if err != nil {
			p.formErr.set(api.Message(err, "Could not remove skill"))
		} else {
			p.formErr.set("")
		}

		p.list.Load(ctx)
		return err
	})
}

func (p *SkillsPage) Error() string {
	return p.formErr.Message()
}

func (p *SkillsPage) Busy() bool {
	return p.addGuard.Busy() || p.removeGuard.Busy()
}
