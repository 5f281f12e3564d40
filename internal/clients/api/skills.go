package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

type addSkillRequest struct {
	Name string `json:"name"`
}

type extractSkillsRequest struct {
	DocumentID string `json:"document_id,omitempty"`
	UseLLM     bool   `json:"use_llm"`
}

func (c *Client) Skills(ctx context.Context) ([]models.UserSkill, error) {
	var skills []models.UserSkill
	err := c.send(ctx, call{name: "skills", method: http.MethodGet, path: "/skills/"}, &skills)
	return skills, err
}

func (c *Client) AddSkill(ctx context.Context, name string) (models.UserSkill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.UserSkill{}, fmt.Errorf("%w: skill name is empty", ErrInvalidRequest)
	}

	var skill models.UserSkill
	err := c.send(ctx, call{name: "add_skill", method: http.MethodPost, path: "/skills/",
		payload: addSkillRequest{Name: name}}, &skill)
	return skill, err
}

func (c *Client) RemoveSkill(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: skill id is empty", ErrInvalidRequest)
	}
	return c.send(ctx, call{name: "remove_skill", method: http.MethodDelete,
		path: "/skills/" + url.PathEscape(id) + "/"}, nil)
}

// ExtractSkills asks the API to pull skills out of a parsed document. An empty
// documentID means the latest parsed document.
func (c *Client) ExtractSkills(ctx context.Context, documentID string, useLLM bool) (models.SkillExtraction, error) {
	var extraction models.SkillExtraction
	err := c.send(ctx, call{name: "extract_skills", method: http.MethodPost, path: "/skills/extract/",
		payload: extractSkillsRequest{DocumentID: documentID, UseLLM: useLLM}}, &extraction)
	return extraction, err
}
