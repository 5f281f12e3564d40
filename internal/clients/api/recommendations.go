package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

type RoleRecommendations struct {
	Roles   []models.Role `json:"roles"`
	Message string        `json:"message,omitempty"`
}

func (c *Client) TopRoles(ctx context.Context) (RoleRecommendations, error) {
	var recommendations RoleRecommendations
	err := c.send(ctx, call{name: "top_roles", method: http.MethodGet, path: "/recommendations/roles/"}, &recommendations)
	return recommendations, err
}

func (c *Client) SkillGap(ctx context.Context, roleID string) (models.SkillGap, error) {
	var gap models.SkillGap
	err := c.send(ctx, call{name: "skill_gap", method: http.MethodGet,
		path: "/recommendations/skill-gap/" + url.PathEscape(roleID) + "/"}, &gap)
	return gap, err
}

func (c *Client) LearningPlan(ctx context.Context, roleID string) (models.LearningPlan, error) {
	var plan models.LearningPlan
	err := c.send(ctx, call{name: "learning_plan", method: http.MethodGet,
		path: "/recommendations/learning-plan/" + url.PathEscape(roleID) + "/"}, &plan)
	return plan, err
}
