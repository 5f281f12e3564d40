package bot

import (
	"fmt"
	"strings"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/pages"
	"github.com/samber/lo"
)

func overviewText(summary models.DashboardSummary, showSkillGaps bool, plan []models.Course) string {
	var b strings.Builder

	skills := lo.Map(summary.SkillDistribution, func(share models.SkillShare, _ int) string { return share.Skill })
	if len(skills) == 0 {
		b.WriteString("You have no skills yet. Add some with /addskill.\n")
	} else {
		fmt.Fprintf(&b, "Your skills: %s\n", strings.Join(skills, ", "))
	}
	fmt.Fprintf(&b, "Match score: %d%%\n", summary.MatchPercent())

	if len(summary.TopRoles) > 0 {
		b.WriteString("\nTop roles:\n")
		for _, role := range summary.TopRoles {
			fmt.Fprintf(&b, "• %s (%d%%)\n", role.Title, models.ScoreToPercent(role.MatchScore))
		}
	}

	if showSkillGaps {
		fmt.Fprintf(&b, "\nSkill gaps: %s\n", strings.Join(summary.SkillGaps.MissingSkills, ", "))
	}

	if len(plan) > 0 {
		b.WriteString("\nLearning plan:\n")
		for _, course := range plan {
			fmt.Fprintf(&b, "• %s\n", courseLine(course))
		}
	}

	if len(summary.JobMatches) > 0 {
		b.WriteString("\nJob matches:\n")
		for _, job := range summary.JobMatches {
			fmt.Fprintf(&b, "• %s, %s\n", job.Title, job.Company)
		}
	}

	return strings.TrimSpace(b.String())
}

func skillsText(skills []models.UserSkill) string {
	if len(skills) == 0 {
		return "You have no skills yet. Add one with /addskill."
	}
	names := lo.Map(skills, func(skill models.UserSkill, _ int) string { return skill.SkillName })
	return "Your skills: " + strings.Join(names, ", ")
}

func rolesText(roles []models.Role, message string) string {
	if len(roles) == 0 {
		if message != "" {
			return message
		}
		return "No recommended roles yet."
	}

	var b strings.Builder
	b.WriteString("Recommended roles:\n")
	for i, role := range roles {
		fmt.Fprintf(&b, "%d. %s", i+1, role.Title)
		if percent, ok := role.MatchPercent(); ok {
			fmt.Fprintf(&b, " (%d%%)", percent)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nSend /%s <number> to see what to learn for a role.", rolesCommandName)
	return b.String()
}

func roleDetailText(detail pages.RoleDetail) string {
	var b strings.Builder
	b.WriteString(detail.Role.Title + "\n")
	if detail.Role.Description != "" {
		b.WriteString(detail.Role.Description + "\n")
	}

	switch {
	case !detail.GapLoaded:
		b.WriteString("\nThe skill gap could not be loaded.\n")
	case len(detail.Gap.MissingSkills) == 0:
		b.WriteString("\nYou have every skill this role needs.\n")
	default:
		fmt.Fprintf(&b, "\nMissing skills: %s\n", strings.Join(detail.Gap.MissingSkills, ", "))
	}

	if detail.PlanLoaded && len(detail.Plan.Courses) > 0 {
		b.WriteString("\nCourses:\n")
		for _, course := range detail.Plan.Courses {
			fmt.Fprintf(&b, "• %s\n", courseLine(course))
		}
	}

	return strings.TrimSpace(b.String())
}

func jobsText(view pages.JobsView) string {
	if len(view.Matched) == 0 && len(view.All) == 0 {
		return "No jobs found."
	}

	var b strings.Builder
	if len(view.Matched) > 0 {
		b.WriteString("Matched jobs:\n")
		for _, job := range view.Matched {
			fmt.Fprintf(&b, "• %s\n", jobLine(job))
		}
		b.WriteString("\n")
	}
	if len(view.All) > 0 {
		b.WriteString("All jobs:\n")
		for _, job := range view.All {
			fmt.Fprintf(&b, "• %s\n", jobLine(job))
		}
	}
	return strings.TrimSpace(b.String())
}

func documentsText(documents []models.Document) string {
	if len(documents) == 0 {
		return "No documents uploaded yet. Send me your résumé as a PDF."
	}

	var b strings.Builder
	b.WriteString("Your documents:\n")
	for _, document := range documents {
		fmt.Fprintf(&b, "• %s, uploaded %s\n", document.FileName(), document.UploadedAt.Format("2006-01-02"))
	}
	return strings.TrimSpace(b.String())
}

func courseLine(course models.Course) string {
	line := course.Title
	if course.Provider != "" {
		line += " (" + course.Provider + ")"
	}
	if course.URL != "" {
		line += " " + course.URL
	}
	return line
}

func jobLine(job models.Job) string {
	line := job.Title
	if job.Company != "" {
		line += ", " + job.Company
	}
	if len(job.MatchedSkills) > 0 {
		line += " [" + strings.Join(job.MatchedSkills, ", ") + "]"
	}
	if job.URL != "" {
		line += " " + job.URL
	}
	return line
}
