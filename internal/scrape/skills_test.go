package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	description := `
		We are looking for a Senior Business Analyst with an MBA.
		Must be proficient in SQL, Excel, and Tableau. Experience with
		Financial Modeling and Project Management required. Familiarity
		with Agile and Scrum a plus. SQL skills are used daily.
	`

	skills := ExtractSkills(description)

	assert.Contains(t, skills, "SQL")
	assert.Contains(t, skills, "Excel")
	assert.Contains(t, skills, "Tableau")
	assert.Contains(t, skills, "MBA")
	assert.Contains(t, skills, "Financial Modeling")
	assert.Contains(t, skills, "Project Management")
	assert.Contains(t, skills, "Agile")
	assert.Contains(t, skills, "Scrum")

	// SQL appears twice, so it ranks ahead of single-occurrence skills.
	assert.Equal(t, "SQL", skills[0])
}

func TestExtractSkills_Empty(t *testing.T) {
	assert.Nil(t, ExtractSkills(""))
	assert.Nil(t, ExtractSkills("we need someone friendly and punctual"))
}

func TestExtractSkills_Cap(t *testing.T) {
	text := `SQL MySQL PostgreSQL Oracle Python SAS SPSS Excel VBA Macros
		Tableau Looker QlikView Salesforce HubSpot Marketo SAP NetSuite
		AWS Azure GCP Jira Confluence Asana MBA Strategy Leadership
		Communication Negotiation Agile Scrum Kanban Lean Consulting
		Healthcare Technology Banking Insurance Retail Manufacturing`

	skills := ExtractSkills(text)

	assert.LessOrEqual(t, len(skills), MaxExtractedSkills)
	assert.NotEmpty(t, skills)
}
