package scrape

import (
	"regexp"
	"sort"
	"strings"
)

// MaxExtractedSkills caps the skill list attached to a job.
const MaxExtractedSkills = 25

// skillPatterns groups the recognized skill vocabulary by category. The
// vocabulary targets business/MBA roles alongside the technical stack.
var skillPatterns = map[string][]*regexp.Regexp{
	"technical": {
		regexp.MustCompile(`(?i)\b(SQL|MySQL|PostgreSQL|Oracle)\b`),
		regexp.MustCompile(`(?i)\b(Python|R|SAS|SPSS)\b`),
		regexp.MustCompile(`(?i)\b(Excel|VBA|Macros)\b`),
		regexp.MustCompile(`(?i)\b(PowerBI|Power BI|Tableau|Looker|QlikView)\b`),
		regexp.MustCompile(`(?i)\b(Salesforce|HubSpot|Marketo)\b`),
		regexp.MustCompile(`(?i)\b(SAP|NetSuite)\b`),
		regexp.MustCompile(`(?i)\b(AWS|Azure|GCP|Google Cloud)\b`),
		regexp.MustCompile(`(?i)\b(Jira|Confluence|Asana)\b`),
	},
	"business": {
		regexp.MustCompile(`(?i)\b(MBA|Master of Business Administration)\b`),
		regexp.MustCompile(`(?i)\b(Strategy|Strategic Planning|Business Strategy)\b`),
		regexp.MustCompile(`(?i)\b(Business Analysis|Business Analytics)\b`),
		regexp.MustCompile(`(?i)\b(Project Management|Program Management)\b`),
		regexp.MustCompile(`(?i)\b(Product Management|Product Marketing)\b`),
		regexp.MustCompile(`(?i)\b(Operations Management|Process Improvement)\b`),
		regexp.MustCompile(`(?i)\b(Financial Modeling|Financial Analysis)\b`),
		regexp.MustCompile(`(?i)\b(Market Research|Competitive Analysis)\b`),
		regexp.MustCompile(`(?i)\b(Change Management|Organizational Development)\b`),
	},
	"leadership": {
		regexp.MustCompile(`(?i)\b(Leadership|Team Leadership|People Management)\b`),
		regexp.MustCompile(`(?i)\b(Communication|Presentation|Public Speaking)\b`),
		regexp.MustCompile(`(?i)\b(Negotiation|Stakeholder Management)\b`),
		regexp.MustCompile(`(?i)\b(Cross-functional|Cross functional)\b`),
		regexp.MustCompile(`(?i)\b(Mentoring|Coaching|Training)\b`),
	},
	"methodologies": {
		regexp.MustCompile(`(?i)\b(Agile|Scrum|Kanban|Lean)\b`),
		regexp.MustCompile(`(?i)\b(Six Sigma|Lean Six Sigma)\b`),
		regexp.MustCompile(`(?i)\b(Design Thinking|Human-Centered Design)\b`),
		regexp.MustCompile(`(?i)\b(OKRs|KPIs|Metrics)\b`),
		regexp.MustCompile(`(?i)\b(A/B Testing|Experimentation)\b`),
	},
	"industry": {
		regexp.MustCompile(`(?i)\b(Consulting|Management Consulting)\b`),
		regexp.MustCompile(`(?i)\b(Investment Banking|Private Equity|Venture Capital)\b`),
		regexp.MustCompile(`(?i)\b(Healthcare|Pharmaceutical|Biotech)\b`),
		regexp.MustCompile(`(?i)\b(Technology|Software|SaaS)\b`),
		regexp.MustCompile(`(?i)\b(Financial Services|Banking|Insurance)\b`),
		regexp.MustCompile(`(?i)\b(Retail|E-commerce|Consumer Goods)\b`),
		regexp.MustCompile(`(?i)\b(Manufacturing|Supply Chain|Logistics)\b`),
	},
}

// ExtractSkills pulls recognized skills from description text, ranked by
// how often each appears, capped at MaxExtractedSkills.
func ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]string) // lowercase -> first-seen casing
	for _, patterns := range skillPatterns {
		for _, re := range patterns {
			for _, match := range re.FindAllString(text, -1) {
				skill := strings.TrimSpace(match)
				if len(skill) < 2 {
					continue
				}
				key := strings.ToLower(skill)
				if _, ok := seen[key]; !ok {
					seen[key] = skill
				}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}

	textLower := strings.ToLower(text)

	type ranked struct {
		skill string
		count int
	}
	rankedSkills := make([]ranked, 0, len(seen))
	for key, skill := range seen {
		rankedSkills = append(rankedSkills, ranked{skill: skill, count: strings.Count(textLower, key)})
	}

	sort.Slice(rankedSkills, func(i, j int) bool {
		if rankedSkills[i].count != rankedSkills[j].count {
			return rankedSkills[i].count > rankedSkills[j].count
		}
		return rankedSkills[i].skill < rankedSkills[j].skill
	})

	if len(rankedSkills) > MaxExtractedSkills {
		rankedSkills = rankedSkills[:MaxExtractedSkills]
	}

	skills := make([]string, len(rankedSkills))
	for i, r := range rankedSkills {
		skills[i] = r.skill
	}
	return skills
}
