package seed

import "github.com/khrees2412/talentflow/pkg/models"

var jobTitles = []string{
	"Senior Frontend Engineer", "Backend Engineer", "Full Stack Developer", "DevOps Engineer",
	"Product Designer", "Product Manager", "Data Scientist", "Data Engineer",
	"Mobile Engineer (iOS)", "Mobile Engineer (Android)", "QA Automation Engineer", "Site Reliability Engineer",
	"Engineering Manager", "Technical Writer", "Security Engineer", "Machine Learning Engineer",
	"UX Researcher", "Customer Success Manager", "Solutions Architect", "Platform Engineer",
	"Developer Advocate", "Growth Marketer", "Sales Engineer", "Business Analyst",
	"Staff Software Engineer",
}

var departments = []string{"Engineering", "Design", "Product", "Data", "Marketing", "Sales", "Customer Success"}

var locations = []string{
	"Remote", "Lagos, Nigeria", "Nairobi, Kenya", "London, UK", "Berlin, Germany",
	"New York, NY", "San Francisco, CA", "Toronto, Canada", "Cape Town, South Africa",
}

var tagPool = []string{
	"react", "typescript", "go", "python", "kubernetes", "aws", "postgres", "figma",
	"remote", "senior", "junior", "leadership", "ml", "security", "mobile", "analytics",
}

var requirementPool = []string{
	"3+ years of professional experience",
	"Strong written and verbal communication",
	"Experience working in a distributed team",
	"Comfort with ambiguity and fast iteration",
	"A track record of shipping to production",
	"Familiarity with modern CI/CD practices",
	"Experience mentoring other engineers",
	"Bachelor's degree or equivalent experience",
}

var benefitPool = []string{
	"Competitive salary and equity",
	"Health, dental and vision cover",
	"Flexible working hours",
	"Annual learning budget",
	"Home office stipend",
	"25 days paid leave",
	"Parental leave",
}

var salaryBands = []string{
	"$60k - $80k", "$80k - $110k", "$110k - $140k", "$140k - $180k", "$180k - $220k", "Competitive",
}

var firstNames = []string{
	"Ada", "Bola", "Chidi", "Dayo", "Efe", "Funke", "Gbenga", "Halima", "Ife", "Jide",
	"Kemi", "Lola", "Musa", "Ngozi", "Obi", "Pelumi", "Remi", "Sade", "Tolu", "Uche",
	"Alex", "Jordan", "Sam", "Taylor", "Morgan", "Riley", "Casey", "Jamie", "Avery", "Quinn",
}

var lastNames = []string{
	"Adeyemi", "Okafor", "Balogun", "Eze", "Mensah", "Nwosu", "Abubakar", "Okonkwo",
	"Smith", "Johnson", "Garcia", "Müller", "Nguyen", "Kim", "Silva", "Patel", "Cohen", "Rossi",
}

var emailDomains = []string{"example.com", "mail.test", "inbox.test", "post.example.org"}

var coverLetterOpeners = []string{
	"I am excited to apply for this role.",
	"Your team's work caught my attention last year.",
	"I have followed your product since its first release.",
	"A former colleague recommended I reach out.",
}

// questionTemplates are drawn from when building assessments. IDs are
// assigned at generation time.
var questionTemplates = []models.Question{
	{Type: models.QuestionSingleChoice, Title: "Are you authorized to work in this location?", Required: true, Options: []string{"Yes", "No"}},
	{Type: models.QuestionMultiChoice, Title: "Which tools have you used in production?", Options: []string{"Docker", "Kubernetes", "Terraform", "GitHub Actions", "Datadog"}},
	{Type: models.QuestionShortText, Title: "Link to your portfolio or GitHub", Validation: models.Validation{MaxLength: intPtr(200)}},
	{Type: models.QuestionLongText, Title: "Describe a project you are proud of", Required: true, Validation: models.Validation{MinLength: intPtr(50), MaxLength: intPtr(2000)}},
	{Type: models.QuestionNumeric, Title: "Years of relevant experience", Required: true, Validation: models.Validation{Min: floatPtr(0), Max: floatPtr(50)}},
	{Type: models.QuestionNumeric, Title: "Notice period in weeks", Validation: models.Validation{Min: floatPtr(0), Max: floatPtr(26)}},
	{Type: models.QuestionLongText, Title: "How would you debug a slow API endpoint?", Validation: models.Validation{MaxLength: intPtr(1500)}},
	{Type: models.QuestionSingleChoice, Title: "Preferred working arrangement", Options: []string{"Remote", "Hybrid", "On-site"}},
	{Type: models.QuestionFileUpload, Title: "Upload a writing sample"},
	{Type: models.QuestionShortText, Title: "Expected start date (YYYY-MM-DD)", Validation: models.Validation{Pattern: `^\d{4}-\d{2}-\d{2}$`}},
}

var sectionTitles = []string{"Eligibility", "Experience", "Technical", "Logistics"}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
