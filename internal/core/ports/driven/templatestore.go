package driven

// Answer template names.
const (
	// TemplateInsufficient is used when the context carries no evidence.
	TemplateInsufficient = "insufficient"

	// TemplateSummary answers "summarise" style questions.
	TemplateSummary = "summary"

	// TemplateExplain answers "what" and "how" questions.
	TemplateExplain = "explain"

	// TemplateInsights answers every other question.
	TemplateInsights = "insights"
)

// TemplateStore loads user-editable answer templates.
type TemplateStore interface {
	// Load returns the template for name.
	Load(name string) (string, error)

	// Reload clears any cached templates.
	Reload()
}
