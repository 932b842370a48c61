package entity

// MetadataFields is the shape shared by AI suggestions and user drafts. Suggestions
// are regenerated wholesale; drafts are seeded from a suggestion and owned by the
// user afterwards.
type MetadataFields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// Languages a suggestion or draft can be produced in.
const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

func ValidLanguage(lang string) bool {
	return lang == LanguageEnglish || lang == LanguageArabic
}
