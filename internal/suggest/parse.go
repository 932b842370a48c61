package suggest

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
)

var (
	titleRe    = regexp.MustCompile(`(?i)^\s*\**title\**\s*[:：]\s*(.+)$`)
	descRe     = regexp.MustCompile(`(?i)^\s*\**description\**\s*[:：]\s*(.*)$`)
	tagsRe     = regexp.MustCompile(`(?i)^\s*\**tags\**\s*[:：]\s*(.+)$`)
	categoryRe = regexp.MustCompile(`(?i)^\s*\**category\**\s*[:：]\s*(.+)$`)
	labelRe    = regexp.MustCompile(`(?i)^\s*\**(title|description|tags|category)\**\s*[:：]`)
)

// ParseResponse extracts metadata fields from free-form model output. Strict JSON
// parsing is attempted first (after stripping markdown code fences); when that
// fails, a line-oriented extraction recovers whatever labeled fields are present.
// The result always has all four fields, possibly empty.
func ParseResponse(content string) entity.MetadataFields {
	cleaned := stripCodeFences(content)

	if fields, ok := parseJSON(cleaned); ok {
		return fields
	}
	return extractLabeled(content)
}

// stripCodeFences unwraps ```json ... ``` or plain ``` ... ``` blocks.
func stripCodeFences(content string) string {
	if strings.Contains(content, "```json") {
		parts := strings.Split(content, "```json")
		if len(parts) > 1 {
			return strings.TrimSpace(strings.Split(parts[1], "```")[0])
		}
	}
	if strings.Contains(content, "```") {
		parts := strings.Split(content, "```")
		if len(parts) > 1 {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(content)
}

func parseJSON(content string) (entity.MetadataFields, bool) {
	var raw struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Tags        any    `json:"tags"`
		Category    string `json:"category"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return entity.MetadataFields{}, false
	}

	return entity.MetadataFields{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Tags:        coerceTags(raw.Tags),
		Category:    strings.TrimSpace(raw.Category),
	}, true
}

// coerceTags turns whatever the model put under "tags" into a string list.
// Non-list values become an empty list.
func coerceTags(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
	}
	return tags
}

// extractLabeled is the deterministic fallback for non-JSON output: it scans for
// "title:", "description:", "tags:" and "category:" lines. The description runs
// from its label to the next labeled line or blank line.
func extractLabeled(content string) entity.MetadataFields {
	fields := entity.MetadataFields{Tags: []string{}}
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if m := titleRe.FindStringSubmatch(line); m != nil && fields.Title == "" {
			fields.Title = strings.TrimSpace(m[1])
			continue
		}
		if m := tagsRe.FindStringSubmatch(line); m != nil && len(fields.Tags) == 0 {
			fields.Tags = splitTags(m[1])
			continue
		}
		if m := categoryRe.FindStringSubmatch(line); m != nil && fields.Category == "" {
			fields.Category = strings.TrimSpace(m[1])
			continue
		}
		if m := descRe.FindStringSubmatch(line); m != nil && fields.Description == "" {
			block := []string{strings.TrimSpace(m[1])}
			for i+1 < len(lines) {
				next := lines[i+1]
				if strings.TrimSpace(next) == "" || labelRe.MatchString(next) {
					break
				}
				block = append(block, strings.TrimSpace(next))
				i++
			}
			fields.Description = strings.TrimSpace(strings.Join(block, " "))
		}
	}
	return fields
}

func splitTags(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(strings.TrimSpace(p), `"'`); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
