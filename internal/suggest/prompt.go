package suggest

import (
	"fmt"
	"strings"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
	"github.com/Madelsa/Dataset-publishing/internal/ingest"
)

const englishTemplate = `You are a data catalog assistant. Below is a preview of an uploaded tabular dataset.

%s

Based on the columns and sample rows, produce:
1. A one-line title for the dataset.
2. A description of 2-3 paragraphs. Mention any data quality issues you observe (missing values, inconsistent formats, suspicious duplicates).
3. Between 3 and 5 tags.
4. A single category.

Respond with a single JSON object with exactly these keys: "title", "description", "tags", "category". Write all values in English.`

const arabicTemplate = `أنت مساعد لفهرسة البيانات. فيما يلي معاينة لمجموعة بيانات جدولية تم رفعها.

%s

بناءً على الأعمدة والصفوف النموذجية، قدّم:
1. عنوانًا من سطر واحد لمجموعة البيانات.
2. وصفًا من فقرتين إلى ثلاث فقرات. اذكر أي مشاكل في جودة البيانات تلاحظها (قيم مفقودة، تنسيقات غير متسقة، تكرارات مشبوهة).
3. من 3 إلى 5 وسوم.
4. فئة واحدة.

أجب بكائن JSON واحد يحتوي على هذه المفاتيح بالضبط: "title" و"description" و"tags" و"category". اكتب جميع القيم باللغة العربية.`

// BuildPrompt renders the language-specific prompt around a bounded preview of the
// file: the column list followed by a markdown table of at most ten sample rows.
func BuildPrompt(sampleRows []map[string]any, columnNames []string, language string) string {
	preview := buildPreview(sampleRows, columnNames)
	if language == entity.LanguageArabic {
		return fmt.Sprintf(arabicTemplate, preview)
	}
	return fmt.Sprintf(englishTemplate, preview)
}

func buildPreview(sampleRows []map[string]any, columnNames []string) string {
	var b strings.Builder

	b.WriteString("Columns: ")
	b.WriteString(strings.Join(columnNames, ", "))
	b.WriteString("\n\n")

	b.WriteString("| ")
	b.WriteString(strings.Join(columnNames, " | "))
	b.WriteString(" |\n|")
	b.WriteString(strings.Repeat(" --- |", len(columnNames)))
	b.WriteString("\n")

	limit := len(sampleRows)
	if limit > ingest.MaxSampleRows {
		limit = ingest.MaxSampleRows
	}
	for _, row := range sampleRows[:limit] {
		b.WriteString("| ")
		cells := make([]string, len(columnNames))
		for i, col := range columnNames {
			cells[i] = renderCell(row[col])
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}

	return b.String()
}

// renderCell renders missing or nil values as a literal "null" token so the model
// can spot gaps in the data.
func renderCell(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
