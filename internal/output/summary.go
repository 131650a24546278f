package output

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatSummary renders summary JSON into the structured text block shown
// by the CLI and web UI. Unparseable input is returned as-is.
func FormatSummary(summaryJSON string) string {
	var summary map[string]any
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return summaryJSON
	}

	divider := strings.Repeat("=", 70)

	var b strings.Builder
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "📦 Repository: %s\n", str(summary, "repository_name", "Unknown"))
	b.WriteString(divider + "\n")

	fmt.Fprintf(&b, "\n📝 Overview:\n%s\n", str(summary, "overview", "N/A"))

	writeBullets(&b, "\n⭐ Key Features:", list(summary, "key_features"))
	writeBullets(&b, "\n🛠️  Technologies:", list(summary, "technologies"))
	writeBullets(&b, "\n💡 Use Cases:", list(summary, "use_cases"))

	if v := str(summary, "getting_started", ""); v != "" {
		fmt.Fprintf(&b, "\n🚀 Getting Started:\n%s\n", v)
	}
	if v := str(summary, "important_notes", ""); v != "" {
		fmt.Fprintf(&b, "\n⚠️  Important Notes:\n%s\n", v)
	}
	if v := str(summary, "recommendation", ""); v != "" {
		fmt.Fprintf(&b, "\n✅ Recommendation:\n%s\n", v)
	}

	b.WriteString("\n" + divider)
	return b.String()
}

func writeBullets(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(header + "\n")
	for _, item := range items {
		fmt.Fprintf(b, "  • %s\n", item)
	}
}

// str reads a string field from decoded JSON, with a fallback.
func str(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// list reads a string array field from decoded JSON.
func list(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			items = append(items, s)
		}
	}
	return items
}
