package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FormatTour renders guided-tour JSON into the structured text block shown
// by the CLI and web UI. Unparseable input is returned as-is.
func FormatTour(tourJSON string) string {
	var tour map[string]any
	if err := json.Unmarshal([]byte(tourJSON), &tour); err != nil {
		return tourJSON
	}

	divider := strings.Repeat("=", 80)

	var b strings.Builder
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "🎯 GUIDED DEVELOPER TOUR: %s\n", str(tour, "repository_name", "Unknown"))
	b.WriteString(divider + "\n")

	if v := str(tour, "one_line_summary", ""); v != "" {
		fmt.Fprintf(&b, "\n📌 %s\n", v)
	}

	if v := str(tour, "what_it_does", ""); v != "" {
		b.WriteString("\n📖 What This Project Does:\n")
		fmt.Fprintf(&b, "   %s\n", v)
	}

	if folders, ok := tour["key_folders"].(map[string]any); ok && len(folders) > 0 {
		b.WriteString("\n📁 Key Folders:\n")
		names := make([]string, 0, len(folders))
		for name := range folders {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "   • %s/\n", strings.TrimSuffix(name, "/"))
			if explanation, ok := folders[name].(string); ok {
				fmt.Fprintf(&b, "     %s\n", explanation)
			}
		}
	}

	if files, ok := tour["important_files_to_read_first"].([]any); ok && len(files) > 0 {
		b.WriteString("\n📄 Important Files to Read First:\n")
		for _, f := range files {
			info, ok := f.(map[string]any)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "   • %s\n", str(info, "file_path", "Unknown"))
			fmt.Fprintf(&b, "     → %s\n", str(info, "reason", "Important for understanding the project"))
		}
	}

	if v := str(tour, "setup_and_run_instructions", ""); v != "" {
		b.WriteString("\n🚀 Setup and Run Instructions:\n")
		for _, line := range strings.Split(v, "\n") {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(&b, "   %s\n", line)
			}
		}
	}

	if v := str(tour, "code_organization", ""); v != "" {
		b.WriteString("\n🏗️  Code Organization:\n")
		fmt.Fprintf(&b, "   %s\n", v)
	}

	if techs := list(tour, "technologies_detected"); len(techs) > 0 {
		b.WriteString("\n🛠️  Technologies Detected:\n")
		for _, tech := range techs {
			fmt.Fprintf(&b, "   • %s\n", tech)
		}
	}

	if v := str(tour, "testing_approach", ""); v != "" {
		b.WriteString("\n🧪 Testing Approach:\n")
		fmt.Fprintf(&b, "   %s\n", v)
	}

	if v := str(tour, "deployment_info", ""); v != "" {
		b.WriteString("\n🚢 Deployment Information:\n")
		fmt.Fprintf(&b, "   %s\n", v)
	}

	if steps, ok := tour["onboarding_path"].([]any); ok && len(steps) > 0 {
		b.WriteString("\n🎓 Step-by-Step Onboarding Path:\n")
		for _, s := range steps {
			info, ok := s.(map[string]any)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "\n   Step %s: %s\n", stepNumber(info), str(info, "action", ""))
			if files := list(info, "files_to_examine"); len(files) > 0 {
				fmt.Fprintf(&b, "      📂 Files to examine: %s\n", strings.Join(files, ", "))
			}
			if goal := str(info, "learning_goal", ""); goal != "" {
				fmt.Fprintf(&b, "      🎯 Learning goal: %s\n", goal)
			}
		}
	}

	b.WriteString("\n" + divider)
	return b.String()
}

// stepNumber tolerates both JSON numbers and strings in the "step" field.
func stepNumber(info map[string]any) string {
	switch v := info["step"].(type) {
	case float64:
		return fmt.Sprintf("%d", int(v))
	case string:
		return v
	default:
		return "?"
	}
}
