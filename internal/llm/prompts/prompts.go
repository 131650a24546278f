// Package prompts holds the fixed prompt templates sent to the completion
// API for summary and guided-tour generation.
package prompts

import "fmt"

// SummarySystem frames the README summarization task.
const SummarySystem = `You are a software analyst producing structured summaries of GitHub repositories from their README files. Respond ONLY with the JSON object, no additional text.`

// SummaryUser builds the user prompt for a README-only summary.
func SummaryUser(repo, readme string) string {
	return fmt.Sprintf(`Analyze the following GitHub repository README and provide a structured summary.

Repository: %s
README Content:
%s

Please provide a JSON response with the following structure:
{
    "repository_name": "%s",
    "overview": "A brief 1-2 sentence description of what the repository does",
    "key_features": ["feature1", "feature2", "feature3"],
    "technologies": ["tech1", "tech2", "tech3"],
    "use_cases": ["use case 1", "use case 2"],
    "getting_started": "Brief summary of how to get started",
    "important_notes": "Any critical information or requirements",
    "recommendation": "Is this project worth exploring? Why or why not?"
}

Respond ONLY with the JSON object, no additional text.`, repo, readme, repo)
}

// TourSystem frames the guided-tour task.
const TourSystem = `You are a senior software engineer helping a new developer onboard to a GitHub repository. Analyze the repository information you are given and create a comprehensive, structured guided tour. Respond ONLY with the JSON object, no additional text.`

// TourUser builds the user prompt for a full guided tour. All inputs
// arrive pre-truncated by the caller's payload limits.
func TourUser(repo, readme, treeText, importantFiles, stats string) string {
	return fmt.Sprintf(`Analyze the following repository information and create a comprehensive, structured guided tour.

Repository: %s

=== README CONTENT ===
%s

=== REPOSITORY STRUCTURE ===
%s

=== IMPORTANT FILES IDENTIFIED ===
%s

=== REPOSITORY STATISTICS ===
%s

Please provide a JSON response with the following structure:
{
    "repository_name": "%s",
    "one_line_summary": "A concise one-sentence description of what this project does",
    "what_it_does": "A 2-3 sentence explanation of the project's purpose and main functionality",
    "key_folders": {
        "folder_name": "Explanation of what this folder contains and why it's important"
    },
    "important_files_to_read_first": [
        {
            "file_path": "path/to/file",
            "reason": "Why this file is important for understanding the project"
        }
    ],
    "setup_and_run_instructions": "Step-by-step instructions for setting up and running the project (extract from README or infer from structure)",
    "code_organization": "Explanation of how the codebase is organized (architecture pattern, module structure, etc.)",
    "onboarding_path": [
        {
            "step": 1,
            "action": "What the developer should do in this step",
            "files_to_examine": ["list", "of", "relevant", "files"],
            "learning_goal": "What they should understand after this step"
        }
    ],
    "technologies_detected": ["list", "of", "technologies", "frameworks", "tools"],
    "testing_approach": "Information about how testing is set up (if detectable)",
    "deployment_info": "Information about deployment/CI-CD setup (if detectable)"
}

Respond ONLY with the JSON object, no additional text. Make the onboarding_path practical and actionable.`,
		repo, readme, treeText, importantFiles, stats, repo)
}
