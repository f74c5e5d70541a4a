package service

import (
	"fmt"
	"strings"

	"careercoach_backend/internal/model"
)

// Prompt builders. Pure functions: a goal (and, for later stages, earlier
// results) in, a deterministic instruction string out. Every prompt demands
// ONLY a JSON array/object with named fields plus an inline example, which
// is what keeps the AIService decode step reliable. Empty input still
// produces a prompt; callers guard against empty goals.

// SkillGapPrompt asks for the required skills for a career goal.
func SkillGapPrompt(goal string) string {
	return fmt.Sprintf(`Analyze the required skills for a %s position.
Provide a list of technical and soft skills needed, along with their importance level (High/Medium/Low).
Format the response as ONLY a JSON array of objects with properties: name, importance, description.
Example: [{"name": "JavaScript", "importance": "High", "description": "Core programming language"}]
Return ONLY the JSON array, no markdown, no explanation.`, goal)
}

// LearningPathPrompt asks for an ordered learning path toward the goal,
// informed by the previously extracted skill names.
func LearningPathPrompt(goal string, skills model.SkillList) string {
	skillsList := strings.Join(skills.SkillNames(), ", ")
	return fmt.Sprintf(`Create a learning path for becoming a %s.
Consider these required skills: %s
Format the response as ONLY a JSON array of objects with properties: title, description, duration.
Example: [{"title": "Foundation", "description": "Learn basics", "duration": "3 months"}]
Return ONLY the JSON array, no markdown, no explanation.`, goal, skillsList)
}

// CourseSynthesisPrompt asks the model to turn raw web-search snippets into
// structured course records. Ratings are requested in the 4.0-5.0 band.
func CourseSynthesisPrompt(goal string, results []model.SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n   URL: %s\n   %s\n", i+1, r.Title, r.Link, r.Snippet)
	}

	return fmt.Sprintf(`Based on these search results for %s courses:

%s
Recommend the best online courses for someone pursuing a career as %s.
Format the response as ONLY a JSON array of objects with properties: title, platform, rating, price, url, description, workload, enrollmentCount, startDate.
rating must be a number between 4.0 and 5.0. enrollmentCount must be an integer.
Use the URLs from the search results above.
Example: [{"title": "Machine Learning", "platform": "Coursera", "rating": 4.8, "price": "Free", "url": "https://www.coursera.org/learn/machine-learning", "description": "Foundational ML course", "workload": "5-7 hours/week", "enrollmentCount": 120000, "startDate": "Flexible"}]
Return ONLY the JSON array, no markdown, no explanation.`, goal, sb.String(), goal)
}

// ResumeFeedbackPrompt is the text half of the vision request that reviews
// an uploaded resume image against a career goal.
func ResumeFeedbackPrompt(goal string) string {
	return fmt.Sprintf(`Review this resume for someone pursuing a career as %s.
Identify strengths, gaps, and concrete improvements.
Format the response as ONLY a JSON object with properties: strengths (array of strings), gaps (array of strings), suggestions (array of strings), summary (string).
Example: {"strengths": ["Clear project impact"], "gaps": ["No cloud experience listed"], "suggestions": ["Quantify achievements"], "summary": "Solid foundation with room to grow"}
Return ONLY the JSON object, no markdown, no explanation.`, goal)
}

// CourseSearchQuery derives the web-search query for a goal, narrowed to
// the top High-importance skills when any were extracted.
func CourseSearchQuery(goal string, skills model.SkillList) string {
	high := skills.HighImportanceNames()
	if len(high) > 3 {
		high = high[:3]
	}
	if len(high) == 0 {
		return goal + " course"
	}
	return fmt.Sprintf("%s course %s", goal, strings.Join(high, " "))
}
