package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"goal-tracker/internal/domain/entity"
)

const systemPrompt = `You are a coach who writes progressive, realistic training plans.
Always answer with a single JSON object of the form
{"entries": [{"date_start": "YYYY-MM-DD", "details": "...", "amount": 0, "measure_unit": "..."}]}
and nothing else.`

var categoryHints = map[string]string{
	"fitness":  "Use distance, duration or repetitions as the unit and increase load gradually with rest days.",
	"running":  "Use km or minutes as the unit, alternate easy runs with harder sessions and keep a weekly long run.",
	"reading":  "Use pages or chapters as the unit and keep daily amounts steady.",
	"learning": "Use minutes, lessons or exercises as the unit and schedule periodic review sessions.",
	"language": "Use minutes or new words as the unit and mix vocabulary, listening and speaking.",
	"health":   "Use minutes, glasses or servings as the unit and favour small consistent habits.",
	"music":    "Use minutes of practice as the unit and split technique from repertoire.",
	"writing":  "Use words or pages as the unit and include editing sessions.",
}

// BuildPrompt renders the user message for input. today anchors the first date.
func BuildPrompt(input *entity.PlanInput, today time.Time) string {
	var sb strings.Builder

	sb.WriteString("Create a personalized plan for the following goal.\n\n")
	sb.WriteString(fmt.Sprintf("Habit Name: %s\n", input.Name))
	sb.WriteString(fmt.Sprintf("Goal: %s\n", input.Goal))
	sb.WriteString(fmt.Sprintf("Category: %s\n", input.Category))
	sb.WriteString(fmt.Sprintf("Current Level: %s\n", input.CurrentLevel))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", input.Experience))
	sb.WriteString(fmt.Sprintf("Sessions per week: %d\n", input.Frequency))
	if len(input.PreferredDays) > 0 {
		sb.WriteString(fmt.Sprintf("Preferred days: %s\n", strings.Join(input.PreferredDays, ", ")))
	}
	if input.Constraints != "" {
		sb.WriteString(fmt.Sprintf("Constraints: %s\n", input.Constraints))
	}
	if input.Preferences != "" {
		sb.WriteString(fmt.Sprintf("Preferences: %s\n", input.Preferences))
	}

	if len(input.SpecificDetails) > 0 {
		keys := make([]string, 0, len(input.SpecificDetails))
		for k := range input.SpecificDetails {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("%s: %s\n", k, input.SpecificDetails[k]))
		}
	}

	sb.WriteString("\n")
	if hint, ok := categoryHints[strings.ToLower(input.Category)]; ok {
		sb.WriteString(hint + "\n")
	}
	sb.WriteString(fmt.Sprintf("Today is %s. Start no earlier than today and cover %d weeks.\n",
		today.Format(entity.PlanEntryDateLayout), input.Duration))
	sb.WriteString("Each entry needs a start date, a description of the activity, a positive numeric amount and a measurement unit (e.g. km, minutes, pages).\n")
	sb.WriteString("The plan should be progressive, realistic, and tailored to the current level.")

	return sb.String()
}
