package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"goal-tracker/internal/domain/entity"
)

type planResponse struct {
	Entries []entity.PlanEntry `json:"entries"`
}

// ParseEntries decodes a completion and checks the shape of every entry.
// A bare JSON array is accepted as well as {"entries": [...]}.
func ParseEntries(content string) ([]entity.PlanEntry, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var entries []entity.PlanEntry
	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrPlannerResponse, err)
		}
	} else {
		var resp planResponse
		if err := json.Unmarshal([]byte(content), &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrPlannerResponse, err)
		}
		entries = resp.Entries
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: plan has no entries", entity.ErrPlannerResponse)
	}

	for i, e := range entries {
		if _, err := time.Parse(entity.PlanEntryDateLayout, e.DateStart); err != nil {
			return nil, fmt.Errorf("%w: entry %d: invalid date_start %q", entity.ErrPlannerResponse, i, e.DateStart)
		}
		if strings.TrimSpace(e.Details) == "" {
			return nil, fmt.Errorf("%w: entry %d: empty details", entity.ErrPlannerResponse, i)
		}
		if strings.TrimSpace(e.MeasureUnit) == "" {
			return nil, fmt.Errorf("%w: entry %d: empty measure_unit", entity.ErrPlannerResponse, i)
		}
		if e.Amount <= 0 {
			return nil, fmt.Errorf("%w: entry %d: amount must be positive", entity.ErrPlannerResponse, i)
		}
	}

	return entries, nil
}
