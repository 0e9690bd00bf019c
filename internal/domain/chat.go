package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat holds the per-conversation coaching settings.
type Chat struct {
	ID             uuid.UUID
	Title          string
	TargetLanguage Language
	ScenarioID     *string
	Scenario       *ScenarioData
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ScenarioData is the role-play scenario snapshot attached to a chat.
type ScenarioData struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AIRole      string   `json:"aiRole"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Category    string   `json:"category,omitempty"`
	Prompt      string   `json:"systemPrompt,omitempty"`
	FocusAreas  []string `json:"focusAreas,omitempty"`
}

// ChatSettingsUpdate lists the settings to change on a chat. Nil fields are
// left untouched. ClearScenario removes both the scenario id and data and
// takes precedence over ScenarioID and Scenario.
type ChatSettingsUpdate struct {
	TargetLanguage *Language
	ScenarioID     *string
	Scenario       *ScenarioData
	ClearScenario  bool
}

// IsEmpty reports whether the update changes nothing.
func (u ChatSettingsUpdate) IsEmpty() bool {
	return u.TargetLanguage == nil && u.ScenarioID == nil && u.Scenario == nil && !u.ClearScenario
}
