package chat

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// UpdateSettingsInput carries a partial settings change. Nil fields are not
// touched. An empty ScenarioID is the same as ClearScenario.
type UpdateSettingsInput struct {
	ChatID         uuid.UUID
	TargetLanguage *domain.Language
	ScenarioID     *string
	Scenario       *domain.ScenarioData
	ClearScenario  bool
}

func (i UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.ChatID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "chatId", Message: "required"})
	}

	if i.TargetLanguage != nil && !i.TargetLanguage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "targetLanguage", Message: "unsupported language"})
	}

	if i.Scenario != nil && !i.ClearScenario {
		if strings.TrimSpace(i.Scenario.ID) == "" {
			errs = append(errs, domain.FieldError{Field: "scenarioData.id", Message: "required"})
		}
		if strings.TrimSpace(i.Scenario.Title) == "" {
			errs = append(errs, domain.FieldError{Field: "scenarioData.title", Message: "required"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// toUpdate normalizes the input into a repository update.
func (i UpdateSettingsInput) toUpdate() domain.ChatSettingsUpdate {
	upd := domain.ChatSettingsUpdate{TargetLanguage: i.TargetLanguage}

	if i.ClearScenario || (i.ScenarioID != nil && strings.TrimSpace(*i.ScenarioID) == "") {
		upd.ClearScenario = true
		return upd
	}

	if i.ScenarioID != nil {
		id := strings.TrimSpace(*i.ScenarioID)
		upd.ScenarioID = &id
	}
	upd.Scenario = i.Scenario
	if upd.ScenarioID == nil && i.Scenario != nil {
		id := i.Scenario.ID
		upd.ScenarioID = &id
	}
	return upd
}
