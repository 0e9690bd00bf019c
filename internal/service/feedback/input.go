package feedback

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// AnalyzeInput holds the parameters of one analysis.
type AnalyzeInput struct {
	Text           string
	TargetLanguage domain.Language
	UserLevel      domain.UserLevel
	// Context is an optional hint such as the scenario title.
	Context string
	// MessageID, when set, names the stored message the result is attached to.
	// The nil id is treated as absent.
	MessageID *uuid.UUID
}

// Validate checks the text. Lengths are counted in code points.
func (i AnalyzeInput) Validate(maxText int) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "no text provided for analysis"})
	} else if maxText > 0 && utf8.RuneCountInString(i.Text) > maxText {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("text too long, maximum %d characters", maxText)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// contextHint returns the context cut to at most limit code points.
func (i AnalyzeInput) contextHint(limit int) string {
	ctx := strings.TrimSpace(i.Context)
	if limit <= 0 || utf8.RuneCountInString(ctx) <= limit {
		return ctx
	}
	return strings.TrimSpace(string([]rune(ctx)[:limit]))
}

func (i AnalyzeInput) messageID() (uuid.UUID, bool) {
	if i.MessageID == nil || *i.MessageID == uuid.Nil {
		return uuid.Nil, false
	}
	return *i.MessageID, true
}
