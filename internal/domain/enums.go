package domain

// CorrectionKind classifies what a correction is about.
type CorrectionKind string

const (
	CorrectionKindGrammar    CorrectionKind = "grammar"
	CorrectionKindVocabulary CorrectionKind = "vocabulary"
	CorrectionKindStyle      CorrectionKind = "style"
)

func (k CorrectionKind) String() string { return string(k) }

func (k CorrectionKind) IsValid() bool {
	switch k {
	case CorrectionKindGrammar, CorrectionKindVocabulary, CorrectionKindStyle:
		return true
	}
	return false
}

// Severity ranks a correction. Ordered error > warning > suggestion.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

func (s Severity) String() string { return string(s) }

func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeveritySuggestion:
		return true
	}
	return false
}

// Rank returns a comparable order value; higher is more severe. Unknown severities rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeveritySuggestion:
		return 1
	}
	return 0
}

// Penalty is the number of score points one correction of this severity costs.
func (s Severity) Penalty() int {
	switch s {
	case SeverityError:
		return 10
	case SeverityWarning:
		return 5
	case SeveritySuggestion:
		return 2
	}
	return 0
}

// UserLevel is the learner's self-reported proficiency.
type UserLevel string

const (
	UserLevelBeginner     UserLevel = "beginner"
	UserLevelIntermediate UserLevel = "intermediate"
	UserLevelAdvanced     UserLevel = "advanced"
)

func (l UserLevel) String() string { return string(l) }

func (l UserLevel) IsValid() bool {
	switch l {
	case UserLevelBeginner, UserLevelIntermediate, UserLevelAdvanced:
		return true
	}
	return false
}

// OrDefault returns l if valid, otherwise intermediate.
func (l UserLevel) OrDefault() UserLevel {
	if l.IsValid() {
		return l
	}
	return UserLevelIntermediate
}

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

func (r MessageRole) String() string { return string(r) }

func (r MessageRole) IsValid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}

// PartType identifies the payload of a MessagePart.
type PartType string

const (
	PartTypeText               PartType = "text"
	PartTypeLanguageFeedback   PartType = "language-feedback"
	PartTypeAudioTranscription PartType = "audio-transcription"
)

func (p PartType) String() string { return string(p) }
