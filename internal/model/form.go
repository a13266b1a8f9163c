package model

// QuestionType discriminates the question payloads a form can carry.
// The values mirror the API's $questionType tags.
type QuestionType string

const (
	QuestionTypeText         QuestionType = "textQuestion"
	QuestionTypeNumber       QuestionType = "numberQuestion"
	QuestionTypeDate         QuestionType = "dateQuestion"
	QuestionTypeSingleSelect QuestionType = "singleSelectQuestion"
	QuestionTypeMultiSelect  QuestionType = "multiSelectQuestion"
	QuestionTypeRating       QuestionType = "ratingQuestion"
)

// FormTypePSI marks polling-station-information forms, which sort first in
// the sheet layout.
const FormTypePSI = "PSI"

// TranslatedString maps a language code to the text in that language.
type TranslatedString map[string]string

// Get returns the translation for lang, or "" when it is absent.
func (t TranslatedString) Get(lang string) string {
	return t[lang]
}

// Option is one selectable choice of a select question. A free-text option
// additionally carries a respondent-supplied string on the answer side.
type Option struct {
	ID         string           `json:"id"`
	Text       TranslatedString `json:"text"`
	IsFreeText bool             `json:"isFreeText"`
}

// Question is one question of a form, in schema order.
type Question struct {
	Type    QuestionType     `json:"$questionType"`
	ID      string           `json:"id"`
	Code    string           `json:"code"`
	Text    TranslatedString `json:"text"`
	Options []Option         `json:"options,omitempty"`
}

// IsSelect reports whether the question carries an option list.
func (q Question) IsSelect() bool {
	return q.Type == QuestionTypeSingleSelect || q.Type == QuestionTypeMultiSelect
}

// HasFreeTextOption reports whether any option of the question is free-text.
// Select questions with such an option get an extra FreeText column.
func (q Question) HasFreeTextOption() bool {
	for _, opt := range q.Options {
		if opt.IsFreeText {
			return true
		}
	}
	return false
}

// OptionByID looks up an option in the question's current option list.
// Answers may reference options that no longer exist; callers treat a miss
// as an unselected sub-item.
func (q Question) OptionByID(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Form is one questionnaire schema of an election round, immutable once
// fetched for a run.
type Form struct {
	ID              string           `json:"id"`
	FormType        string           `json:"formType"`
	Code            string           `json:"code"`
	Name            TranslatedString `json:"name"`
	DefaultLanguage string           `json:"defaultLanguage"`
	Languages       []string         `json:"languages"`
	Questions       []Question       `json:"questions"`
}

// DefaultName returns the form's name in its default language.
func (f *Form) DefaultName() string {
	return f.Name.Get(f.DefaultLanguage)
}
