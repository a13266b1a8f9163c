package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vmexport/internal/model"
)

var noExtras = map[string][]string{}

func multiSelectQuestion(freeText bool) model.Question {
	return model.Question{
		Type: model.QuestionTypeMultiSelect,
		ID:   "q1",
		Code: "C1",
		Text: model.TranslatedString{"EN": "Materials present"},
		Options: []model.Option{
			{ID: "opt-a", Text: model.TranslatedString{"EN": "Alpha"}},
			{ID: "opt-b", Text: model.TranslatedString{"EN": "Beta"}},
			{ID: "opt-other", Text: model.TranslatedString{"EN": "Other"}, IsFreeText: freeText},
		},
	}
}

func TestRenderTextAnswer(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeText, ID: "q1"}
	sub := &model.Submission{Answers: []model.Answer{{QuestionID: "q1", Text: "all clear"}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"all clear", "", ""}, cells)
}

func TestRenderTextNoAnswer(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeText, ID: "q1"}
	sub := &model.Submission{}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"", "", ""}, cells)
}

func TestRenderNumberAndRating(t *testing.T) {
	sub := &model.Submission{Answers: []model.Answer{{QuestionID: "q1", Value: "42"}}}

	for _, typ := range []model.QuestionType{model.QuestionTypeNumber, model.QuestionTypeRating} {
		q := model.Question{Type: typ, ID: "q1"}
		cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)
		assert.Equal(t, []string{"42", "", ""}, cells)
	}
}

func TestRenderDateAnswerInUTC(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeDate, ID: "q1"}
	sub := &model.Submission{Answers: []model.Answer{{QuestionID: "q1", Date: "2024-06-09T14:30:00Z"}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"2024-06-09 14:30", "", ""}, cells)
}

func TestRenderDateAnswerInConfiguredZone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Bucharest")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	q := model.Question{Type: model.QuestionTypeDate, ID: "q1"}
	sub := &model.Submission{Answers: []model.Answer{{QuestionID: "q1", Date: "2024-06-09T14:30:00Z"}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", loc)

	assert.Equal(t, "2024-06-09 17:30", cells[0])
}

func TestRenderDateOnlyAnswer(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Bucharest")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	q := model.Question{Type: model.QuestionTypeDate, ID: "q1"}
	sub := &model.Submission{Answers: []model.Answer{{QuestionID: "q1", Date: "2024-06-09"}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", loc)

	// bare dates stay at midnight regardless of the configured zone
	assert.Equal(t, "2024-06-09 00:00", cells[0])
}

func TestRenderSingleSelectNoAnswer(t *testing.T) {
	q := model.Question{
		Type:    model.QuestionTypeSingleSelect,
		ID:      "q1",
		Options: []model.Option{{ID: "opt-a", Text: model.TranslatedString{"EN": "Alpha"}}},
	}
	sub := &model.Submission{}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"", "", ""}, cells)
}

func TestRenderSingleSelectNoAnswerWithFreeTextOption(t *testing.T) {
	q := model.Question{
		Type:    model.QuestionTypeSingleSelect,
		ID:      "q1",
		Options: []model.Option{{ID: "opt-a", Text: model.TranslatedString{"EN": "Alpha"}, IsFreeText: true}},
	}
	sub := &model.Submission{}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"", "", "", ""}, cells)
}

func TestRenderSingleSelectAnswer(t *testing.T) {
	q := model.Question{
		Type:    model.QuestionTypeSingleSelect,
		ID:      "q1",
		Options: []model.Option{{ID: "opt-a", Text: model.TranslatedString{"EN": "Alpha"}}},
	}
	sub := &model.Submission{Answers: []model.Answer{{
		QuestionID: "q1",
		Selection:  []model.SelectedOption{{OptionID: "opt-a"}},
	}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"Alpha", "", ""}, cells)
}

func TestRenderSingleSelectFreeTextOverride(t *testing.T) {
	q := model.Question{
		Type: model.QuestionTypeSingleSelect,
		ID:   "q1",
		Options: []model.Option{
			{ID: "opt-other", Text: model.TranslatedString{"EN": "Other"}, IsFreeText: true},
		},
	}
	sub := &model.Submission{Answers: []model.Answer{{
		QuestionID: "q1",
		Selection:  []model.SelectedOption{{OptionID: "opt-other", Text: "ballot box sealed late"}},
	}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"Other", "ballot box sealed late", "", ""}, cells)
}

func TestRenderMultiSelectJoinsOptionTexts(t *testing.T) {
	q := multiSelectQuestion(false)
	sub := &model.Submission{Answers: []model.Answer{{
		QuestionID: "q1",
		Selection:  []model.SelectedOption{{OptionID: "opt-a"}, {OptionID: "opt-b"}},
	}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"Alpha, Beta", "", ""}, cells)
}

func TestRenderMultiSelectFreeTextOverrides(t *testing.T) {
	q := multiSelectQuestion(true)
	sub := &model.Submission{Answers: []model.Answer{{
		QuestionID: "q1",
		Selection: []model.SelectedOption{
			{OptionID: "opt-a"},
			{OptionID: "opt-other", Text: "handwritten tally"},
		},
	}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"Alpha, Other", "handwritten tally", "", ""}, cells)
}

func TestRenderSkipsUnknownOptionIDs(t *testing.T) {
	q := multiSelectQuestion(false)
	sub := &model.Submission{Answers: []model.Answer{{
		QuestionID: "q1",
		Selection:  []model.SelectedOption{{OptionID: "opt-gone"}, {OptionID: "opt-b"}},
	}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, "Beta", cells[0])
}

func TestRenderUnknownQuestionType(t *testing.T) {
	q := model.Question{Type: "matrixQuestion", ID: "q1"}
	sub := &model.Submission{Answers: []model.Answer{{QuestionID: "q1", Text: "anything"}}}

	cells := questionCells(q, sub, noExtras, noExtras, "EN", time.UTC)

	assert.Equal(t, []string{"unknown value", "", ""}, cells)
}

func TestRenderNotesAndAttachmentSeparators(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeText, ID: "q1"}
	sub := &model.Submission{}
	notes := map[string][]string{"q1": {"first note", "second note"}}
	attachments := map[string][]string{"q1": {"https://a/1.jpg", "https://a/2.jpg"}}

	cells := questionCells(q, sub, notes, attachments, "EN", time.UTC)

	assert.Equal(t, "first note\n\n\nsecond note", cells[1])
	assert.Equal(t, "https://a/1.jpg\n\nhttps://a/2.jpg", cells[2])
}
