package export

import (
	"strings"
	"time"

	"vmexport/internal/model"
)

const (
	noteSeparator       = "\n\n\n"
	attachmentSeparator = "\n\n"
)

// questionCells renders one question's cells for one submission. The cell
// count always matches what Headers emits for the question: answer cell,
// optional FreeText cell, Notes cell, Attachments cell.
//
// notes and attachments are the per-question multimaps built once per
// submission by the assembler. A selection referencing an option id that is
// no longer in the question's option list renders as unselected for that
// sub-item; the schema can evolve between form fetch and answer time.
func questionCells(q model.Question, sub *model.Submission, notes, attachments map[string][]string, defaultLang string, loc *time.Location) []string {
	noteCell := strings.Join(notes[q.ID], noteSeparator)
	attachCell := strings.Join(attachments[q.ID], attachmentSeparator)
	answer, ok := sub.AnswerFor(q.ID)
	hasFreeText := q.HasFreeTextOption()

	switch q.Type {
	case model.QuestionTypeText:
		if !ok || answer.Text == "" {
			return []string{"", noteCell, attachCell}
		}
		return []string{answer.Text, noteCell, attachCell}

	case model.QuestionTypeNumber, model.QuestionTypeRating:
		if !ok || answer.Value == "" {
			return []string{"", noteCell, attachCell}
		}
		return []string{answer.Value.String(), noteCell, attachCell}

	case model.QuestionTypeDate:
		if !ok || answer.Date == "" {
			return []string{"", noteCell, attachCell}
		}
		return []string{formatDate(answer.Date, loc), noteCell, attachCell}

	case model.QuestionTypeSingleSelect:
		if !ok || len(answer.Selection) == 0 {
			if hasFreeText {
				return []string{"", "", noteCell, attachCell}
			}
			return []string{"", noteCell, attachCell}
		}
		sel := answer.Selection[0]
		text := ""
		if opt, found := q.OptionByID(sel.OptionID); found {
			text = opt.Text.Get(defaultLang)
		}
		if hasFreeText {
			return []string{text, sel.Text, noteCell, attachCell}
		}
		return []string{text, noteCell, attachCell}

	case model.QuestionTypeMultiSelect:
		if !ok || len(answer.Selection) == 0 {
			if hasFreeText {
				return []string{"", "", noteCell, attachCell}
			}
			return []string{"", noteCell, attachCell}
		}
		var texts []string
		for _, sel := range answer.Selection {
			if sel.OptionID == "" {
				continue
			}
			if opt, found := q.OptionByID(sel.OptionID); found {
				texts = append(texts, opt.Text.Get(defaultLang))
			}
		}
		joined := strings.Join(texts, ", ")
		if hasFreeText {
			var free []string
			for _, sel := range answer.Selection {
				if sel.Text != "" {
					free = append(free, sel.Text)
				}
			}
			return []string{joined, strings.Join(free, ", "), noteCell, attachCell}
		}
		return []string{joined, noteCell, attachCell}
	}

	return []string{"unknown value", noteCell, attachCell}
}

// formatDate renders an ISO timestamp as "2006-01-02 15:04" in loc. A bare
// date renders as midnight without a zone shift; a value that parses as
// neither passes through untouched rather than failing the row.
func formatDate(iso string, loc *time.Location) string {
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.In(loc).Format("2006-01-02 15:04")
	}
	if t, err := time.Parse("2006-01-02", iso); err == nil {
		return t.Format("2006-01-02 15:04")
	}
	return iso
}
