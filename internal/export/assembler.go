package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"vmexport/internal/model"
)

// Assembler turns fetched entities into ordered sheets.
type Assembler struct {
	// Location is the timezone for rendered date answers; nil means UTC.
	Location *time.Location
}

func (a *Assembler) loc() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

// BuildFormSheets groups submissions under their forms, one sheet per form
// in PSI-first order, rows sorted ascending by submission time. Every row is
// validated against the form's header width before it is accepted; a
// mismatch aborts the build rather than emitting a ragged sheet.
func (a *Assembler) BuildFormSheets(forms []*model.Form, subs []*model.Submission) ([]Sheet, error) {
	SortForms(forms)

	byForm := make(map[string][]*model.Submission)
	for _, sub := range subs {
		byForm[sub.FormID] = append(byForm[sub.FormID], sub)
	}

	sheets := make([]Sheet, 0, len(forms))
	for i, form := range forms {
		headers := Headers(form)
		rows := [][]string{headers}

		formSubs := byForm[form.ID]
		sort.SliceStable(formSubs, func(x, y int) bool {
			return formSubs[x].TimeSubmitted < formSubs[y].TimeSubmitted
		})

		for _, sub := range formSubs {
			row := a.submissionRow(form, sub)
			if err := checkRowWidth(form.ID, sub.SubmissionID, row, headers); err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}

		sheets = append(sheets, Sheet{Name: SheetName(i+1, form), Rows: rows})
	}
	return sheets, nil
}

// checkRowWidth rejects a row whose cell count diverges from the header row.
func checkRowWidth(formID, submissionID string, row, headers []string) error {
	if len(row) != len(headers) {
		return fmt.Errorf("form %s: submission %s produced %d cells for %d headers",
			formID, submissionID, len(row), len(headers))
	}
	return nil
}

func (a *Assembler) submissionRow(form *model.Form, sub *model.Submission) []string {
	row := []string{
		sub.SubmissionID,
		sub.TimeSubmitted,
		sub.FollowUpStatus,
		sub.Level1,
		sub.Level2,
		sub.Level3,
		sub.Level4,
		sub.Level5,
		string(sub.Number),
		sub.Ngo,
		sub.MonitoringObserverID,
		sub.ObserverName,
		sub.Email,
		sub.PhoneNumber,
	}

	// One indexing pass per submission; questions then render off the maps
	// instead of rescanning the note and attachment lists.
	notes := make(map[string][]string)
	for _, note := range sub.Notes {
		notes[note.QuestionID] = append(notes[note.QuestionID], note.Text)
	}
	attachments := make(map[string][]string)
	for _, att := range sub.Attachments {
		attachments[att.QuestionID] = append(attachments[att.QuestionID], att.PresignedURL)
	}

	for _, q := range form.Questions {
		row = append(row, questionCells(q, sub, notes, attachments, form.DefaultLanguage, a.loc())...)
	}
	return row
}

// QuickReportSheetName is the single flat tab quick reports export to.
const QuickReportSheetName = "QuickReports"

var quickReportHeaders = []string{
	"Id",
	"Timestamp",
	"FollowUpStatus",
	"LocationType",
	"IncidentCategory",
	"Title",
	"Description",
	"Level1",
	"Level2",
	"Level3",
	"Level4",
	"Level5",
	"Number",
	"MonitoringObserverId",
	"ObserverName",
	"Email",
	"PhoneNumber",
	"Attachments",
}

// BuildQuickReportSheet renders all quick reports into one flat sheet,
// sorted ascending by timestamp. Quick reports have no question schema, so
// no projector is involved.
func (a *Assembler) BuildQuickReportSheet(reports []*model.QuickReport) Sheet {
	sort.SliceStable(reports, func(x, y int) bool {
		return reports[x].Timestamp < reports[y].Timestamp
	})

	rows := [][]string{quickReportHeaders}
	for _, qr := range reports {
		urls := make([]string, 0, len(qr.Attachments))
		for _, att := range qr.Attachments {
			urls = append(urls, att.PresignedURL)
		}
		rows = append(rows, []string{
			qr.ID,
			qr.Timestamp,
			qr.FollowUpStatus,
			qr.LocationType,
			qr.IncidentCategory,
			qr.Title,
			qr.Description,
			qr.Level1,
			qr.Level2,
			qr.Level3,
			qr.Level4,
			qr.Level5,
			string(qr.Number),
			qr.MonitoringObserverID,
			qr.ObserverName,
			qr.Email,
			qr.PhoneNumber,
			strings.Join(urls, attachmentSeparator),
		})
	}
	return Sheet{Name: QuickReportSheetName, Rows: rows}
}
