// Package export turns fetched forms, submissions and quick reports into
// flat, stringly sheets shared by every sink.
package export

import (
	"fmt"
	"sort"
	"strings"

	"vmexport/internal/model"
)

// Sheet is one named tab: header row first, data rows after. Sinks consume
// sheets in slice order.
type Sheet struct {
	Name string
	Rows [][]string
}

// metadataHeaders are the fixed leading columns of every form sheet.
var metadataHeaders = []string{
	"SubmissionId",
	"TimeSubmitted",
	"FollowUpStatus",
	"Level1",
	"Level2",
	"Level3",
	"Level4",
	"Level5",
	"Number",
	"Ngo",
	"MonitoringObserverId",
	"Name",
	"Email",
	"PhoneNumber",
}

// maxSheetNameLen is the spreadsheet tab name limit.
const maxSheetNameLen = 31

var sheetNameStrip = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "", "\\", "",
)

// CleanSheetName strips the characters a spreadsheet tab cannot carry and
// truncates to the 31-character tab limit.
func CleanSheetName(name string) string {
	name = sheetNameStrip.Replace(name)
	if r := []rune(name); len(r) > maxSheetNameLen {
		name = string(r[:maxSheetNameLen])
	}
	return strings.TrimSpace(name)
}

func formSortKey(f *model.Form) (int, string) {
	name := strings.ToLower(strings.TrimSpace(f.DefaultName()))
	if name == "psi" {
		return 0, name
	}
	return 1, name
}

// SortForms orders forms for sheet layout: PSI-named forms first, then
// alphabetically by default-language name.
func SortForms(forms []*model.Form) {
	sort.SliceStable(forms, func(i, j int) bool {
		ri, ni := formSortKey(forms[i])
		rj, nj := formSortKey(forms[j])
		if ri != rj {
			return ri < rj
		}
		return ni < nj
	})
}

// Headers computes the full header row for one form: the fixed metadata
// columns, then per question (in schema order) its label, a FreeText column
// for select questions carrying a free-text option, and Notes and
// Attachments columns.
func Headers(form *model.Form) []string {
	headers := append([]string(nil), metadataHeaders...)
	for _, q := range form.Questions {
		headers = append(headers, q.Code+" - "+q.Text.Get(form.DefaultLanguage))
		if q.IsSelect() && q.HasFreeTextOption() {
			headers = append(headers, "FreeText")
		}
		headers = append(headers, "Notes", "Attachments")
	}
	return headers
}

// SheetName derives the tab name for the form at 1-based position idx.
func SheetName(idx int, form *model.Form) string {
	name := form.DefaultName()
	if form.FormType == model.FormTypePSI {
		name = "PSI"
	}
	return CleanSheetName(fmt.Sprintf("%d_%s", idx, name))
}
