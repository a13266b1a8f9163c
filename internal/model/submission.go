package model

import "encoding/json"

// FlexString decodes a JSON value that may arrive as a string or a number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// SelectedOption is one select-answer entry. Text carries the respondent's
// free-form value when the referenced option is a free-text option.
type SelectedOption struct {
	OptionID string `json:"optionId"`
	Text     string `json:"text,omitempty"`
}

// Answer is one question's answer within a submission. Selection holds one
// entry for single-select answers and all entries for multi-select ones.
// Absent fields mean "no answer", never an error.
type Answer struct {
	QuestionID string
	Text       string
	Value      json.Number
	Date       string
	Selection  []SelectedOption
}

// UnmarshalJSON accepts "selection" as either a single object (single
// select) or an array (multi select).
func (a *Answer) UnmarshalJSON(data []byte) error {
	var aux struct {
		QuestionID string          `json:"questionId"`
		Text       string          `json:"text"`
		Value      json.Number     `json:"value"`
		Date       string          `json:"date"`
		Selection  json.RawMessage `json:"selection"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.QuestionID = aux.QuestionID
	a.Text = aux.Text
	a.Value = aux.Value
	a.Date = aux.Date
	a.Selection = nil

	if len(aux.Selection) == 0 || string(aux.Selection) == "null" {
		return nil
	}
	if aux.Selection[0] == '[' {
		return json.Unmarshal(aux.Selection, &a.Selection)
	}
	var one SelectedOption
	if err := json.Unmarshal(aux.Selection, &one); err != nil {
		return err
	}
	a.Selection = []SelectedOption{one}
	return nil
}

// Note is a free-text observer note attached to one question.
type Note struct {
	QuestionID    string `json:"questionId"`
	Text          string `json:"text"`
	TimeSubmitted string `json:"timeSubmitted"`
}

// Attachment is an uploaded file attached to one question, reachable through
// a presigned URL.
type Attachment struct {
	QuestionID       string `json:"questionId"`
	UploadedFileName string `json:"uploadedFileName"`
	PresignedURL     string `json:"presignedUrl"`
}

// Submission is one observer's completed form instance, read-only after
// fetch.
type Submission struct {
	SubmissionID         string       `json:"submissionId"`
	FormID               string       `json:"formId"`
	TimeSubmitted        string       `json:"timeSubmitted"`
	FollowUpStatus       string       `json:"followUpStatus"`
	Level1               string       `json:"level1"`
	Level2               string       `json:"level2"`
	Level3               string       `json:"level3"`
	Level4               string       `json:"level4"`
	Level5               string       `json:"level5"`
	Number               FlexString   `json:"number"`
	Ngo                  string       `json:"ngo"`
	MonitoringObserverID string       `json:"monitoringObserverId"`
	ObserverName         string       `json:"observerName"`
	Email                string       `json:"email"`
	PhoneNumber          string       `json:"phoneNumber"`
	Answers              []Answer     `json:"answers"`
	Notes                []Note       `json:"notes"`
	Attachments          []Attachment `json:"attachments"`
}

// AnswerFor returns the first answer matching questionID.
func (s *Submission) AnswerFor(questionID string) (Answer, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}
