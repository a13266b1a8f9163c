package model

// QuickReport is a schema-free incident report. It has no nested question
// structure and exports as a single flat sheet.
type QuickReport struct {
	ID                   string       `json:"id"`
	Timestamp            string       `json:"timestamp"`
	FollowUpStatus       string       `json:"followUpStatus"`
	LocationType         string       `json:"quickReportLocationType"`
	IncidentCategory     string       `json:"incidentCategory"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Level1               string       `json:"level1"`
	Level2               string       `json:"level2"`
	Level3               string       `json:"level3"`
	Level4               string       `json:"level4"`
	Level5               string       `json:"level5"`
	Number               FlexString   `json:"number"`
	MonitoringObserverID string       `json:"monitoringObserverId"`
	ObserverName         string       `json:"observerName"`
	Email                string       `json:"email"`
	PhoneNumber          string       `json:"phoneNumber"`
	Attachments          []Attachment `json:"attachments"`
}
