package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const pageSize = 100

// listPage is the wire shape shared by every paged list endpoint. The
// totalCount field is deliberately ignored: a short page is the only
// termination signal.
type listPage[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// drainPages walks a paged list endpoint sequentially from page 1 until a
// page returns fewer items than the page size. Any page failure is fatal: a
// broken page would silently truncate the dataset.
func drainPages[T any](ctx context.Context, c *Client, rawURL string, extra url.Values) ([]T, error) {
	var all []T
	for pageNumber := 1; ; pageNumber++ {
		params := url.Values{}
		for k, vs := range extra {
			params[k] = vs
		}
		params.Set("pageNumber", strconv.Itoa(pageNumber))
		params.Set("pageSize", strconv.Itoa(pageSize))

		var page listPage[T]
		if _, err := c.getJSON(ctx, rawURL, params, &page); err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNumber, err)
		}
		all = append(all, page.Items...)
		if len(page.Items) < pageSize {
			return all, nil
		}
	}
}

// SubmissionRef is one entry of the submission list endpoint, enough to
// drive the detail fetch.
type SubmissionRef struct {
	SubmissionID  string `json:"submissionId"`
	FormID        string `json:"formId"`
	TimeSubmitted string `json:"timeSubmitted"`
}

// QuickReportRef is one entry of the quick report list endpoint.
type QuickReportRef struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// ListSubmissions drains the coalition submission list for the round.
func (c *Client) ListSubmissions(ctx context.Context) ([]SubmissionRef, error) {
	extra := url.Values{"dataSource": {"Coalition"}}
	return drainPages[SubmissionRef](ctx, c, c.roundURL("/form-submissions:byEntry"), extra)
}

// ListQuickReports drains the quick report list for the round.
func (c *Client) ListQuickReports(ctx context.Context) ([]QuickReportRef, error) {
	extra := url.Values{"dataSource": {"Coalition"}}
	return drainPages[QuickReportRef](ctx, c, c.roundURL("/quick-reports"), extra)
}
