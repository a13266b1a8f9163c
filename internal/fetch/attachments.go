package fetch

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"vmexport/internal/model"
)

// Downloader fetches a binary by URL.
type Downloader interface {
	FetchBinary(ctx context.Context, url string) (io.ReadCloser, error)
}

// Materializer downloads attachments under the export root. Target paths are
// deterministic per (owning entity, uploaded filename), and a file that
// already exists is never downloaded again, so re-runs are cheap and two
// identical descriptors cannot race on one file.
type Materializer struct {
	root   string
	client Downloader
	width  int
}

// NewMaterializer creates a materializer writing below root with at most
// width concurrent downloads.
func NewMaterializer(root string, client Downloader, width int) *Materializer {
	if width < 1 {
		width = 1
	}
	return &Materializer{root: root, client: client, width: width}
}

// SubmissionPath is the local target for a submission's attachment.
func (m *Materializer) SubmissionPath(submissionID string, a model.Attachment) string {
	return filepath.Join(m.root, "submission-"+submissionID, a.UploadedFileName)
}

// QuickReportPath is the local target for a quick report's attachment.
func (m *Materializer) QuickReportPath(quickReportID string, a model.Attachment) string {
	return filepath.Join(m.root, "quick-reports-"+quickReportID, a.UploadedFileName)
}

type downloadJob struct {
	url   string
	path  string
	name  string
	owner string
}

// DownloadSubmissionAttachments materializes every attachment of every
// submission, fail-soft per file.
func (m *Materializer) DownloadSubmissionAttachments(ctx context.Context, subs []*model.Submission) {
	var jobs []downloadJob
	for _, sub := range subs {
		for _, a := range sub.Attachments {
			jobs = append(jobs, downloadJob{
				url:   a.PresignedURL,
				path:  m.SubmissionPath(sub.SubmissionID, a),
				name:  a.UploadedFileName,
				owner: "submission " + sub.SubmissionID,
			})
		}
	}
	m.run(ctx, jobs)
}

// DownloadQuickReportAttachments materializes every attachment of every
// quick report, fail-soft per file.
func (m *Materializer) DownloadQuickReportAttachments(ctx context.Context, reports []*model.QuickReport) {
	var jobs []downloadJob
	for _, qr := range reports {
		for _, a := range qr.Attachments {
			jobs = append(jobs, downloadJob{
				url:   a.PresignedURL,
				path:  m.QuickReportPath(qr.ID, a),
				name:  a.UploadedFileName,
				owner: "quick report " + qr.ID,
			})
		}
	}
	m.run(ctx, jobs)
}

func (m *Materializer) run(ctx context.Context, jobs []downloadJob) {
	if len(jobs) == 0 {
		return
	}
	log.Printf("[fetch] downloading %d attachments", len(jobs))

	gate := make(chan struct{}, m.width)
	var wg sync.WaitGroup
	for _, job := range jobs {
		job := job
		wg.Add(1)
		go func() {
			defer wg.Done()
			gate <- struct{}{}
			defer func() { <-gate }()

			if err := m.download(ctx, job.url, job.path); err != nil {
				log.Printf("Warning: failed to download attachment %s for %s: %v", job.name, job.owner, err)
			}
		}()
	}
	wg.Wait()
}

// download streams one binary to path. A file already present at path makes
// the call a no-op; a failed write leaves no partial file behind.
func (m *Materializer) download(ctx context.Context, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	body, err := m.client.FetchBinary(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
