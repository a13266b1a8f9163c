package service

import (
	"context"
	"fmt"
	"log"

	"vmexport/internal/api"
	"vmexport/internal/archive"
	"vmexport/internal/config"
	"vmexport/internal/export"
	"vmexport/internal/fetch"
	"vmexport/internal/model"
	"vmexport/internal/sink"
)

// ExportService drives one full export run against the election API:
// list, fetch details under the concurrency gate, materialize attachments,
// assemble sheets, write every sink. List and sink failures are fatal;
// per-item detail failures only shrink the output.
type ExportService struct {
	cfg     *config.Config
	client  *api.Client
	archive *archive.Store // nil disables archiving
	sinks   []sink.Sink
	runID   string
}

// NewExportService wires a run. sinks are written in order; the first
// failure aborts the run.
func NewExportService(cfg *config.Config, client *api.Client, arch *archive.Store, sinks []sink.Sink, runID string) *ExportService {
	return &ExportService{cfg: cfg, client: client, archive: arch, sinks: sinks, runID: runID}
}

// ExportSubmissions exports every form submission of the round.
func (s *ExportService) ExportSubmissions(ctx context.Context) error {
	log.Printf("[export] run %s: fetching submission list", s.runID)
	refs, err := s.client.ListSubmissions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	log.Printf("[export] %d submissions listed", len(refs))

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.SubmissionID)
	}

	subs := fetch.All(ctx, "submission", ids, s.cfg.ConcurrentWorkers,
		func(ctx context.Context, id string) (*model.Submission, error) {
			sub, raw, err := s.client.Submission(ctx, id)
			if err != nil {
				return nil, err
			}
			s.archiveRaw(ctx, "submission", id, raw)
			return sub, nil
		})
	log.Printf("[export] fetched %d/%d submission details", len(subs), len(ids))

	formIDs := distinctFormIDs(subs)
	forms := fetch.All(ctx, "form", formIDs, s.cfg.ConcurrentWorkers,
		func(ctx context.Context, id string) (*model.Form, error) {
			form, raw, err := s.client.Form(ctx, id)
			if err != nil {
				return nil, err
			}
			s.archiveRaw(ctx, "form", id, raw)
			return form, nil
		})
	log.Printf("[export] fetched %d/%d forms", len(forms), len(formIDs))

	if s.cfg.DownloadAttachments {
		m := fetch.NewMaterializer(s.cfg.ExportRoot, s.client, s.cfg.ConcurrentWorkers)
		m.DownloadSubmissionAttachments(ctx, subs)
	}

	asm := &export.Assembler{Location: s.cfg.DisplayLocation}
	sheets, err := asm.BuildFormSheets(forms, subs)
	if err != nil {
		return err
	}

	return s.writeSinks(ctx, sheets)
}

// ExportQuickReports exports every quick report of the round into one flat
// sheet.
func (s *ExportService) ExportQuickReports(ctx context.Context) error {
	log.Printf("[export] run %s: fetching quick report list", s.runID)
	refs, err := s.client.ListQuickReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to list quick reports: %w", err)
	}
	log.Printf("[export] %d quick reports listed", len(refs))

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	reports := fetch.All(ctx, "quick report", ids, s.cfg.ConcurrentWorkers,
		func(ctx context.Context, id string) (*model.QuickReport, error) {
			qr, raw, err := s.client.QuickReport(ctx, id)
			if err != nil {
				return nil, err
			}
			s.archiveRaw(ctx, "quick-report", id, raw)
			return qr, nil
		})
	log.Printf("[export] fetched %d/%d quick report details", len(reports), len(ids))

	if s.cfg.DownloadAttachments {
		m := fetch.NewMaterializer(s.cfg.ExportRoot, s.client, s.cfg.ConcurrentWorkers)
		m.DownloadQuickReportAttachments(ctx, reports)
	}

	asm := &export.Assembler{Location: s.cfg.DisplayLocation}
	sheet := asm.BuildQuickReportSheet(reports)

	return s.writeSinks(ctx, []export.Sheet{sheet})
}

func (s *ExportService) writeSinks(ctx context.Context, sheets []export.Sheet) error {
	for _, snk := range s.sinks {
		if err := snk.Write(ctx, sheets); err != nil {
			return fmt.Errorf("failed to write sink: %w", err)
		}
	}
	return nil
}

func (s *ExportService) archiveRaw(ctx context.Context, kind, id string, body []byte) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Save(ctx, kind, id, s.runID, body); err != nil {
		log.Printf("Warning: failed to archive %s %s: %v", kind, id, err)
	}
}

func distinctFormIDs(subs []*model.Submission) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, sub := range subs {
		if sub.FormID == "" || seen[sub.FormID] {
			continue
		}
		seen[sub.FormID] = true
		ids = append(ids, sub.FormID)
	}
	return ids
}
