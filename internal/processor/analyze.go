package processor

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/report"
)

func (p *implProcessor) analyze(ctx context.Context, r *run) error {
	doc, err := p.analyzer.Analyze(ctx, r.result.Transcript.Text)
	if err != nil {
		return err
	}
	r.result.Analysis = doc
	return nil
}

func (p *implProcessor) uploadAnalysis(ctx context.Context, r *run) error {
	return p.store.Upload(ctx, p.cfg.Storage.OutputBucket, r.result.Paths.AnalysisKey, textContentType,
		strings.NewReader(r.result.Analysis.Text))
}

// writeReport renders and uploads the optional .docx copy of the analysis.
// The required text artifacts already exist, so failures only warn.
func (p *implProcessor) writeReport(ctx context.Context, r *run) {
	paths := r.result.Paths

	if err := report.WriteAnalysisDocx(paths.BaseName, r.result.Analysis.Text, paths.LocalReport); err != nil {
		r.log.Warn(ctx, "Failed to render analysis report: %v", err)
		return
	}
	if err := p.store.UploadFile(ctx, p.cfg.Storage.OutputBucket, paths.ReportKey, docxContentType, paths.LocalReport); err != nil {
		r.log.Warn(ctx, "Failed to upload analysis report: %v", err)
		return
	}
	r.log.Info(ctx, "Analysis report saved to %s", paths.ReportKey)
}
