package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

// makeRunDir creates the scratch directory private to one run, so runs
// sharing an object base name never touch each other's files
func (p *implProcessor) makeRunDir(runID string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Scratch, 0755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	dir, err := os.MkdirTemp(p.cfg.Paths.Scratch, "run-"+runID+"-")
	if err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	return dir, nil
}

// cleanup removes the run directory and every file left in it
func (p *implProcessor) cleanup(ctx context.Context, log logger.Logger, runDir string) {
	if runDir == "" {
		return
	}
	if err := os.RemoveAll(runDir); err != nil {
		log.Warn(ctx, "Failed to cleanup run dir %s: %v", runDir, err)
		return
	}
	log.Info(ctx, "Cleaned up %s", runDir)
}
