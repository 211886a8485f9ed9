package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/provenly/vouch/internal/model"
	"github.com/provenly/vouch/internal/pipeline"
)

// VerifyJob verifies one person file and writes its reports
type VerifyJob struct {
	Path      string
	OutputDir string
	Verifier  *pipeline.Verifier
	Renderer  *pipeline.Renderer
}

// VerifyResult is the outcome of one person verification
type VerifyResult struct {
	Path    string
	Name    string
	Overall float64
	Err     error
}

// GetError implements Result
func (r *VerifyResult) GetError() error { return r.Err }

// Execute implements Job
func (j *VerifyJob) Execute(ctx context.Context) Result {
	person, err := model.LoadPersonFile(j.Path)
	if err != nil {
		return &VerifyResult{Path: j.Path, Err: err}
	}

	result, err := j.Verifier.VerifyPerson(ctx, person)
	if err != nil {
		return &VerifyResult{Path: j.Path, Name: person.Name, Err: err}
	}

	base := strings.TrimSuffix(filepath.Base(j.Path), filepath.Ext(j.Path))
	jsonPath := filepath.Join(j.OutputDir, base+".json")
	mdPath := filepath.Join(j.OutputDir, base+".md")

	if err := j.Renderer.RenderJSON(result, jsonPath); err != nil {
		return &VerifyResult{Path: j.Path, Name: person.Name, Err: fmt.Errorf("render JSON: %w", err)}
	}
	if err := j.Renderer.RenderMarkdown(result, mdPath); err != nil {
		return &VerifyResult{Path: j.Path, Name: person.Name, Err: fmt.Errorf("render markdown: %w", err)}
	}

	return &VerifyResult{
		Path:    j.Path,
		Name:    person.Name,
		Overall: result.OverallConfidence,
	}
}
