package async

import (
	"context"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/common"
	"github.com/joseph-ayodele/stayparse/internal/ingest"
	"github.com/joseph-ayodele/stayparse/internal/parser"
)

// ParseProcessor loads a job's file and runs the parser for its kind.
type ParseProcessor struct {
	parser   *parser.Parser
	ingestor ingest.Ingestor
}

var _ Processor = (*ParseProcessor)(nil)

func NewParseProcessor(p *parser.Parser, ing ingest.Ingestor) *ParseProcessor {
	return &ParseProcessor{parser: p, ingestor: ing}
}

func (pp *ParseProcessor) Process(ctx context.Context, job Job) Outcome {
	f, payload, err := pp.ingestor.Load(ctx, job.Path)
	if err != nil {
		return Outcome{Err: err}
	}
	mediaType := job.MediaType
	if mediaType == "" {
		mediaType = f.MediaType
	}
	ctx = common.WithSource(ctx, job.Path)
	ctx = common.WithRunID(ctx, job.FileID.String())

	if job.Kind == constants.KindInvite {
		res := pp.parser.ParseInvite(ctx, payload, mediaType)
		return Outcome{Invite: &res}
	}
	res := pp.parser.ParseContract(ctx, payload, mediaType)
	return Outcome{Contract: &res}
}

// JobsFromFiles turns scanned files into jobs, dropping files that failed
// discovery.
func JobsFromFiles(files []ingest.File) []Job {
	jobs := make([]Job, 0, len(files))
	for _, f := range files {
		if f.Err != "" {
			continue
		}
		jobs = append(jobs, Job{FileID: f.ID, Path: f.Path, MediaType: f.MediaType, Kind: f.Kind})
	}
	return jobs
}
