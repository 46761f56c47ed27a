package async

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// ErrQueueClosed is returned by Enqueue after Shutdown.
var ErrQueueClosed = errors.New("queue is shutting down")

// Job is one file to parse.
type Job struct {
	FileID      uuid.UUID
	Path        string
	MediaType   string
	Kind        constants.DocumentKind
	SubmittedAt time.Time

	seq int
}

// Outcome is the result of one Job. Exactly one of Contract or Invite is set
// unless Err is.
type Outcome struct {
	Job      Job
	Contract *entity.ParseResult[entity.ParsedContract]
	Invite   *entity.ParseResult[entity.ParsedInvite]
	Err      error
	Elapsed  time.Duration
}

// Succeeded reports whether the parse produced data.
func (o Outcome) Succeeded() bool {
	switch {
	case o.Err != nil:
		return false
	case o.Contract != nil:
		return o.Contract.Success
	case o.Invite != nil:
		return o.Invite.Success
	}
	return false
}

// Processor turns a Job into an Outcome. Implementations must honour ctx.
type Processor interface {
	Process(ctx context.Context, job Job) Outcome
}
