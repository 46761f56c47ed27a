package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/common"
	"github.com/joseph-ayodele/stayparse/internal/docvalidate"
	"github.com/joseph-ayodele/stayparse/internal/entity"
	"github.com/joseph-ayodele/stayparse/internal/extract"
	"github.com/joseph-ayodele/stayparse/internal/ocr"
	"github.com/joseph-ayodele/stayparse/internal/score"
	"github.com/joseph-ayodele/stayparse/internal/textnorm"
	"github.com/joseph-ayodele/stayparse/internal/theme"
)

// Parser runs the offline pipeline: acquire, normalize, validate, extract,
// score and assemble. It holds no per-call state and is safe for concurrent use.
type Parser struct {
	logger    *slog.Logger
	extractor extract.TextExtractor
	now       func() time.Time
}

// Option customises a Parser.
type Option func(*Parser)

// WithClock fixes the reference time used to resolve and bound dates.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

func New(extractor extract.TextExtractor, logger *slog.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{logger: logger, extractor: extractor, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// acquired is normalized text plus how it was obtained.
type acquired struct {
	text      string
	res       ocr.ExtractionResult
	fromImage bool
	payload   []byte
	mediaType string
}

// run carries the per-call bookkeeping shared by both document kinds.
type run struct {
	id     string
	start  time.Time
	logger *slog.Logger
}

func (p *Parser) begin(ctx context.Context, kind constants.DocumentKind) (context.Context, *run) {
	id := common.RunIDFromContext(ctx)
	ctx = common.WithRunID(ctx, id)
	l := p.logger.With("run_id", id, "kind", string(kind))
	if src := common.SourceFromContext(ctx); src != "" {
		l = l.With("source", src)
	}
	return ctx, &run{id: id, start: time.Now(), logger: l}
}

func (r *run) diagnostics(a acquired) *entity.Diagnostics {
	return &entity.Diagnostics{
		RunID:      r.id,
		Method:     a.res.Method,
		UsedOCR:    a.res.UsedOCR,
		Pages:      a.res.Pages,
		TextLength: len([]rune(a.text)),
		Warnings:   a.res.Warnings,
		ElapsedMS:  time.Since(r.start).Milliseconds(),
	}
}

// ParseContract parses a hotel contract. PDF, PNG and JPEG are accepted.
func (p *Parser) ParseContract(ctx context.Context, payload []byte, mediaType string) (res entity.ParseResult[entity.ParsedContract]) {
	ctx, r := p.begin(ctx, constants.KindContract)
	defer recoverInto(&res, r)

	a, err := p.acquire(ctx, payload, mediaType, false)
	if err != nil {
		return failure[entity.ParsedContract](r, err, nil, nil)
	}
	return p.contract(r, a)
}

// ParseContractText parses contract text that is already in hand.
func (p *Parser) ParseContractText(ctx context.Context, text string) (res entity.ParseResult[entity.ParsedContract]) {
	_, r := p.begin(ctx, constants.KindContract)
	defer recoverInto(&res, r)
	return p.contract(r, fromText(text))
}

// ParseInvite parses an event invitation. WebP is accepted in addition to
// the contract media types.
func (p *Parser) ParseInvite(ctx context.Context, payload []byte, mediaType string) (res entity.ParseResult[entity.ParsedInvite]) {
	ctx, r := p.begin(ctx, constants.KindInvite)
	defer recoverInto(&res, r)

	a, err := p.acquire(ctx, payload, mediaType, true)
	if err != nil {
		return failure[entity.ParsedInvite](r, err, nil, nil)
	}
	return p.invite(r, a)
}

// ParseInviteText parses invitation text that is already in hand.
func (p *Parser) ParseInviteText(ctx context.Context, text string) (res entity.ParseResult[entity.ParsedInvite]) {
	_, r := p.begin(ctx, constants.KindInvite)
	defer recoverInto(&res, r)
	return p.invite(r, fromText(text))
}

func fromText(text string) acquired {
	return acquired{text: textnorm.Normalize(text), res: ocr.ExtractionResult{Method: constants.MethodPlainText}}
}

func (p *Parser) acquire(ctx context.Context, payload []byte, mediaType string, allowWebP bool) (acquired, error) {
	format := constants.MapMediaTypeToFormat(mediaType, allowWebP)
	if format == "" {
		return acquired{}, common.NewAppError(common.CodeUnsupportedFileType,
			fmt.Sprintf("media type %q", mediaType), common.ErrUnsupportedFileType)
	}
	if len(payload) == 0 {
		return acquired{}, common.NewAppError(common.CodeAcquisitionFailed, "empty payload", common.ErrUnreadable)
	}
	if p.extractor == nil {
		return acquired{}, common.NewAppError(common.CodeInternal, "no text extractor configured", common.ErrInternal)
	}
	res, err := p.extractor.Extract(ctx, payload, mediaType)
	if err != nil {
		return acquired{}, err
	}
	return acquired{
		text:      textnorm.Normalize(res.Text),
		res:       res,
		fromImage: format == constants.IMAGE,
		payload:   payload,
		mediaType: mediaType,
	}, nil
}

func (p *Parser) contract(r *run, a acquired) entity.ParseResult[entity.ParsedContract] {
	v := docvalidate.Validate(a.text, constants.KindContract)
	if !v.IsValid {
		r.logger.Info("parser.contract.rejected", "matched", v.MatchedKeywords, "reason", v.Error)
		err := common.NewAppError(common.CodeValidationRejected, v.Error, common.ErrNotRecognized)
		return failure[entity.ParsedContract](r, err, &v, r.diagnostics(a))
	}

	doc := extract.NewDocument(a.text, p.now())
	c := extract.ExtractContract(doc)
	c.ConfidenceScore, c.Warnings = score.Contract(c)
	if err := selfCheck(contractSchema, c); err != nil {
		r.logger.Warn("parser.contract.schema", "error", err)
		c.Warnings = append(c.Warnings, "result failed schema self-check: "+err.Error())
	}
	r.logger.Info("parser.contract.ok",
		"venue", c.Venue,
		"rooms", len(c.Rooms),
		"confidence", c.ConfidenceScore,
		"warnings", len(c.Warnings),
	)
	return entity.ParseResult[entity.ParsedContract]{Success: true, Data: &c, Validation: &v, Diagnostics: r.diagnostics(a)}
}

func (p *Parser) invite(r *run, a acquired) entity.ParseResult[entity.ParsedInvite] {
	v := docvalidate.Validate(a.text, constants.KindInvite)
	var gateWarning string
	if !v.IsValid {
		if !a.fromImage {
			r.logger.Info("parser.invite.rejected", "matched", v.MatchedKeywords, "reason", v.Error)
			err := common.NewAppError(common.CodeValidationRejected, v.Error, common.ErrNotRecognized)
			return failure[entity.ParsedInvite](r, err, &v, r.diagnostics(a))
		}
		// artwork-heavy invitations often OCR poorly; extract what we can
		gateWarning = "text did not look like an invitation: " + v.Error
		r.logger.Info("parser.invite.lenient", "matched", v.MatchedKeywords)
	}

	doc := extract.NewDocument(a.text, p.now())
	inv := extract.ExtractInvite(doc)
	if a.fromImage {
		inv.ThemeColors = theme.Resolve(a.text, a.payload, a.mediaType)
	} else {
		inv.ThemeColors = theme.Resolve(a.text, nil, "")
	}
	inv.ConfidenceScore, inv.Warnings = score.Invite(inv)
	if gateWarning != "" {
		inv.Warnings = append(inv.Warnings, gateWarning)
	}
	if err := selfCheck(inviteSchema, inv); err != nil {
		r.logger.Warn("parser.invite.schema", "error", err)
		inv.Warnings = append(inv.Warnings, "result failed schema self-check: "+err.Error())
	}
	r.logger.Info("parser.invite.ok",
		"event_type", inv.EventType,
		"venue", inv.Venue,
		"confidence", inv.ConfidenceScore,
		"warnings", len(inv.Warnings),
	)
	return entity.ParseResult[entity.ParsedInvite]{Success: true, Data: &inv, Validation: &v, Diagnostics: r.diagnostics(a)}
}

// failure maps err onto the public error shape.
func failure[T any](r *run, err error, v *entity.ValidationResult, diag *entity.Diagnostics) entity.ParseResult[T] {
	code := common.CodeOf(err)
	msg := err.Error()
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
		if appErr.Cause != nil && code != common.CodeValidationRejected {
			msg += ": " + appErr.Cause.Error()
		}
	}
	if code == common.CodeAcquisitionFailed {
		msg += "; " + common.RemediationHint
	}
	if code != common.CodeValidationRejected {
		r.logger.Error("parser.failed", "code", code, "error", err)
	}
	if diag == nil {
		diag = &entity.Diagnostics{RunID: r.id, ElapsedMS: time.Since(r.start).Milliseconds()}
	}
	return entity.ParseResult[T]{Success: false, Error: msg, ErrorCode: code, Validation: v, Diagnostics: diag}
}

func recoverInto[T any](res *entity.ParseResult[T], r *run) {
	rec := recover()
	if rec == nil {
		return
	}
	r.logger.Error("parser.panic", "panic", rec, "stack", string(debug.Stack()))
	err := common.NewAppError(common.CodeInternal, fmt.Sprintf("%v", rec), common.ErrInternal)
	*res = failure[T](r, err, nil, nil)
}
