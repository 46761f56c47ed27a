package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// Sheet names in the batch workbook.
const (
	SheetContracts = "Contracts"
	SheetRooms     = "Rooms"
	SheetInvites   = "Invites"
	SheetFailures  = "Failures"
)

const maxWarningsCell = 300

// Entry is one parsed file. At most one of Contract and Invite is set; Error
// is set when the parse failed.
type Entry struct {
	File     string
	Kind     string
	Contract *entity.ParsedContract
	Invite   *entity.ParsedInvite
	Error    string
}

// Service produces XLSX bytes for batch results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) write(values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, w.row)
		_ = w.f.SetCellValue(w.sheet, cell, v)
	}
	w.row++
}

func newSheet(f *excelize.File, name string, headers []string, widths map[string]float64) (*sheetWriter, error) {
	if index, _ := f.GetSheetIndex(name); index == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	w := &sheetWriter{f: f, sheet: name, row: 1}
	hs := make([]any, len(headers))
	for i, h := range headers {
		hs[i] = h
	}
	w.write(hs...)
	for col, width := range widths {
		_ = f.SetColWidth(name, col, col, width)
	}
	return w, nil
}

// ExportXLSX renders entries into a workbook with one sheet per result kind
// and returns its bytes.
func (s *Service) ExportXLSX(entries []Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", SheetContracts); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	contracts, err := newSheet(f, SheetContracts, []string{
		"File", "Venue", "Location", "Check-in", "Check-out", "Nights", "Rooms",
		"Total", "Currency", "Confidence", "Warnings",
	}, map[string]float64{"A": 40, "B": 30, "C": 16, "D": 12, "E": 12, "K": 60})
	if err != nil {
		return nil, err
	}
	rooms, err := newSheet(f, SheetRooms, []string{
		"File", "Room Type", "Quantity", "Rate", "Floor", "Wing", "Hotel",
	}, map[string]float64{"A": 40, "B": 28, "G": 30})
	if err != nil {
		return nil, err
	}
	invites, err := newSheet(f, SheetInvites, []string{
		"File", "Event Name", "Event Type", "Date", "Time", "Venue", "Location",
		"RSVP", "Primary", "Secondary", "Accent", "Confidence",
	}, map[string]float64{"A": 40, "B": 34, "F": 30, "H": 30})
	if err != nil {
		return nil, err
	}
	failures, err := newSheet(f, SheetFailures, []string{"File", "Kind", "Error"},
		map[string]float64{"A": 40, "C": 80})
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		switch {
		case e.Error != "":
			failures.write(e.File, e.Kind, e.Error)
		case e.Contract != nil:
			c := e.Contract
			contracts.write(e.File, c.Venue, c.Location, c.CheckIn, c.CheckOut, c.Nights,
				roomCount(c.Rooms), c.TotalAmount, c.Currency, c.ConfidenceScore,
				truncate(strings.Join(c.Warnings, "; "), maxWarningsCell))
			for _, r := range c.Rooms {
				rooms.write(e.File, r.RoomType, r.Quantity, r.Rate, r.Floor, r.Wing, r.HotelName)
			}
		case e.Invite != nil:
			inv := e.Invite
			var primary, secondary, accent string
			if inv.ThemeColors != nil {
				primary, secondary, accent = inv.ThemeColors.Primary, inv.ThemeColors.Secondary, inv.ThemeColors.Accent
			}
			invites.write(e.File, inv.EventName, inv.EventType, inv.EventDate, inv.EventTime,
				inv.Venue, inv.Location, inv.RSVPContact, primary, secondary, accent, inv.ConfidenceScore)
		}
	}

	if index, _ := f.GetSheetIndex(SheetContracts); index >= 0 {
		f.SetActiveSheet(index)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"entries", len(entries),
		"contracts", contracts.row-2,
		"invites", invites.row-2,
		"failures", failures.row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// roomCount is the total contracted rooms, ignoring the placeholder line.
func roomCount(rs []entity.RoomLine) int {
	n := 0
	for _, r := range rs {
		if !r.IsPlaceholder() {
			n += r.Quantity
		}
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
