package extract

import (
	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// ExtractContract runs every contract extractor over d. Rooms is never
// empty; the confidence score is added by the caller.
func ExtractContract(d *Document) entity.ParsedContract {
	venue := d.Venue()
	stay := d.DateRange()
	nights, explicit := d.Nights()
	switch {
	case stay.complete():
		nights = int(stay.Out.Sub(stay.In).Hours() / 24)
	case !stay.In.IsZero() && explicit:
		stay.Out = stay.In.AddDate(0, 0, nights)
	}

	rooms := d.Rooms()
	if len(rooms) == 0 {
		rooms = []entity.RoomLine{entity.PlaceholderRoom()}
	}
	addOns, services := d.LineItems()

	c := entity.ParsedContract{
		Venue:              venue,
		Location:           d.Location(venue),
		CheckIn:            formatOrEmpty(stay.In),
		CheckOut:           formatOrEmpty(stay.Out),
		Nights:             nights,
		EventName:          d.EventName(),
		Rooms:              rooms,
		AddOns:             addOns,
		EventServices:      services,
		AttritionRules:     d.AttritionRules(stay.In),
		CancellationPolicy: d.CancellationPolicy(),
		TotalAmount:        d.TotalAmount(rooms, nights),
		Currency:           d.Currency(),
		TaxRate:            d.TaxRate(),
		TaxIncluded:        d.TaxIncluded(),
		DepositPercent:     d.DepositPercent(),
		ContractNumber:     d.ContractNumber(),
		ContractDate:       d.ContractDate(),
		CutoffDate:         d.CutoffDate(),
		Contacts:           d.Contacts(),
		Signatories:        d.Signatories(),
		Warnings:           []string{},
	}
	return c
}
