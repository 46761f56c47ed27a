package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

func TestDocument_LineItems_TableRowsSplitByPayer(t *testing.T) {
	text := `Description        Qty   Rate     Amount
Deluxe Room         20   9,000    1,80,000
Airport Transfer     4   2,500      10,000
Banquet Hall         1   75,000     75,000
Grand Total                       2,65,000`
	addOns, services := newDoc(text).LineItems()

	assert.Equal(t, []entity.AddOnLine{{Name: "Airport Transfer", Price: 2500}}, addOns)
	assert.Equal(t, []entity.EventServiceLine{{Name: "Banquet Hall", Price: 75000}}, services)
}

func TestDocument_LineItems_Lines(t *testing.T) {
	text := "Wi-Fi: complimentary\nSpa credit: Rs. 3,000 per guest\nDJ and sound: ₹45,000\nService charge: 10%\nParking"
	addOns, services := newDoc(text).LineItems()

	assert.Equal(t, []entity.AddOnLine{
		{Name: "Wi-Fi", Price: 0, IsIncluded: true},
		{Name: "Spa credit", Price: 3000},
	}, addOns)
	assert.Equal(t, []entity.EventServiceLine{{Name: "DJ and sound", Price: 45000}}, services)
}

func TestDocument_Rooms_EventWordsInRoomNames(t *testing.T) {
	text := "Wedding Guest Room 30 12000 360000\nLawn Facing Cottage 5 25000 125000\nDeluxe Room 10 9000 90000"
	d := newDoc(text)

	rooms := d.Rooms()
	require.Len(t, rooms, 3)
	tests := []struct {
		roomType string
		qty      int
		rate     float64
	}{
		{"Wedding Guest Room", 30, 12000},
		{"Lawn Facing Cottage", 5, 25000},
		{"Deluxe Room", 10, 9000},
	}
	for i, tc := range tests {
		t.Run(tc.roomType, func(t *testing.T) {
			assert.Equal(t, tc.roomType, rooms[i].RoomType)
			assert.Equal(t, tc.qty, rooms[i].Quantity)
			assert.Equal(t, tc.rate, rooms[i].Rate)
		})
	}

	_, services := d.LineItems()
	assert.Empty(t, services)
}

func TestDocument_Rooms_Labeled(t *testing.T) {
	text := "Room Type: Premier Sea View\nRoom Rate: ₹14,500\nNumber of Rooms: 25"
	rooms := newDoc(text).Rooms()

	require.Len(t, rooms, 1)
	assert.Equal(t, entity.RoomLine{RoomType: "Premier Sea View", Rate: 14500, Quantity: 25}, rooms[0])
}

func TestDocument_Rooms_FloorWingAndHotel(t *testing.T) {
	text := "12 Deluxe rooms @ ₹7,500 on 3rd floor, East wing at Taj Lands End"
	rooms := newDoc(text).Rooms()

	require.Len(t, rooms, 1)
	assert.Equal(t, "Deluxe Room", rooms[0].RoomType)
	assert.Equal(t, 7500.0, rooms[0].Rate)
	assert.Equal(t, 12, rooms[0].Quantity)
	assert.Equal(t, "3", rooms[0].Floor)
	assert.Equal(t, "East", rooms[0].Wing)
	assert.Equal(t, "Taj Lands End", rooms[0].HotelName)
}

func TestDocument_Rooms_NoneFound(t *testing.T) {
	assert.Empty(t, newDoc("Thank you for choosing us").Rooms())
}

func TestDocument_Contacts(t *testing.T) {
	text := "Sales Manager: Kavita Rao, kavita.rao@marriott.com\nReservations desk: reservations@marriott.com\nPhone: +91 22 6693 3000\nFax 022 1234"
	contacts := newDoc(text).Contacts()

	require.Len(t, contacts, 3)
	assert.Equal(t, entity.Contact{Name: "Kavita Rao", Role: "Sales Manager", Email: "kavita.rao@marriott.com"}, contacts[0])
	assert.Equal(t, "reservations@marriott.com", contacts[1].Email)
	assert.Equal(t, "+91 22 6693 3000", contacts[2].Phone)
}

func TestDocument_Signatories(t *testing.T) {
	text := "For and on behalf of Marriott Hotels India Pvt Ltd\nAuthorized Signatory\nName: Arjun Nair\nDesignation: Director of Sales\n\nSigned by: Neha Gupta, Wedding Planner"
	sigs := newDoc(text).Signatories()

	require.Len(t, sigs, 2)
	assert.Equal(t, entity.Signatory{Name: "Arjun Nair", Title: "Director of Sales", Party: "Marriott Hotels India Pvt Ltd"}, sigs[0])
	assert.Equal(t, entity.Signatory{Name: "Neha Gupta", Title: "Wedding Planner"}, sigs[1])
}

func TestDocument_Metadata(t *testing.T) {
	text := "Booking Reference: GRP-88213\nDate: 12 January 2026\nCut-off date: 1 March 2026\nGroup Name: Infosys Offsite\nCancellation Policy\nNo refunds within 14 days of arrival.\nRetention applies to unused rooms.\n\nOther terms follow"
	d := newDoc(text)

	assert.Equal(t, "GRP-88213", d.ContractNumber())
	assert.Equal(t, "2026-01-12", d.ContractDate())
	assert.Equal(t, "2026-03-01", d.CutoffDate())
	assert.Equal(t, "Infosys Offsite", d.EventName())
	assert.Equal(t, "No refunds within 14 days of arrival. Retention applies to unused rooms.", d.CancellationPolicy())
}

func TestDocument_ContractNumber_NeedsDigit(t *testing.T) {
	assert.Empty(t, newDoc("Contract No: PENDING").ContractNumber())
	assert.Equal(t, "TLP/0042", newDoc("Agreement ref TLP/0042 dated today").ContractNumber())
}
