package load

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// ErrMissingOrderIdentifier is returned when a carrier payload carries none of
// the identifiers a ledger row can be keyed by.
var ErrMissingOrderIdentifier = errs.NewValueIsRequiredError("order number, order_id, or guid")

// FlexString accepts either a JSON string or a JSON number. Carrier payloads
// are inconsistent about numeric fields such as the vehicle year.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// OrderSnapshot is the loose wire shape of a carrier order as delivered by
// webhook callbacks and the order-detail endpoint. Fields may appear at the
// order level or nested inside a vehicle entry, stops may carry a venue block
// or flat fields, and the document URL comes in four spellings. Normalize
// resolves all of that into a Snapshot.
type OrderSnapshot struct {
	OrderID     string `json:"order_id"`
	Number      string `json:"number"`
	GUID        string `json:"guid"`
	Status      string `json:"status"`
	ReferenceID string `json:"reference_id"`

	Vehicles []VehicleSnapshot `json:"vehicles"`
	Vehicle  *VehicleSnapshot  `json:"vehicle"`

	Customer ContactSnapshot `json:"customer"`
	Pickup   StopSnapshot    `json:"pickup"`
	Delivery StopSnapshot    `json:"delivery"`
	Carrier  CarrierSnapshot `json:"carrier"`

	BOLURL                string `json:"bol_url"`
	PDFBOLURL             string `json:"pdf_bol_url"`
	PDFBOLURLWithTemplate string `json:"pdf_bol_url_with_template"`
	OnlineBOLURL          string `json:"online_bol_url"`
}

// VehicleSnapshot is one vehicle entry in a carrier payload.
type VehicleSnapshot struct {
	Year      FlexString `json:"year"`
	Make      string     `json:"make"`
	Model     string     `json:"model"`
	VIN       string     `json:"vin"`
	LotNumber string     `json:"lot_number"`
	Status    string     `json:"status"`
}

// ContactSnapshot is the customer block of a carrier payload.
type ContactSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// StopSnapshot is a pickup or delivery block. The carrier sometimes nests
// the address in a venue object and sometimes flattens it; scheduling may be
// a full timestamp (scheduled_at) or a bare date.
type StopSnapshot struct {
	Venue         *VenueSnapshot `json:"venue"`
	Address       string         `json:"address"`
	StreetAddress string         `json:"street_address"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Zip           string         `json:"zip"`
	ScheduledAt   string         `json:"scheduled_at"`
	Date          string         `json:"date"`
}

// VenueSnapshot is the nested address form of a stop.
type VenueSnapshot struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// CarrierSnapshot is the carrier/driver block. Driver contact may be flat
// or nested in a driver object.
type CarrierSnapshot struct {
	Name        string          `json:"name"`
	CompanyName string          `json:"company_name"`
	Phone       string          `json:"phone"`
	DriverName  string          `json:"driver_name"`
	DriverPhone string          `json:"driver_phone"`
	Driver      *DriverSnapshot `json:"driver"`
}

// DriverSnapshot is the nested driver form of a carrier block.
type DriverSnapshot struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Snapshot is a fully resolved view of one carrier order: every ambiguity of
// the wire shape has been decided, and all fields are in canonical form.
// Empty strings and nil times mean "not reported".
type Snapshot struct {
	OrderID     string
	ReferenceID string
	GUID        string
	Status      Status
	Vehicle     Vehicle
	Pickup      Stop
	Delivery    Stop
	Carrier     CarrierContact
	Customer    Contact
	BOLURL      string
}

// Vehicle describes the shipped vehicle.
type Vehicle struct {
	Year      string
	Make      string
	Model     string
	VIN       string
	LotNumber string
}

// IsZero reports whether no vehicle attribute is populated.
func (v Vehicle) IsZero() bool {
	return v == Vehicle{}
}

// Stop is one end of the shipment: a structured address plus optional
// scheduling. Time carries a full timestamp when the carrier reported one;
// Date carries at least the calendar day.
type Stop struct {
	Address kernel.Address
	Date    *time.Time
	Time    *time.Time
}

// Contact is a name/email/phone triple.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// CarrierContact is the carrier company and driver contact details.
type CarrierContact struct {
	Name        string
	Phone       string
	DriverName  string
	DriverPhone string
}

// Normalize resolves the wire shape into a Snapshot.
//
// Resolution rules:
//   - order identifier: first non-empty of number, order_id, guid; none
//     present is ErrMissingOrderIdentifier.
//   - vehicle: first entry of the vehicles array, else the legacy singular
//     vehicle; when the chosen entry lacks a VIN, the first array entry that
//     has one overlays it field by field, keeping what only the first entry
//     reported.
//   - partner reference: the explicit reference_id, else the vehicle's lot
//     number (the relocation key that follows a vehicle across orders).
//   - status: the vehicle-level status when present, else the order-level
//     one, canonicalized by NormalizeStatus.
//   - document URL: pdf_bol_url_with_template, then pdf_bol_url, then
//     online_bol_url, then bol_url.
//   - stop scheduling: scheduled_at over date; malformed values become nil
//     rather than errors.
func (o OrderSnapshot) Normalize() (Snapshot, error) {
	orderID := firstNonEmpty(o.Number, o.OrderID, o.GUID)
	if orderID == "" {
		return Snapshot{}, ErrMissingOrderIdentifier
	}

	vehicle := o.pickVehicle()
	referenceID := firstNonEmpty(o.ReferenceID, vehicle.LotNumber)

	status := NormalizeStatus(vehicle.Status)
	if status.IsZero() {
		status = NormalizeStatus(o.Status)
	}

	return Snapshot{
		OrderID:     orderID,
		ReferenceID: referenceID,
		GUID:        o.GUID,
		Status:      status,
		Vehicle: Vehicle{
			Year:      string(vehicle.Year),
			Make:      vehicle.Make,
			Model:     vehicle.Model,
			VIN:       vehicle.VIN,
			LotNumber: vehicle.LotNumber,
		},
		Pickup:   o.Pickup.normalize(),
		Delivery: o.Delivery.normalize(),
		Carrier: CarrierContact{
			Name:        firstNonEmpty(o.Carrier.Name, o.Carrier.CompanyName),
			Phone:       o.Carrier.Phone,
			DriverName:  firstNonEmpty(o.Carrier.DriverName, o.Carrier.driverField(func(d DriverSnapshot) string { return d.Name })),
			DriverPhone: firstNonEmpty(o.Carrier.DriverPhone, o.Carrier.driverField(func(d DriverSnapshot) string { return d.Phone })),
		},
		Customer: Contact{
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
		},
		BOLURL: PickBOLURL(o.PDFBOLURLWithTemplate, o.PDFBOLURL, o.OnlineBOLURL, o.BOLURL),
	}, nil
}

// PickBOLURL selects the proof-of-delivery document URL from the carrier's
// four spellings, in order of preference.
func PickBOLURL(withTemplate, pdf, online, legacy string) string {
	return firstNonEmpty(withTemplate, pdf, online, legacy)
}

func (o OrderSnapshot) pickVehicle() VehicleSnapshot {
	var chosen VehicleSnapshot
	switch {
	case len(o.Vehicles) > 0:
		chosen = o.Vehicles[0]
	case o.Vehicle != nil:
		chosen = *o.Vehicle
	}

	// When the first entry lacks a VIN, overlay the first VIN-bearing entry
	// without losing fields only the first entry reported.
	if chosen.VIN == "" {
		for _, v := range o.Vehicles {
			if v.VIN != "" {
				chosen.VIN = v.VIN
				chosen.Year = FlexString(firstNonEmpty(string(v.Year), string(chosen.Year)))
				chosen.Make = firstNonEmpty(v.Make, chosen.Make)
				chosen.Model = firstNonEmpty(v.Model, chosen.Model)
				chosen.LotNumber = firstNonEmpty(v.LotNumber, chosen.LotNumber)
				chosen.Status = firstNonEmpty(v.Status, chosen.Status)
				break
			}
		}
	}
	return chosen
}

func (c CarrierSnapshot) driverField(get func(DriverSnapshot) string) string {
	if c.Driver == nil {
		return ""
	}
	return get(*c.Driver)
}

func (s StopSnapshot) normalize() Stop {
	stop := Stop{
		Address: kernel.Address{
			Street: firstNonEmpty(s.venueField(func(v VenueSnapshot) string { return v.Address }), s.Address, s.StreetAddress),
			City:   firstNonEmpty(s.venueField(func(v VenueSnapshot) string { return v.City }), s.City),
			State:  firstNonEmpty(s.venueField(func(v VenueSnapshot) string { return v.State }), s.State),
			Zip:    firstNonEmpty(s.venueField(func(v VenueSnapshot) string { return v.Zip }), s.Zip),
		},
	}

	raw := firstNonEmpty(s.ScheduledAt, s.Date)
	if t, ok := parseStopTime(raw); ok {
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		stop.Date = &day
		if strings.Contains(raw, "T") {
			stop.Time = &t
		}
	}
	return stop
}

func (s StopSnapshot) venueField(get func(VenueSnapshot) string) string {
	if s.Venue == nil {
		return ""
	}
	return get(*s.Venue)
}

// parseStopTime accepts either a full RFC 3339 timestamp or a bare
// YYYY-MM-DD date. Anything else is treated as absent.
func parseStopTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
