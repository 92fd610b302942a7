package services

import (
	"fmt"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

var (
	// ErrNoVehicles is returned when a submission carries no vehicles.
	ErrNoVehicles = errs.NewValueIsRequiredError("vehicles")

	// ErrPickupAddressRequired is returned when a submission lacks a pickup address.
	ErrPickupAddressRequired = errs.NewValueIsRequiredError("pickup address")

	// ErrDeliveryAddressRequired is returned when a submission lacks a delivery address.
	ErrDeliveryAddressRequired = errs.NewValueIsRequiredError("delivery address")
)

// maxVehiclesPerOrder bounds the size of one carrier order. Larger
// submissions are split into multiple orders.
const maxVehiclesPerOrder = 3

// Shipper identity attached to every outbound carrier order.
const (
	shipperName         = "KingBee Vans HQ"
	shipperAddress      = "2772 S 5600 W"
	shipperCity         = "West Valley City"
	shipperState        = "UT"
	shipperZip          = 84120
	shipperPhone        = "385-319-1194"
	shipperEmail        = "tyson.haslam@kingbee-vans.com"
	shipperContactName  = "Tyson Haslam"
	shipperContactTitle = "Logistics Coordinator"

	stopContactName  = "Move Team"
	stopContactPhone = "281-720-6940"
)

const carrierInstructions = `Hi there,

Tracking: carrier tracking must be ON at all times - this avoids unnecessary calls or update requests.

Text only KJ 303-356-7955 or Matt 801-499-6455 - phone calls will not be answered.

When texting, include:

Company Name

Order ID

Your responsibility:

Contact the customer in advance to verify vehicle readiness.

Coordinate pickup or delivery the day before.

Do not wait until the day of to report issues - that's your responsibility. If we weren't notified the day before or after accepting the load, your issue will be placed in our queue and handled when we can.

If you're delayed or have problems in transit, email shipitylogistics@gmail.com right away.

Check business hours via Google; after-hours delivery requires direct customer contact.

Take pride in your work and communicate clearly - this industry runs on accountability and problem-solving.

- Shipity Logistics`

// VehicleSubmission is one vehicle in a partner order submission. The issue
// number is the partner's tracking key and travels to the carrier as the
// vehicle's lot number.
type VehicleSubmission struct {
	VIN         string `json:"vin"`
	IssueNumber string `json:"issue_number"`
}

// StopSubmission is the pickup or delivery half of a partner submission.
// Address may be free text; the structured fields are optional overrides.
type StopSubmission struct {
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Notes        string `json:"notes"`
	BusinessName string `json:"business_name"`
}

// Submission is a partner request to ship a set of vehicles.
type Submission struct {
	Vehicles []VehicleSubmission `json:"vehicles"`
	Pickup   StopSubmission      `json:"pickup"`
	Delivery StopSubmission      `json:"delivery"`
	State    string              `json:"state"`
}

// OrderRequest is the carrier order-creation payload. Optional fields are
// stripped by CleanPayload before the request goes out.
type OrderRequest struct {
	Number                string         `json:"number"`
	InspectionType        string         `json:"inspection_type"`
	Customer              OrderCustomer  `json:"customer"`
	Instructions          string         `json:"instructions"`
	LoadboardInstructions string         `json:"loadboard_instructions"`
	Payment               OrderPayment   `json:"payment"`
	Pickup                OrderStop      `json:"pickup"`
	Delivery              OrderStop      `json:"delivery"`
	Vehicles              []OrderVehicle `json:"vehicles"`
	TransportType         string         `json:"transport_type"`
}

// OrderCustomer is the shipper block of an OrderRequest.
type OrderCustomer struct {
	Name               string `json:"name"`
	BusinessType       string `json:"business_type"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	Zip                any    `json:"zip"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	ContactName        string `json:"contact_name"`
	ContactTitle       string `json:"contact_title"`
	ContactPhone       string `json:"contact_phone"`
	ContactMobilePhone string `json:"contact_mobile_phone"`
	ContactEmail       string `json:"contact_email"`
}

// OrderPayment is the payment block of an OrderRequest.
type OrderPayment struct {
	Method string `json:"method"`
	Terms  string `json:"terms"`
}

// OrderStop is the pickup or delivery block of an OrderRequest.
type OrderStop struct {
	Venue                    OrderVenue `json:"venue"`
	FirstAvailablePickupDate string     `json:"first_available_pickup_date,omitempty"`
	DateType                 string     `json:"date_type"`
	ScheduledAt              string     `json:"scheduled_at"`
	ScheduledEndsAt          string     `json:"scheduled_ends_at"`
	Notes                    string     `json:"notes,omitempty"`
}

// OrderVenue is the address block of an OrderStop.
type OrderVenue struct {
	Name         string `json:"name,omitempty"`
	BusinessType string `json:"business_type"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          any    `json:"zip"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

// OrderVehicle is one vehicle entry of an OrderRequest. Make, model and year
// are omitted; the carrier derives them from the VIN.
type OrderVehicle struct {
	VIN            string `json:"vin"`
	Status         string `json:"status"`
	InspectionType string `json:"inspection_type"`
	Type           string `json:"type"`
	LotNumber      string `json:"lot_number,omitempty"`
}

// OrderBuilder is a domain service that turns a partner submission into one
// or more carrier order requests.
//
// Business rules:
//   - A submission needs at least one vehicle and both stop addresses.
//   - Vehicles are split into orders of at most three.
//   - Orders are numbered K<MMDDYY><REGION><seq> with consecutive sequence
//     numbers within the submission; the region comes from the delivery
//     address, with a random fallback code when none can be derived.
//   - Pickup and delivery are scheduled as an estimated three-day window
//     starting the day of submission.
type OrderBuilder struct{}

// NewOrderBuilder creates a new OrderBuilder instance.
func NewOrderBuilder() OrderBuilder {
	return OrderBuilder{}
}

// Validate checks the submission for structural completeness.
func (b OrderBuilder) Validate(sub Submission) error {
	if len(sub.Vehicles) == 0 {
		return ErrNoVehicles
	}
	if sub.Pickup.Address == "" {
		return ErrPickupAddressRequired
	}
	if sub.Delivery.Address == "" {
		return ErrDeliveryAddressRequired
	}
	return nil
}

// RegionCode derives the two-letter region used for order numbering:
// the explicitly supplied state wins, then the delivery's structured state,
// then a state parsed out of the free-text delivery address. Returns ""
// when none can be derived; callers substitute kernel.FallbackRegionCode.
func (b OrderBuilder) RegionCode(sub Submission) string {
	if code := kernel.NormalizeRegionCode(sub.State); code != "" {
		return code
	}
	if code := kernel.NormalizeRegionCode(sub.Delivery.State); code != "" {
		return code
	}
	parsed := kernel.ParseAddress(sub.Delivery.Address)
	return kernel.NormalizeRegionCode(parsed.State)
}

// Batches splits the submission's vehicles into the groups that Build will
// turn into orders, in the same deterministic order.
func (b OrderBuilder) Batches(vehicles []VehicleSubmission) [][]VehicleSubmission {
	return batchVehicles(vehicles)
}

// Build assembles the carrier order requests for a validated submission.
// region must be a final region code (real or fallback); startSeq is the
// first free sequence number for that day and region.
func (b OrderBuilder) Build(sub Submission, region string, startSeq int, day time.Time) []OrderRequest {
	groups := batchVehicles(sub.Vehicles)

	pickupVenue := b.buildVenue(sub.Pickup, "")
	deliveryVenue := b.buildVenue(sub.Delivery, region)

	windowStart := day.Format("2006-01-02")
	windowEnd := day.AddDate(0, 0, 3).Format("2006-01-02")

	orders := make([]OrderRequest, 0, len(groups))
	for i, group := range groups {
		number := kernel.FormatOrderNumber(day, region, startSeq+i)
		orders = append(orders, OrderRequest{
			Number:                number,
			InspectionType:        "advanced",
			Customer:              shipperBlock(),
			Instructions:          carrierInstructions,
			LoadboardInstructions: "Text only",
			Payment:               OrderPayment{Method: "other", Terms: "other"},
			Pickup: OrderStop{
				Venue:                    pickupVenue,
				FirstAvailablePickupDate: fmt.Sprintf("%sT00:00:00.000Z", windowStart),
				DateType:                 "estimated",
				ScheduledAt:              fmt.Sprintf("%sT16:00:00.000Z", windowStart),
				ScheduledEndsAt:          fmt.Sprintf("%sT16:00:00.000Z", windowEnd),
				Notes:                    sub.Pickup.Notes,
			},
			Delivery: OrderStop{
				Venue:           deliveryVenue,
				DateType:        "estimated",
				ScheduledAt:     fmt.Sprintf("%sT16:00:00.000Z", windowStart),
				ScheduledEndsAt: fmt.Sprintf("%sT16:00:00.000Z", windowEnd),
				Notes:           sub.Delivery.Notes,
			},
			Vehicles:      buildOrderVehicles(group),
			TransportType: "OPEN",
		})
	}
	return orders
}

func (b OrderBuilder) buildVenue(stop StopSubmission, regionFallback string) OrderVenue {
	parsed := kernel.ParseAddress(stop.Address)

	state := firstNonEmptyString(parsed.State, kernel.NormalizeRegionCode(stop.State), regionFallback)
	venue := OrderVenue{
		BusinessType: "BUSINESS",
		Address:      firstNonEmptyString(parsed.Street, stop.Address),
		City:         firstNonEmptyString(parsed.City, stop.City),
		State:        state,
		Zip:          kernel.NormalizeZip(firstNonEmptyString(parsed.Zip, stop.Zip)),
		ContactName:  stopContactName,
		ContactPhone: stopContactPhone,
	}
	if stop.BusinessName != "" && parsed.Street == "" {
		venue.Name = stop.BusinessName
	}
	return venue
}

func shipperBlock() OrderCustomer {
	return OrderCustomer{
		Name:               shipperName,
		BusinessType:       "BUSINESS",
		Address:            shipperAddress,
		City:               shipperCity,
		State:              shipperState,
		Zip:                shipperZip,
		Phone:              shipperPhone,
		Email:              shipperEmail,
		ContactName:        shipperContactName,
		ContactTitle:       shipperContactTitle,
		ContactPhone:       "801-499-6455 Matt",
		ContactMobilePhone: "385-319-1194 Tyson",
		ContactEmail:       shipperEmail,
	}
}

func buildOrderVehicles(group []VehicleSubmission) []OrderVehicle {
	vehicles := make([]OrderVehicle, 0, len(group))
	for _, v := range group {
		vehicles = append(vehicles, OrderVehicle{
			VIN:            v.VIN,
			Status:         "new",
			InspectionType: "advanced",
			Type:           "van",
			LotNumber:      v.IssueNumber,
		})
	}
	return vehicles
}

func batchVehicles(vehicles []VehicleSubmission) [][]VehicleSubmission {
	var groups [][]VehicleSubmission
	for i := 0; i < len(vehicles); i += maxVehiclesPerOrder {
		end := min(i+maxVehiclesPerOrder, len(vehicles))
		groups = append(groups, vehicles[i:end])
	}
	return groups
}

func firstNonEmptyString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
