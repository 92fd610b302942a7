package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildDay = time.Date(2025, 11, 19, 10, 0, 0, 0, time.UTC)

func testSubmission(vehicleCount int) Submission {
	vehicles := make([]VehicleSubmission, 0, vehicleCount)
	for i := range vehicleCount {
		vehicles = append(vehicles, VehicleSubmission{
			VIN:         fmt.Sprintf("VIN-%d", i+1),
			IssueNumber: fmt.Sprintf("KB-%03d", i+1),
		})
	}
	return Submission{
		Vehicles: vehicles,
		Pickup:   StopSubmission{Address: "2772 S 5600 W, West Valley City, UT 84120"},
		Delivery: StopSubmission{Address: "123 Main St, Venice, FL 34292"},
	}
}

func Test_OrderBuilder_Validate(t *testing.T) {
	builder := NewOrderBuilder()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, builder.Validate(testSubmission(1)))
	})

	t.Run("no vehicles", func(t *testing.T) {
		sub := testSubmission(1)
		sub.Vehicles = nil
		assert.ErrorIs(t, builder.Validate(sub), ErrNoVehicles)
	})

	t.Run("missing pickup address", func(t *testing.T) {
		sub := testSubmission(1)
		sub.Pickup.Address = ""
		assert.ErrorIs(t, builder.Validate(sub), ErrPickupAddressRequired)
	})

	t.Run("missing delivery address", func(t *testing.T) {
		sub := testSubmission(1)
		sub.Delivery.Address = ""
		assert.ErrorIs(t, builder.Validate(sub), ErrDeliveryAddressRequired)
	})
}

func Test_OrderBuilder_RegionCode(t *testing.T) {
	builder := NewOrderBuilder()

	t.Run("explicit state wins", func(t *testing.T) {
		sub := testSubmission(1)
		sub.State = "ut"
		assert.Equal(t, "UT", builder.RegionCode(sub))
	})

	t.Run("delivery state field", func(t *testing.T) {
		sub := testSubmission(1)
		sub.Delivery = StopSubmission{Address: "somewhere", State: "TX"}
		assert.Equal(t, "TX", builder.RegionCode(sub))
	})

	t.Run("parsed from delivery address", func(t *testing.T) {
		assert.Equal(t, "FL", builder.RegionCode(testSubmission(1)))
	})

	t.Run("underivable", func(t *testing.T) {
		sub := testSubmission(1)
		sub.Delivery = StopSubmission{Address: "somewhere unknown"}
		assert.Empty(t, builder.RegionCode(sub))
	})
}

func Test_OrderBuilder_Build_Batching(t *testing.T) {
	builder := NewOrderBuilder()

	t.Run("seven vehicles become three orders sized 3 3 1", func(t *testing.T) {
		orders := builder.Build(testSubmission(7), "FL", 1, buildDay)

		require.Len(t, orders, 3)
		assert.Len(t, orders[0].Vehicles, 3)
		assert.Len(t, orders[1].Vehicles, 3)
		assert.Len(t, orders[2].Vehicles, 1)
	})

	t.Run("consecutive order numbers", func(t *testing.T) {
		orders := builder.Build(testSubmission(7), "FL", 4, buildDay)

		assert.Equal(t, "K111925FL4", orders[0].Number)
		assert.Equal(t, "K111925FL5", orders[1].Number)
		assert.Equal(t, "K111925FL6", orders[2].Number)
	})

	t.Run("single vehicle single order", func(t *testing.T) {
		orders := builder.Build(testSubmission(1), "FL", 1, buildDay)
		require.Len(t, orders, 1)
		assert.Equal(t, "K111925FL1", orders[0].Number)
	})
}

func Test_OrderBuilder_Build_Payload(t *testing.T) {
	builder := NewOrderBuilder()
	orders := builder.Build(testSubmission(2), "FL", 1, buildDay)
	require.Len(t, orders, 1)
	order := orders[0]

	t.Run("vehicles carry issue numbers as lot numbers", func(t *testing.T) {
		require.Len(t, order.Vehicles, 2)
		assert.Equal(t, "VIN-1", order.Vehicles[0].VIN)
		assert.Equal(t, "KB-001", order.Vehicles[0].LotNumber)
		assert.Equal(t, "new", order.Vehicles[0].Status)
		assert.Equal(t, "advanced", order.Vehicles[0].InspectionType)
		assert.Equal(t, "van", order.Vehicles[0].Type)
	})

	t.Run("stops are parsed and scheduled on a three day window", func(t *testing.T) {
		assert.Equal(t, "West Valley City", order.Pickup.Venue.City)
		assert.Equal(t, "UT", order.Pickup.Venue.State)
		assert.Equal(t, 84120, order.Pickup.Venue.Zip)
		assert.Equal(t, "2025-11-19T00:00:00.000Z", order.Pickup.FirstAvailablePickupDate)
		assert.Equal(t, "2025-11-19T16:00:00.000Z", order.Pickup.ScheduledAt)
		assert.Equal(t, "2025-11-22T16:00:00.000Z", order.Pickup.ScheduledEndsAt)

		assert.Equal(t, "Venice", order.Delivery.Venue.City)
		assert.Equal(t, "FL", order.Delivery.Venue.State)
		assert.Equal(t, "estimated", order.Delivery.DateType)
	})

	t.Run("region fills unparsed delivery state", func(t *testing.T) {
		sub := testSubmission(1)
		sub.Delivery = StopSubmission{Address: "somewhere unknown"}
		built := builder.Build(sub, "XA", 1, buildDay)
		assert.Equal(t, "XA", built[0].Delivery.Venue.State)
	})

	t.Run("shipper block is constant", func(t *testing.T) {
		assert.Equal(t, "KingBee Vans HQ", order.Customer.Name)
		assert.Equal(t, "UT", order.Customer.State)
		assert.Equal(t, 84120, order.Customer.Zip)
	})

	t.Run("payment is other slash other", func(t *testing.T) {
		assert.Equal(t, OrderPayment{Method: "other", Terms: "other"}, order.Payment)
	})

	t.Run("transport and inspection defaults", func(t *testing.T) {
		assert.Equal(t, "OPEN", order.TransportType)
		assert.Equal(t, "advanced", order.InspectionType)
	})
}
