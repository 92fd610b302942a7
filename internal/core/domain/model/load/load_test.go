package load

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
)

var testNow = time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)

func testSnapshot() Snapshot {
	return Snapshot{
		OrderID:     "K111925FL1",
		ReferenceID: "KB-001",
		Status:      StatusNew,
		Vehicle:     Vehicle{Year: "2022", Make: "Honda", Model: "Civic", VIN: "V-1", LotNumber: "KB-001"},
		Pickup: Stop{
			Address: kernel.Address{Street: "123 Main St", City: "Los Angeles", State: "CA", Zip: "90001"},
		},
		Delivery: Stop{
			Address: kernel.Address{Street: "456 Oak Ave", City: "San Francisco", State: "CA", Zip: "94102"},
		},
		Carrier: CarrierContact{Name: "ABC Transport", Phone: "+15559876543"},
		BOLURL:  "",
	}
}

func Test_NewLoad(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()
		l, err := NewLoad(id, testSnapshot(), nil, testNow)
		require.NoError(t, err)

		assert.Equal(t, id, l.ID())
		assert.Equal(t, "K111925FL1", l.OrderID())
		assert.Equal(t, "KB-001", l.ReferenceID())
		assert.Equal(t, StatusNew, l.Status())
		assert.Nil(t, l.PickedUpAt())
		assert.Nil(t, l.DeliveredAt())
		assert.NoError(t, l.Validate())
	})

	t.Run("missing order identifier", func(t *testing.T) {
		snap := testSnapshot()
		snap.OrderID = ""
		_, err := NewLoad(kernel.NewUUID(), snap, nil, testNow)
		assert.ErrorIs(t, err, ErrMissingOrderIdentifier)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewLoad(kernel.UUID{}, testSnapshot(), nil, testNow)
		assert.Error(t, err)
	})

	t.Run("first sighting already picked up stamps timestamp", func(t *testing.T) {
		snap := testSnapshot()
		snap.Status = StatusPickedUp
		l, err := NewLoad(kernel.NewUUID(), snap, nil, testNow)
		require.NoError(t, err)

		require.NotNil(t, l.PickedUpAt())
		assert.Equal(t, testNow, *l.PickedUpAt())
		assert.Nil(t, l.DeliveredAt())
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var l Load
		assert.ErrorIs(t, l.Validate(), ErrLoadIsNotConstructed)
	})
}

func Test_Load_Merge(t *testing.T) {
	newLoad := func(t *testing.T) *Load {
		t.Helper()
		l, err := NewLoad(kernel.NewUUID(), testSnapshot(), nil, testNow)
		require.NoError(t, err)
		return l
	}

	t.Run("empty snapshot never erases", func(t *testing.T) {
		l := newLoad(t)
		l.Merge(Snapshot{}, nil, testNow)

		assert.Equal(t, "K111925FL1", l.OrderID())
		assert.Equal(t, "KB-001", l.ReferenceID())
		assert.Equal(t, "V-1", l.Vehicle().VIN)
		assert.Equal(t, "Los Angeles", l.Pickup().Address.City)
		assert.Equal(t, StatusNew, l.Status())
	})

	t.Run("populated bol url survives absent incoming", func(t *testing.T) {
		l := newLoad(t)
		l.Merge(Snapshot{BOLURL: "https://x"}, nil, testNow)
		l.Merge(Snapshot{Status: StatusDelivered}, nil, testNow)

		assert.Equal(t, "https://x", l.BOLURL())
	})

	t.Run("relocation updates order id in place", func(t *testing.T) {
		l := newLoad(t)
		l.Merge(Snapshot{OrderID: "K111925FL2"}, nil, testNow)

		assert.Equal(t, "K111925FL2", l.OrderID())
		assert.Equal(t, "KB-001", l.ReferenceID())
	})

	t.Run("picked up timestamp set exactly once", func(t *testing.T) {
		l := newLoad(t)
		first := testNow
		later := testNow.Add(48 * time.Hour)

		l.Merge(Snapshot{Status: StatusPickedUp}, nil, first)
		require.NotNil(t, l.PickedUpAt())
		assert.Equal(t, first, *l.PickedUpAt())

		l.Merge(Snapshot{Status: StatusPickedUp}, nil, later)
		assert.Equal(t, first, *l.PickedUpAt())

		l.Merge(Snapshot{Status: StatusDelivered}, nil, later)
		assert.Equal(t, first, *l.PickedUpAt())
		require.NotNil(t, l.DeliveredAt())
		assert.Equal(t, later, *l.DeliveredAt())
	})

	t.Run("in transit also stamps pickup", func(t *testing.T) {
		l := newLoad(t)
		l.Merge(Snapshot{Status: StatusInTransit}, nil, testNow)
		require.NotNil(t, l.PickedUpAt())
	})

	t.Run("status replaced only when present", func(t *testing.T) {
		l := newLoad(t)
		l.Merge(Snapshot{Status: StatusPickedUp}, nil, testNow)
		l.Merge(Snapshot{Vehicle: Vehicle{Make: "Honda"}}, nil, testNow)

		assert.Equal(t, StatusPickedUp, l.Status())
	})

	t.Run("idempotent reapply", func(t *testing.T) {
		l := newLoad(t)
		snap := testSnapshot()
		snap.Status = StatusPickedUp

		l.Merge(snap, nil, testNow)
		before := *l

		l.Merge(snap, nil, testNow.Add(time.Hour))
		assert.Equal(t, before.OrderID(), l.OrderID())
		assert.Equal(t, before.Status(), l.Status())
		assert.Equal(t, *before.PickedUpAt(), *l.PickedUpAt())
	})

	t.Run("customer attached when resolved", func(t *testing.T) {
		l := newLoad(t)
		customerID := kernel.NewUUID()
		l.Merge(Snapshot{}, &customerID, testNow)

		require.NotNil(t, l.CustomerID())
		assert.Equal(t, customerID, *l.CustomerID())
	})

	t.Run("stop fields merge per field", func(t *testing.T) {
		l := newLoad(t)
		date := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
		l.Merge(Snapshot{Pickup: Stop{Date: &date}}, nil, testNow)

		assert.Equal(t, "Los Angeles", l.Pickup().Address.City)
		require.NotNil(t, l.Pickup().Date)
		assert.Equal(t, date, *l.Pickup().Date)
	})
}

func Test_Load_IsDispatchable(t *testing.T) {
	t.Run("reference and vin present", func(t *testing.T) {
		l, err := NewLoad(kernel.NewUUID(), testSnapshot(), nil, testNow)
		require.NoError(t, err)
		assert.True(t, l.IsDispatchable())
	})

	t.Run("missing reference", func(t *testing.T) {
		snap := testSnapshot()
		snap.ReferenceID = ""
		snap.Vehicle.LotNumber = ""
		l, err := NewLoad(kernel.NewUUID(), snap, nil, testNow)
		require.NoError(t, err)
		assert.False(t, l.IsDispatchable())
	})

	t.Run("missing vin", func(t *testing.T) {
		snap := testSnapshot()
		snap.Vehicle.VIN = ""
		l, err := NewLoad(kernel.NewUUID(), snap, nil, testNow)
		require.NoError(t, err)
		assert.False(t, l.IsDispatchable())
	})
}

func Test_Load_SetReference(t *testing.T) {
	l, err := NewLoad(kernel.NewUUID(), testSnapshot(), nil, testNow)
	require.NoError(t, err)

	assert.False(t, l.SetReference(""))
	assert.False(t, l.SetReference("KB-001"))
	assert.True(t, l.SetReference("KB-002"))
	assert.Equal(t, "KB-002", l.ReferenceID())
}

func Test_Load_SetBOLURL(t *testing.T) {
	l, err := NewLoad(kernel.NewUUID(), testSnapshot(), nil, testNow)
	require.NoError(t, err)

	assert.False(t, l.SetBOLURL(""))
	assert.True(t, l.SetBOLURL("https://bol/1"))
	assert.False(t, l.SetBOLURL("https://bol/2"))
	assert.Equal(t, "https://bol/1", l.BOLURL())
}
