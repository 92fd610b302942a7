package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
)

func Test_NewCustomer(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid with email", func(t *testing.T) {
		c, err := NewCustomer(id, "Acme Corp", "ops@acme.test", "")
		require.NoError(t, err)
		assert.Equal(t, id, c.ID())
		assert.Equal(t, "Acme Corp", c.Name())
		assert.Equal(t, "ops@acme.test", c.Email())
		assert.Equal(t, Company, c.ContactKind())
	})

	t.Run("valid with phone", func(t *testing.T) {
		c, err := NewCustomer(id, "Jane Doe", "", "555-0101")
		require.NoError(t, err)
		assert.Equal(t, "555-0101", c.Phone())
		assert.Equal(t, Individual, c.ContactKind())
	})

	t.Run("no contact", func(t *testing.T) {
		_, err := NewCustomer(id, "Nobody", "", "")
		assert.ErrorIs(t, err, ErrContactIsRequired)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewCustomer(kernel.UUID{}, "Jane", "a@b.test", "")
		assert.Error(t, err)
	})
}

func Test_Customer_Merge(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("fills empty fields", func(t *testing.T) {
		c, err := NewCustomer(id, "", "ops@acme.test", "")
		require.NoError(t, err)

		c.Merge("Acme Corp", "", "555-0101")

		assert.Equal(t, "Acme Corp", c.Name())
		assert.Equal(t, "ops@acme.test", c.Email())
		assert.Equal(t, "555-0101", c.Phone())
	})

	t.Run("empty values never erase", func(t *testing.T) {
		c, err := NewCustomer(id, "Acme Corp", "ops@acme.test", "555-0101")
		require.NoError(t, err)

		c.Merge("", "", "")

		assert.Equal(t, "Acme Corp", c.Name())
		assert.Equal(t, "ops@acme.test", c.Email())
		assert.Equal(t, "555-0101", c.Phone())
	})

	t.Run("non-empty values replace", func(t *testing.T) {
		c, err := NewCustomer(id, "Acme", "old@acme.test", "")
		require.NoError(t, err)

		c.Merge("Acme Corp", "new@acme.test", "")

		assert.Equal(t, "Acme Corp", c.Name())
		assert.Equal(t, "new@acme.test", c.Email())
	})

	t.Run("phone promotes contact kind", func(t *testing.T) {
		c, err := NewCustomer(id, "Jane", "jane@b.test", "")
		require.NoError(t, err)
		assert.Equal(t, Company, c.ContactKind())

		c.Merge("", "", "555-0101")
		assert.Equal(t, Individual, c.ContactKind())
	})
}

func Test_Customer_Validate(t *testing.T) {
	t.Run("constructed", func(t *testing.T) {
		c, err := NewCustomer(kernel.NewUUID(), "Jane", "a@b.test", "")
		require.NoError(t, err)
		assert.NoError(t, c.Validate())
	})

	t.Run("zero value", func(t *testing.T) {
		var c Customer
		assert.ErrorIs(t, c.Validate(), ErrCustomerIsNotConstructed)
	})
}
