package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mschaaf17/ShippityApp/internal/core/application/usecases/queries"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

func TestNewGetWebhookConfigQuery_Valid(t *testing.T) {
	query, err := queries.NewGetWebhookConfigQuery("kingbee")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "kingbee", query.Name())
}

func TestNewGetWebhookConfigQuery_EmptyName(t *testing.T) {
	_, err := queries.NewGetWebhookConfigQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetWebhookConfigQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetWebhookConfigQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetWebhookConfigQueryIsNotConstructed)
}
