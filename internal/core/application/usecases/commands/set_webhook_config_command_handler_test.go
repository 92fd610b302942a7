package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mschaaf17/ShippityApp/internal/core/application/usecases/commands"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
	"github.com/mschaaf17/ShippityApp/internal/core/ports"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

type MockSetWebhookConfigUoW struct{ mock.Mock }

func (m *MockSetWebhookConfigUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSetWebhookConfigUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSetWebhookConfigUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSetWebhookConfigUoW) WebhookRepository() ports.WebhookRepository {
	args := m.Called()
	return args.Get(0).(ports.WebhookRepository)
}

type MockSetWebhookConfigUoWFactory struct{ mock.Mock }

func (m *MockSetWebhookConfigUoWFactory) Create() commands.WebhookUoW {
	args := m.Called()
	return args.Get(0).(commands.WebhookUoW)
}

func TestSetWebhookConfigCommandHandler_Handle_SavesConfig(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetWebhookConfigCommand("kingbee", "https://partner.test/webhooks", "secret", true)
	require.NoError(t, err)

	var saved *webhook.Config
	webhookRepo := new(MockDispatchWebhookRepository)
	uow := new(MockSetWebhookConfigUoW)
	uow.On("WebhookRepository").Return(webhookRepo)

	factory := new(MockSetWebhookConfigUoWFactory)
	factory.On("Create").Return(uow).Once()

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		webhookRepo.On("SaveConfig", mock.Anything, mock.AnythingOfType("*webhook.Config")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*webhook.Config) }).
			Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	h := commands.NewSetWebhookConfigCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, saved)
	assert.Equal(t, "kingbee", saved.Name())
	assert.Equal(t, "https://partner.test/webhooks", saved.URL())
	assert.Equal(t, "secret", saved.SecretToken())
	assert.True(t, saved.Enabled())
	uow.AssertExpectations(t)
}

func TestSetWebhookConfigCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetWebhookConfigCommand("kingbee", "https://partner.test/webhooks", "", false)
	require.NoError(t, err)

	webhookRepo := new(MockDispatchWebhookRepository)
	webhookRepo.On("SaveConfig", mock.Anything, mock.AnythingOfType("*webhook.Config")).
		Return(errs.NewValueIsInvalidError("config")).Once()

	uow := new(MockSetWebhookConfigUoW)
	uow.On("WebhookRepository").Return(webhookRepo)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockSetWebhookConfigUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetWebhookConfigCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewSetWebhookConfigCommand_RequiresNameAndURL(t *testing.T) {
	_, err := commands.NewSetWebhookConfigCommand("", "https://partner.test", "", true)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSetWebhookConfigCommand("kingbee", "", "", true)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
