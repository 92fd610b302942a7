package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/mschaaf17/ShippityApp/internal/adapters/out/carrier"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/partnerhook"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres"
	"github.com/mschaaf17/ShippityApp/internal/core/application/usecases/commands"
	"github.com/mschaaf17/ShippityApp/internal/core/application/usecases/queries"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	carrier    *carrier.Client
	sender     *partnerhook.Sender
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrier: carrier.NewClient(carrier.Config{
			BaseURL:      config.CarrierAPIBaseURL,
			ClientID:     config.CarrierClientID,
			ClientSecret: config.CarrierClientSecret,
		}, logger),
		sender: partnerhook.NewSender(logger),
		logger: logger,
	}
}

func (c *CompositionRoot) CreateReconcileLoadCommandHandler() commands.ReconcileLoadCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileLoadCommandHandler(f, c.carrier, c.logger)
}

func (c *CompositionRoot) CreateDispatchStatusCommandHandler() commands.DispatchStatusCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchStatusCommandHandler(f, c.sender, c.config.PartnerName, c.logger)
}

func (c *CompositionRoot) CreateSubmitOrdersCommandHandler() commands.SubmitOrdersCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	reconciler := c.CreateReconcileLoadCommandHandler()
	return commands.NewSubmitOrdersCommandHandler(f, c.carrier, &reconciler, c.logger)
}

func (c *CompositionRoot) CreateSyncLoadCommandHandler() commands.SyncLoadCommandHandler {
	reconciler := c.CreateReconcileLoadCommandHandler()
	return commands.NewSyncLoadCommandHandler(c.carrier, &reconciler, c.logger)
}

func (c *CompositionRoot) CreateRetryWebhooksCommandHandler() commands.RetryWebhooksCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRetryWebhooksCommandHandler(f, c.sender, c.logger)
}

func (c *CompositionRoot) CreateSetReferenceCommandHandler() commands.SetReferenceCommandHandler {
	var f commands.LoadUoWFactory = FuncLoadUoWFactory(func() commands.LoadUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetReferenceCommandHandler(f)
}

func (c *CompositionRoot) CreateSetWebhookConfigCommandHandler() commands.SetWebhookConfigCommandHandler {
	var f commands.WebhookUoWFactory = FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetWebhookConfigCommandHandler(f)
}

func (c *CompositionRoot) CreateGetLoadQueryHandler() queries.GetLoadQueryHandler {
	return queries.NewGetLoadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryLogsQueryHandler() queries.GetDeliveryLogsQueryHandler {
	return queries.NewGetDeliveryLogsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWebhookConfigQueryHandler() queries.GetWebhookConfigQueryHandler {
	return queries.NewGetWebhookConfigQueryHandler(c.gormDB)
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncLoadUoWFactory func() commands.LoadUoW

func (f FuncLoadUoWFactory) Create() commands.LoadUoW {
	return f()
}

type FuncWebhookUoWFactory func() commands.WebhookUoW

func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
