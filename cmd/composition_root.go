package cmd

import (
	"log/slog"
	"os"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/renderer"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// All handlers share one unit of work factory and one gorm connection.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	renderer   ports.DocumentRenderer
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	artifactRenderer, err := renderer.NewArtifactRenderer(config.ArtifactPrefix)
	if err != nil {
		panic(err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		renderer:   artifactRenderer,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAddScanTaskCommandHandler() commands.AddScanTaskCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddScanTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordScanEventCommandHandler() commands.RecordScanEventCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordScanEventCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteScanTaskCommandHandler() commands.CompleteScanTaskCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteScanTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateBeginHandoverCommandHandler() commands.BeginHandoverCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewBeginHandoverCommandHandler(f, c.renderer)
}

func (c *CompositionRoot) CreateAttachSignatureCommandHandler() commands.AttachSignatureCommandHandler {
	var f commands.DocumentUoWFactory = FuncDocumentUoWFactory(func() commands.DocumentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachSignatureCommandHandler(f)
}

func (c *CompositionRoot) CreateSignDocumentCommandHandler() commands.SignDocumentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSignDocumentCommandHandler(f, c.renderer)
}

func (c *CompositionRoot) CreateReconcileOrderStatusesCommandHandler() commands.ReconcileOrderStatusesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileOrderStatusesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListScanHistoryQueryHandler() queries.ListScanHistoryQueryHandler {
	return queries.NewListScanHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLatestDocumentQueryHandler() queries.GetLatestDocumentQueryHandler {
	return queries.NewGetLatestDocumentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDocumentHistoryQueryHandler() queries.ListDocumentHistoryQueryHandler {
	return queries.NewListDocumentHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileOrderStatusesCommandHandler(),
		config.ReconcileSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncDocumentUoWFactory func() commands.DocumentUoW

func (f FuncDocumentUoWFactory) Create() commands.DocumentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
