package di

import (
	"go.uber.org/zap"

	"relgraph-backend/application/queries"
	querybus "relgraph-backend/application/queries/bus"
	queries_handlers "relgraph-backend/application/queries/handlers"
	"relgraph-backend/application/services"
	domainconfig "relgraph-backend/domain/config"
	"relgraph-backend/domain/layout"
	"relgraph-backend/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	QueryBus *querybus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ProvideDomainConfig creates the layout domain configuration
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return cfg.DomainConfig()
}

// ProvideAssembler creates the graph assembler
func ProvideAssembler(dc *domainconfig.DomainConfig, logger *zap.Logger) *services.GraphAssembler {
	return services.NewGraphAssembler(dc, logger)
}

// ProvideLayoutEngine creates the layout engine
func ProvideLayoutEngine(dc *domainconfig.DomainConfig, logger *zap.Logger) *layout.Engine {
	return layout.NewEngine(dc, logger)
}

// ProvideAssembleGraphHandler creates the assembly query handler
func ProvideAssembleGraphHandler(assembler *services.GraphAssembler, logger *zap.Logger) *queries_handlers.AssembleGraphHandler {
	return queries_handlers.NewAssembleGraphHandler(assembler, logger)
}

// ProvideComputeLayoutHandler creates the layout query handler
func ProvideComputeLayoutHandler(assembler *services.GraphAssembler, engine *layout.Engine, logger *zap.Logger) *queries_handlers.ComputeLayoutHandler {
	return queries_handlers.NewComputeLayoutHandler(assembler, engine, logger)
}

// ProvideQueryBus creates the query bus with all handlers registered
func ProvideQueryBus(
	assembleHandler *queries_handlers.AssembleGraphHandler,
	layoutHandler *queries_handlers.ComputeLayoutHandler,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	bus := querybus.NewQueryBus()
	logging := querybus.LoggingMiddleware(logger)

	if err := bus.Register(queries.AssembleGraphQuery{}, logging(assembleHandler)); err != nil {
		return nil, err
	}
	if err := bus.Register(queries.ComputeLayoutQuery{}, logging(layoutHandler)); err != nil {
		return nil, err
	}

	return bus, nil
}
