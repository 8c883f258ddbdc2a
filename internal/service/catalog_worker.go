package service

import (
	"context"

	"insurance-advisor-be/internal/pkg/logger"
	"insurance-advisor-be/pkg/events"
	pktNats "insurance-advisor-be/pkg/nats"
)

// ICatalogWorker listens for reload-request events and re-ingests the
// catalog from the configured CSV export. Running the reload off the
// request path keeps the admin endpoint fast and makes reloads durable
// across restarts via the JetStream consumer.
type ICatalogWorker interface {
	Start() error
}

type catalogWorker struct {
	subscriber       *pktNats.Subscriber
	ingestionService IIngestionService
	csvPath          string
	logger           logger.ILogger
}

func NewCatalogWorker(
	subscriber *pktNats.Subscriber,
	ingestionService IIngestionService,
	csvPath string,
	sysLogger logger.ILogger,
) ICatalogWorker {
	return &catalogWorker{
		subscriber:       subscriber,
		ingestionService: ingestionService,
		csvPath:          csvPath,
		logger:           sysLogger,
	}
}

func (w *catalogWorker) Start() error {
	subject := "events." + events.TypeCatalogReloadRequest
	return w.subscriber.Subscribe(subject, "catalog-reloader", w.handleReloadRequest)
}

func (w *catalogWorker) handleReloadRequest(ctx context.Context, event events.Event) error {
	w.logger.Info("catalog_worker", "reload requested", event.Payload())

	result, err := w.ingestionService.ReloadFromCSV(ctx, w.csvPath)
	if err != nil {
		w.logger.Error("catalog_worker", "catalog reload failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	w.logger.Info("catalog_worker", "catalog reload finished", map[string]interface{}{
		"loaded":   result.Loaded,
		"embedded": result.Embedded,
		"skipped":  result.Skipped,
	})
	return nil
}
