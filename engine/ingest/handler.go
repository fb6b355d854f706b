package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/netwatchgen/engine/core"
	"github.com/compozy/netwatchgen/engine/host"
	"github.com/compozy/netwatchgen/engine/infra/blob"
	"github.com/compozy/netwatchgen/engine/routeros"
	"github.com/compozy/netwatchgen/pkg/config"
	"github.com/compozy/netwatchgen/pkg/logger"
	"github.com/google/uuid"
)

// Result is returned to the invoking runtime after a successful run.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	// Keys lists the decoded input keys that were processed, in order.
	Keys []string `json:"-"`
}

// Handler converts host inventories dropped under the input prefix into a
// cleaned CSV and a netwatch script under the output prefix.
type Handler struct {
	store   blob.Store
	cfg     config.IngestConfig
	emitter *routeros.Emitter
	metrics *Metrics
}

// NewHandler creates a handler. A nil metrics value gets a fresh registry.
func NewHandler(store blob.Store, cfg config.IngestConfig, metrics *Metrics) *Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Handler{
		store:   store,
		cfg:     cfg,
		emitter: routeros.NewEmitter(routeros.WithListVariable(cfg.ListVariable)),
		metrics: metrics,
	}
}

// Metrics returns the counters updated by the handler.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Handle processes the qualifying records of an event. It returns a nil
// Result and a nil error when no record qualifies. Any failure aborts the
// run; artifacts already written are left in place.
func (h *Handler) Handle(ctx context.Context, event Event) (*Result, error) {
	log := logger.FromContext(ctx).With("run_id", uuid.NewString())
	var result *Result
	for _, rec := range event.Records {
		key, ok := decodeKey(rec.Key)
		if !ok {
			log.Warn("Object key has malformed escapes, keeping them literally", "key", rec.Key, "decoded", key)
		}
		if !strings.HasPrefix(key, h.cfg.InputPath) {
			log.Debug("Skipping object outside the input path", "key", key, "input_path", h.cfg.InputPath)
			h.metrics.fileProcessed(outcomeSkipped)
			continue
		}
		if err := h.process(ctx, log, rec.Bucket, key); err != nil {
			h.metrics.fileProcessed(outcomeFailure)
			log.Error("Failed to process input file", "bucket", rec.Bucket, "key", key, "code", core.CodeOf(err), "error", err)
			return nil, core.AsProcessingError(fmt.Sprintf("failed to process %s", key), err)
		}
		h.metrics.fileProcessed(outcomeSuccess)
		if result == nil {
			result = &Result{StatusCode: http.StatusOK}
		}
		result.Body = fmt.Sprintf("Successfully processed %s and generated output files", key)
		result.Keys = append(result.Keys, key)
		if h.cfg.Mode != config.ModeAll {
			break
		}
	}
	return result, nil
}

func (h *Handler) process(ctx context.Context, log logger.Logger, bucket, key string) error {
	log = log.With("bucket", bucket, "key", key)
	kind, err := host.KindFromKey(key)
	if err != nil {
		return err
	}
	raw, err := h.store.Get(ctx, bucket, key)
	if err != nil {
		return err
	}
	if err := host.SniffKind(raw, kind); err != nil {
		return err
	}
	records, stats, err := host.NormalizeWithStats(raw, kind)
	if err != nil {
		return err
	}
	h.metrics.rowsRead(stats.Accepted, stats.Dropped)
	log.Info("Normalized host records", "kind", kind, "rows", stats.Rows, "accepted", stats.Accepted, "dropped", stats.Dropped)
	cleaned, err := host.EncodeCSV(records)
	if err != nil {
		return err
	}
	csvKey, rscKey := OutputKeys(key, h.cfg.InputPath, h.cfg.OutputPath)
	if err := h.store.Put(ctx, bucket, csvKey, cleaned); err != nil {
		return err
	}
	script := h.emitter.Emit(records)
	if err := h.store.Put(ctx, bucket, rscKey, []byte(script)); err != nil {
		return err
	}
	log.Info("Generated output files", "csv", csvKey, "script", rscKey)
	return nil
}
