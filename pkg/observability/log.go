package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports conversion and cache events as debug log lines.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that write to logger, or to the default logger
// when nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnConvertStart(_ context.Context, document string, layers int) {
	h.Logger.Debug("convert start", "document", document, "layers", layers)
}

func (h *LogHooks) OnConvertComplete(_ context.Context, document string, tables int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("convert failed", "document", document, "err", err)
		return
	}
	h.Logger.Debug("convert done", "document", document, "tables", tables, "duration", d)
}

func (h *LogHooks) OnExport(_ context.Context, exporter string, assets int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("export failed", "exporter", exporter, "assets", assets, "err", err)
		return
	}
	h.Logger.Debug("export done", "exporter", exporter, "assets", assets, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "key", keyType, "bytes", size)
}

var (
	_ ConvertHooks = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
)
