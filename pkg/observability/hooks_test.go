package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopConvertHooks{}
	p.OnConvertStart(ctx, "newsletter", 12)
	p.OnConvertComplete(ctx, "newsletter", 4, time.Second, nil)
	p.OnExport(ctx, "sketchtool", 3, time.Second, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "document")
	c.OnCacheMiss(ctx, "tree")
	c.OnCacheSet(ctx, "document", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Convert().(NoopConvertHooks); !ok {
		t.Error("Convert() should return NoopConvertHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customConvert := &testConvertHooks{}
	SetConvertHooks(customConvert)
	if Convert() != customConvert {
		t.Error("SetConvertHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Convert().(NoopConvertHooks); !ok {
		t.Error("Reset() should restore NoopConvertHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testConvertHooks{}
	SetConvertHooks(custom)
	SetConvertHooks(nil)
	if Convert() != custom {
		t.Error("SetConvertHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnConvertStart(ctx, "newsletter", 7)
	h.OnConvertComplete(ctx, "newsletter", 3, time.Millisecond, nil)
	h.OnExport(ctx, "images", 2, 0, errors.New("disk full"))
	h.OnCacheHit(ctx, "document")

	out := buf.String()
	for _, want := range []string{"convert start", "layers=7", "convert done", "tables=3", "export failed", "disk full", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLogHooksDefaultLogger(t *testing.T) {
	if NewLogHooks(nil).Logger == nil {
		t.Error("NewLogHooks(nil) should fall back to the default logger")
	}
}

type testConvertHooks struct{ NoopConvertHooks }
type testCacheHooks struct{ NoopCacheHooks }
