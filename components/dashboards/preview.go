package dashboards

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	previewWidth  = "120px"
	previewHeight = "72px"
)

// Placeholder series for preview glyphs. Previews only hint at the widget's
// shape; real data never reaches the list view.
var previewSeries = []float64{4, 7, 5, 9, 6, 11, 8}

// RenderCache memoizes rendered preview HTML so repeated list refreshes are
// cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// PreviewCache is an in-memory TTL cache for rendered previews.
type PreviewCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedPreview
}

type cachedPreview struct {
	html    string
	expires time.Time
}

// NewPreviewCache builds a cache with the provided TTL.
func NewPreviewCache(ttl time.Duration) *PreviewCache {
	return &PreviewCache{
		ttl:     ttl,
		entries: make(map[string]cachedPreview),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *PreviewCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

func (c *PreviewCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.html, true
}

func (c *PreviewCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedPreview{
		html:    html,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

var sharedPreviewCache = NewPreviewCache(5 * time.Minute)

// PreviewRenderer turns widget previews into compact chart glyphs for the
// dashboard cards.
type PreviewRenderer struct {
	cache RenderCache
}

// PreviewRendererOption customizes renderer behavior.
type PreviewRendererOption func(*PreviewRenderer)

// WithPreviewCache injects a render cache.
func WithPreviewCache(cache RenderCache) PreviewRendererOption {
	return func(r *PreviewRenderer) {
		r.cache = cache
	}
}

// NewPreviewRenderer builds a renderer with the shared cache.
func NewPreviewRenderer(options ...PreviewRendererOption) *PreviewRenderer {
	r := &PreviewRenderer{cache: sharedPreviewCache}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render produces the glyph HTML for a single widget preview.
func (r *PreviewRenderer) Render(preview WidgetPreview) (string, error) {
	renderFn := func() (string, error) {
		return renderPreviewGlyph(preview.DisplayType)
	}
	if r.cache != nil {
		return r.cache.GetOrRender(previewKey(preview), renderFn)
	}
	return renderFn()
}

// RenderCard renders every preview on a card in arrival order. A preview
// that fails to render is skipped rather than failing the whole card.
func (r *PreviewRenderer) RenderCard(previews []WidgetPreview) []string {
	out := make([]string, 0, len(previews))
	for _, preview := range previews {
		html, err := r.Render(preview)
		if err != nil {
			continue
		}
		out = append(out, html)
	}
	return out
}

func previewKey(preview WidgetPreview) string {
	if preview.Layout == nil {
		return string(preview.DisplayType)
	}
	return fmt.Sprintf("%s:%dx%d", preview.DisplayType, preview.Layout.W, preview.Layout.H)
}

func renderPreviewGlyph(display DisplayType) (string, error) {
	switch display {
	case DisplayLine, DisplayArea, DisplayTopN:
		return renderLineGlyph(display == DisplayArea)
	case DisplayBar:
		return renderBarGlyph()
	case DisplayTable:
		return `<div class="widget-preview widget-preview--table"></div>`, nil
	case DisplayBigNumber:
		return `<div class="widget-preview widget-preview--big-number"></div>`, nil
	default:
		return "", fmt.Errorf("dashboards: no preview glyph for display type %q", display)
	}
}

func renderLineGlyph(filled bool) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(previewChartOptions()...)
	line.SetXAxis(previewAxis())
	data := make([]opts.LineData, len(previewSeries))
	for i, value := range previewSeries {
		data[i] = opts.LineData{Value: value}
	}
	line.AddSeries("preview", data)
	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	}
	if filled {
		seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}))
	}
	line.SetSeriesOptions(seriesOpts...)
	return renderChart(line)
}

func renderBarGlyph() (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(previewChartOptions()...)
	bar.SetXAxis(previewAxis())
	data := make([]opts.BarData, len(previewSeries))
	for i, value := range previewSeries {
		data[i] = opts.BarData{Value: value}
	}
	bar.AddSeries("preview", data)
	return renderChart(bar)
}

func previewChartOptions() []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  previewWidth,
			Height: previewHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(false)}),
	}
}

func previewAxis() []string {
	axis := make([]string, len(previewSeries))
	for i := range previewSeries {
		axis[i] = fmt.Sprintf("t%d", i)
	}
	return axis
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
