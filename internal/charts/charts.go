// Package charts renders the four summary charts with gonum/plot.
// Batch mode saves them as PNG files; the explorer streams the same
// specifications as PNG responses, recomputed per request.
package charts

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"cordscope/internal/analytics"
	"cordscope/internal/dataset"
	"cordscope/internal/errors"
)

// Chart names, shared between the batch output filenames and the HTTP
// chart endpoint.
const (
	ChartPubsByYear    = "pubs_by_year"
	ChartTopJournals   = "top_journals"
	ChartHistWordCount = "hist_abstract_wordcount"
	ChartScatter       = "scatter_abstract_vs_year"
)

// Names lists every chart in render order.
var Names = []string{ChartPubsByYear, ChartTopJournals, ChartHistWordCount, ChartScatter}

// histogramBins is the fixed bin count for the abstract word count
// distribution.
const histogramBins = 30

var (
	barColor     = color.RGBA{R: 135, G: 206, B: 235, A: 255} // sky blue
	journalColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}  // steel blue
	histColor    = color.RGBA{R: 255, G: 165, B: 0, A: 255}   // orange
	scatterColor = color.NRGBA{R: 31, G: 119, B: 180, A: 77}  // translucent points
)

// Renderer builds chart plots from cleaned tables.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a chart renderer. A nil logger falls back to
// slog.Default.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger.With(slog.String("component", "charts"))}
}

// Render builds the named chart for a table. Unknown names return a
// not-found error.
func (r *Renderer) Render(name string, t *dataset.Table) (*plot.Plot, error) {
	switch name {
	case ChartPubsByYear:
		return r.PublicationsByYear(t)
	case ChartTopJournals:
		return r.TopJournals(t)
	case ChartHistWordCount:
		return r.AbstractWordCountHistogram(t)
	case ChartScatter:
		return r.YearWordCountScatter(t)
	default:
		return nil, errors.NewNotFoundError(fmt.Sprintf("chart %q", name))
	}
}

// SaveAll writes all four charts as PNG files into dir.
func (r *Renderer) SaveAll(ctx context.Context, t *dataset.Table, dir string) error {
	for _, name := range Names {
		p, err := r.Render(name, t)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, name+".png")
		if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to save chart %s", name), err)
		}

		r.logger.InfoContext(ctx, "saved plot", slog.String("path", path))
	}
	return nil
}

// WritePNG streams a plot as PNG to w.
func (r *Renderer) WritePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return errors.NewStorageError("failed to encode chart as PNG", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.NewStorageError("failed to write chart PNG", err)
	}
	return nil
}

// PublicationsByYear builds the bar chart of publication counts per
// year, years ascending on the X axis.
func (r *Renderer) PublicationsByYear(t *dataset.Table) (*plot.Plot, error) {
	counts := analytics.CountByYear(t)

	p := plot.New()
	p.Title.Text = "Number of Publications by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Publications"

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, yc := range counts {
		values[i] = float64(yc.Count)
		labels[i] = strconv.Itoa(yc.Year)
	}

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return nil, errors.NewParsingError("failed to build year bar chart", err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = vg.Length(0)

		p.Add(bars)
		p.NominalX(labels...)
	}

	return p, nil
}

// TopJournals builds the horizontal bar chart of the ten journals with
// the most papers, descending by count.
func (r *Renderer) TopJournals(t *dataset.Table) (*plot.Plot, error) {
	top := analytics.TopJournals(t, 10)

	p := plot.New()
	p.Title.Text = "Top 10 Journals Publishing COVID-19 Research"
	p.X.Label.Text = "Number of Papers"
	p.Y.Label.Text = "Journal"

	// Reverse so the largest journal ends up on top of the Y axis.
	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, jc := range top {
		j := len(top) - 1 - i
		values[j] = float64(jc.Count)
		labels[j] = jc.Journal
	}

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return nil, errors.NewParsingError("failed to build journal bar chart", err)
		}
		bars.Color = journalColor
		bars.LineStyle.Width = vg.Length(0)
		bars.Horizontal = true

		p.Add(bars)
		p.NominalY(labels...)
	}

	return p, nil
}

// AbstractWordCountHistogram builds the 30-bin histogram of abstract
// word counts.
func (r *Renderer) AbstractWordCountHistogram(t *dataset.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Distribution of Abstract Word Count"
	p.X.Label.Text = "Abstract Word Count"
	p.Y.Label.Text = "Frequency"

	values := make(plotter.Values, 0, t.Rows())
	for _, paper := range t.Papers {
		values = append(values, float64(paper.AbstractWordCount))
	}

	if len(values) > 0 {
		hist, err := plotter.NewHist(values, histogramBins)
		if err != nil {
			return nil, errors.NewParsingError("failed to build word count histogram", err)
		}
		hist.FillColor = histColor

		p.Add(hist)
	}

	return p, nil
}

// YearWordCountScatter builds the scatter plot of publication year
// against abstract word count with translucent points.
func (r *Renderer) YearWordCountScatter(t *dataset.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Abstract Word Count vs Publication Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Abstract Word Count"

	points := make(plotter.XYs, 0, t.Rows())
	for _, paper := range t.Papers {
		if paper.Year == 0 {
			continue
		}
		points = append(points, plotter.XY{X: float64(paper.Year), Y: float64(paper.AbstractWordCount)})
	}

	if len(points) > 0 {
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return nil, errors.NewParsingError("failed to build year scatter plot", err)
		}
		scatter.GlyphStyle.Color = scatterColor
		scatter.GlyphStyle.Radius = vg.Points(2)

		p.Add(scatter)
	}

	return p, nil
}
