// Package chart renders dataset charts as PNG images.
package chart

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData indicates there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

var (
	exportColor = color.RGBA{R: 16, G: 185, B: 129, A: 255}
	importColor = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	barColor    = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

// Chart file names written by Render.
const (
	BalanceFile          = "balance_of_trade.png"
	PrincipalExportsFile = "principal_exports.png"
	PrincipalImportsFile = "principal_imports.png"
	CountriesFile        = "trade_by_country.png"
)

// TopN is the number of bars drawn per ranking chart.
const TopN = 10

// Balance draws exports and imports per period as two lines.
func Balance(records []models.BalanceRecord, path string) error {
	if len(records) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Balance of Trade"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Period"
	p.Y.Label.Text = "VT Million"

	exports := make(plotter.XYs, len(records))
	imports := make(plotter.XYs, len(records))
	periods := make([]string, len(records))
	for i, rec := range records {
		exports[i] = plotter.XY{X: float64(i), Y: rec.Exports}
		imports[i] = plotter.XY{X: float64(i), Y: rec.Imports}
		periods[i] = rec.Period
	}

	exportLine, err := plotter.NewLine(exports)
	if err != nil {
		return err
	}
	exportLine.Color = exportColor
	exportLine.Width = vg.Points(2)

	importLine, err := plotter.NewLine(imports)
	if err != nil {
		return err
	}
	importLine.Color = importColor
	importLine.Width = vg.Points(2)

	p.Add(exportLine, importLine, plotter.NewGrid())
	p.Legend.Add("Exports", exportLine)
	p.Legend.Add("Imports", importLine)
	p.Legend.Top = true

	p.NominalX(periods...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YTop
	p.X.Tick.Label.XAlign = draw.XRight

	return save(p, 16*vg.Inch, 8*vg.Inch, path)
}

// Bars draws one bar per label, in the given order.
func Bars(title string, labels []string, values []float64, path string) error {
	if len(values) == 0 || len(labels) != len(values) {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "VT Million"

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0

	return save(p, 12*vg.Inch, 8*vg.Inch, path)
}

// Render writes every chart that has data into dir and returns the written
// paths. Datasets without records are skipped.
func Render(ds *models.Dataset, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	emit := func(name string, err error) error {
		if errors.Is(err, ErrNoData) {
			return nil
		}
		if err != nil {
			return err
		}
		written = append(written, filepath.Join(dir, name))
		return nil
	}

	if err := emit(BalanceFile, Balance(ds.BalanceOfTrade, filepath.Join(dir, BalanceFile))); err != nil {
		return written, err
	}

	commodities := func(title, name string, recs []models.CommodityRecord) error {
		recs = recs[:min(len(recs), TopN)]
		labels := make([]string, len(recs))
		values := make([]float64, len(recs))
		for i, r := range recs {
			labels[i], values[i] = r.Commodity, r.YTD
		}
		return emit(name, Bars(title, labels, values, filepath.Join(dir, name)))
	}
	if err := commodities("Principal Exports", PrincipalExportsFile, ds.PrincipalExports); err != nil {
		return written, err
	}
	if err := commodities("Principal Imports", PrincipalImportsFile, ds.PrincipalImports); err != nil {
		return written, err
	}

	countries := ds.TradeByCountry[:min(len(ds.TradeByCountry), TopN)]
	labels := make([]string, len(countries))
	values := make([]float64, len(countries))
	for i, c := range countries {
		labels[i], values[i] = c.Country, c.TradeVolume
	}
	if err := emit(CountriesFile, Bars("Top Trading Partners", labels, values, filepath.Join(dir, CountriesFile))); err != nil {
		return written, err
	}

	return written, nil
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return p.Save(w, h, path)
}
