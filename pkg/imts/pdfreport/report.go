package pdfreport

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/imts-dashboard/imts-go/pkg/imts/output"
	"github.com/ledongthuc/pdf"
)

// Output file names written by WriteFiles.
const (
	DataFile    = "pdf_data.json"
	RawTextFile = "pdf_raw_text.txt"
)

// Source is written into the report metadata.
const Source = "International Merchandise Trade Highlight"

// Metadata describes the parsed document.
type Metadata struct {
	Source      string    `json:"source"`
	FileName    string    `json:"filename"`
	ExtractedAt time.Time `json:"extractedAt"`
	Pages       int       `json:"pages"`
}

// Report is everything recovered from one PDF.
type Report struct {
	Metadata    Metadata             `json:"metadata"`
	Period      string               `json:"period,omitempty"`
	Totals      Totals               `json:"tradeData"`
	Statistics  map[string]Statistic `json:"statistics"`
	Commodities []NamedValue         `json:"commodities"`
	Countries   []CountryValue       `json:"countries"`
	Tables      [][]string           `json:"tables"`
	RawText     string               `json:"rawText"`
}

// Analyze runs every heuristic over text.
func Analyze(text string, meta Metadata) *Report {
	tables := Tables(text)
	headline := Headline(text)

	clipped := make([][]string, len(tables))
	for i, t := range tables {
		clipped[i] = t[:min(len(t), MaxTableRows)]
	}

	raw := []rune(text)
	if len(raw) > MaxRawText {
		raw = raw[:MaxRawText]
	}

	return &Report{
		Metadata:    meta,
		Period:      headline.Period,
		Totals:      headline,
		Statistics:  Statistics(text),
		Commodities: Commodities(tables),
		Countries:   Countries(tables),
		Tables:      clipped,
		RawText:     string(raw),
	}
}

// ReadText extracts the text of every page, one line per text row.
func ReadText(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", pages, fmt.Errorf("read page %d: %w", i, err)
		}
		for _, row := range rows {
			sb.WriteString(joinRow(row.Content))
			sb.WriteByte('\n')
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		plain, err := r.GetPlainText()
		if err != nil {
			return "", pages, fmt.Errorf("read text: %w", err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(plain); err != nil {
			return "", pages, fmt.Errorf("read text: %w", err)
		}
		return buf.String(), pages, nil
	}

	return sb.String(), pages, nil
}

// joinRow rebuilds a line from positioned text runs. A wide horizontal gap
// becomes two spaces so table columns stay detectable.
func joinRow(texts []pdf.Text) string {
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var sb strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			gap := t.X - (prev.X + prev.W)
			size := math.Max(prev.FontSize, 1)
			switch {
			case gap > size:
				sb.WriteString("  ")
			case gap > size*0.2:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return sb.String()
}

// Extract reads the PDF at path and analyzes its text. The full text is
// returned alongside the report.
func Extract(path string, now time.Time) (*Report, string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, "", err
	}

	text, pages, err := ReadText(path)
	if err != nil {
		return nil, "", err
	}

	report := Analyze(text, Metadata{
		Source:      Source,
		FileName:    filepath.Base(path),
		ExtractedAt: now.UTC(),
		Pages:       pages,
	})
	return report, text, nil
}

// WriteFiles writes the report and the full text into dir.
func WriteFiles(report *Report, text, dir string) error {
	if err := output.WriteJSON(filepath.Join(dir, DataFile), report, true); err != nil {
		return err
	}
	return output.WriteFile(filepath.Join(dir, RawTextFile), []byte(text))
}
