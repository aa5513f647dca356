// Package pdfreport pulls headline figures out of the monthly trade
// highlight PDF. The report has no structured tables, so everything here
// works on extracted text lines with pattern heuristics.
package pdfreport

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Output caps.
const (
	MaxCommodities = 20
	MaxCountries   = 15
	MaxTableRows   = 10
	MaxRawText     = 5000
)

// KnownCountries are the partner names searched for in table rows.
var KnownCountries = []string{
	"Australia", "China", "Fiji", "Japan", "New Zealand", "Singapore",
	"Thailand", "France", "USA", "United States", "PNG", "Papua New Guinea",
	"New Caledonia", "Solomon Islands", "Indonesia", "Malaysia", "Philippines",
}

var (
	groupedNumber  = regexp.MustCompile(`\d{1,3}(,\d{3})*(\.\d+)?`)
	multipleSpaces = regexp.MustCompile(`\s{2,}`)
	moneyStatistic = regexp.MustCompile(`(?i)(\w+(?:[ \t]+\w+)*)[ \t]*[:=][ \t]*VT?[ \t]*([\d,]*\d(?:\.\d+)?)[ \t]*(million|billion)?`)
	periodPattern  = regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})`)
	exportTotal    = regexp.MustCompile(`(?i)(?:total\s+)?exports?\s*[:=]?\s*VT?\s*([\d,]*\d(?:\.\d+)?)`)
	importTotal    = regexp.MustCompile(`(?i)(?:total\s+)?imports?\s*[:=]?\s*VT?\s*([\d,]*\d(?:\.\d+)?)`)
	balanceTotal   = regexp.MustCompile(`(?i)(?:trade\s+)?balance\s*[:=]?\s*VT?\s*(-?[\d,]*\d(?:\.\d+)?)`)
	commodityRow   = regexp.MustCompile(`^([A-Za-z\s,&-]+?)\s+([\d,]*\d(?:\.\d+)?)`)
	headerName     = regexp.MustCompile(`(?i)^(total|period|month|year)`)
	wordSpace      = regexp.MustCompile(`\s+`)
)

// Statistic is one "name: VT value unit" figure found in the text.
type Statistic struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Formatted string  `json:"formatted"`
}

// NamedValue is a commodity row read from a text table.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CountryValue is a partner country row read from a text table.
type CountryValue struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// Totals holds the headline export, import and balance figures.
type Totals struct {
	Period  string   `json:"period,omitempty"`
	Exports *float64 `json:"exports"`
	Imports *float64 `json:"imports"`
	Balance *float64 `json:"balance"`
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// Lines splits text into trimmed, non-empty lines.
func Lines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Tables groups consecutive lines that look like table rows: they hold a
// number and at least two consecutive spaces.
func Tables(text string) [][]string {
	var tables [][]string
	var current []string

	for _, line := range Lines(text) {
		if groupedNumber.MatchString(line) && multipleSpaces.MatchString(line) {
			current = append(current, line)
			continue
		}
		if len(current) > 0 {
			tables = append(tables, current)
			current = nil
		}
	}
	if len(current) > 0 {
		tables = append(tables, current)
	}

	return tables
}

// Statistics finds every "name: VT 1,234 million" figure, keyed by the
// lower-cased, underscore-joined name. Later matches overwrite earlier ones.
func Statistics(text string) map[string]Statistic {
	stats := make(map[string]Statistic)
	for _, line := range Lines(text) {
		for _, m := range moneyStatistic.FindAllStringSubmatch(line, -1) {
			key := wordSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(m[1])), "_")
			stats[key] = Statistic{
				Value:     parseAmount(m[2]),
				Unit:      strings.ToLower(m[3]),
				Formatted: m[2],
			}
		}
	}
	return stats
}

// Headline finds the report period and the first export, import and
// balance figures in the text.
func Headline(text string) Totals {
	var t Totals

	if m := periodPattern.FindStringSubmatch(text); m != nil {
		t.Period = m[1] + " " + m[2]
	}

	first := func(re *regexp.Regexp) *float64 {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		v := parseAmount(m[1])
		return &v
	}
	t.Exports = first(exportTotal)
	t.Imports = first(importTotal)
	t.Balance = first(balanceTotal)

	return t
}

// Commodities reads "Name  1,234" rows out of the tables, sorted by value,
// largest first, and capped at MaxCommodities.
func Commodities(tables [][]string) []NamedValue {
	result := []NamedValue{}
	for _, table := range tables {
		for _, row := range table {
			m := commodityRow.FindStringSubmatch(row)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			if len(name) <= 3 || headerName.MatchString(name) {
				continue
			}
			result = append(result, NamedValue{Name: name, Value: parseAmount(m[2])})
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Value > result[j].Value })
	if len(result) > MaxCommodities {
		result = result[:MaxCommodities]
	}
	return result
}

var countryPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(KnownCountries))
	for _, c := range KnownCountries {
		m[c] = regexp.MustCompile(regexp.QuoteMeta(c) + `\s+([\d,]*\d(?:\.\d+)?)`)
	}
	return m
}()

// Countries reads "Country 1,234" figures for KnownCountries out of the
// tables, sorted by value, largest first, and capped at MaxCountries.
func Countries(tables [][]string) []CountryValue {
	result := []CountryValue{}
	for _, table := range tables {
		for _, row := range table {
			for _, country := range KnownCountries {
				if !strings.Contains(row, country) {
					continue
				}
				if m := countryPatterns[country].FindStringSubmatch(row); m != nil {
					result = append(result, CountryValue{Country: country, Value: parseAmount(m[1])})
				}
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Value > result[j].Value })
	if len(result) > MaxCountries {
		result = result[:MaxCountries]
	}
	return result
}
