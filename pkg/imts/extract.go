package imts

import (
	"fmt"

	"github.com/imts-dashboard/imts-go/pkg/imts/extractor"
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/summary"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
	"github.com/rs/zerolog"
)

// Extract loads the workbook at path and assembles the records variant.
func Extract(path string, opts Options) (*models.Dataset, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	return Assemble(wb, opts), nil
}

// ExtractRaw loads the workbook at path and assembles the table variant.
func ExtractRaw(path string, opts Options) (*models.RawDataset, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	return AssembleRaw(wb, opts), nil
}

// Assemble runs every dataset extractor over wb in the fixed dataset order.
// A missing sheet or a failing extractor leaves its dataset empty and is
// logged as a warning; the other datasets are unaffected.
func Assemble(wb *workbook.Workbook, opts Options) *models.Dataset {
	log := opts.logger()
	l := opts.layout()

	ds := &models.Dataset{
		BalanceOfTrade:   []models.BalanceRecord{},
		PrincipalExports: []models.CommodityRecord{},
		PrincipalImports: []models.CommodityRecord{},
		TradeByCountry:   []models.CountryRecord{},
		TradeByRegion:    []models.RegionRecord{},
		TradeByTransport: []models.TransportRecord{},
		TradeByAgreement: []models.AgreementRecord{},
		ImportsByHS:      []models.HSRecord{},
		ExportsByHS:      []models.HSRecord{},
	}

	for _, key := range layout.Keys {
		spec, ok := l.Spec(key)
		if !ok {
			continue
		}
		sheet := lookup(wb, key, spec, log)
		if sheet == nil {
			continue
		}

		guard(key, spec.Sheet, log, func() {
			switch key {
			case layout.KeyBalanceOfTrade:
				ds.BalanceOfTrade = extractor.BalanceOfTrade(sheet, spec)
			case layout.KeyPrincipalExports:
				ds.PrincipalExports = extractor.PrincipalCommodities(sheet, spec)
			case layout.KeyPrincipalImports:
				ds.PrincipalImports = extractor.PrincipalCommodities(sheet, spec)
			case layout.KeyTradeByCountry:
				ds.TradeByCountry = extractor.TradeByCountry(sheet, spec)
			case layout.KeyTradeByRegion:
				ds.TradeByRegion = extractor.TradeByRegion(sheet, spec)
			case layout.KeyTradeByTransport:
				ds.TradeByTransport = extractor.TradeByTransport(sheet, spec)
			case layout.KeyTradeByAgreement:
				ds.TradeByAgreement = extractor.TradeByAgreement(sheet, spec)
			case layout.KeyImportsByHS:
				ds.ImportsByHS = extractor.HSCategories(sheet, spec)
			case layout.KeyExportsByHS:
				ds.ExportsByHS = extractor.HSCategories(sheet, spec)
			}
		})
	}

	for _, key := range layout.Keys {
		n := ds.Counts()[key]
		log.Info().Str("dataset", key).Int("records", n).Msgf("%s: %d records", key, n)
	}

	if !opts.NoSummary {
		ds.Summary = summary.Compute(ds.BalanceOfTrade)
	}
	ds.Metadata = metadata(wb, opts)
	return ds
}

// AssembleRaw builds the table variant: each dataset sheet as its header
// row at SkipRows followed by row objects.
func AssembleRaw(wb *workbook.Workbook, opts Options) *models.RawDataset {
	log := opts.logger()
	l := opts.layout()

	ds := &models.RawDataset{Tables: make(map[string]models.Table, len(layout.Keys))}
	for _, key := range layout.Keys {
		spec, ok := l.Spec(key)
		if !ok {
			continue
		}
		table := models.Table{Headers: []string{}, Data: []map[string]any{}}
		if sheet := lookup(wb, key, spec, log); sheet != nil {
			guard(key, spec.Sheet, log, func() {
				table = extractor.Table(sheet, spec)
			})
		}
		ds.Tables[key] = table
		log.Info().Str("dataset", key).Int("records", len(table.Data)).
			Msgf("%s: %d rows", key, len(table.Data))
	}

	ds.Metadata = metadata(wb, opts)
	return ds
}

func lookup(wb *workbook.Workbook, key string, spec layout.Spec, log *zerolog.Logger) *workbook.Sheet {
	sheet, ok := wb.Sheet(spec.Sheet)
	if !ok {
		log.Warn().Err(NewExtractionError(key, spec.Sheet, ErrSheetNotFound)).
			Str("dataset", key).
			Msgf("%s: sheet %q not found, dataset left empty", key, spec.Sheet)
		return nil
	}
	return sheet
}

// guard runs fn and turns a panic into a logged ExtractionError.
func guard(key, sheetName string, log *zerolog.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := NewExtractionError(key, sheetName, fmt.Errorf("%v", r))
			log.Error().Err(err).Str("dataset", key).Msgf("%s: extraction failed, dataset left empty", key)
		}
	}()
	fn()
}

func metadata(wb *workbook.Workbook, opts Options) models.Metadata {
	fileName := opts.FileName
	if fileName == "" {
		fileName = wb.Name
	}
	return models.Metadata{
		Source:      opts.source(),
		Period:      opts.Period,
		Currency:    opts.currency(),
		LastUpdated: opts.now(),
		UploadedAt:  opts.UploadedAt,
		FileName:    fileName,
	}
}
