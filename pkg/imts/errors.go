package imts

import (
	"errors"
	"fmt"

	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// ErrSourceNotFound indicates the input file does not exist.
var ErrSourceNotFound = workbook.ErrSourceNotFound

// ErrUnreadableFormat indicates the input file could not be parsed.
var ErrUnreadableFormat = workbook.ErrUnreadableFormat

// ErrUnsupportedFileType indicates an upload with an extension that is not accepted.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrSizeLimitExceeded indicates an upload larger than the configured limit.
var ErrSizeLimitExceeded = errors.New("size limit exceeded")

// ErrProcessingFailure indicates the extraction run did not produce output.
var ErrProcessingFailure = errors.New("processing failed")

// ErrSheetNotFound indicates a dataset sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ExtractionError represents an error while extracting one dataset.
type ExtractionError struct {
	Dataset   string
	SheetName string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Dataset, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(dataset, sheetName string, err error) *ExtractionError {
	return &ExtractionError{
		Dataset:   dataset,
		SheetName: sheetName,
		Err:       err,
	}
}
