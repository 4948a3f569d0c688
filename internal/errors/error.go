package errors

import "errors"

var (
	ErrViewerNotFound    = errors.New("viewer was not found")
	ErrOccupied          = errors.New("intersection is occupied")
	ErrOutOfRange        = errors.New("coordinate is outside the board")
	ErrMissingCoordinate = errors.New("move needs both x and y")
	ErrSuicide           = errors.New("move leaves its own group without liberties")
	ErrKo                = errors.New("move repeats an earlier position")
	ErrRecordNotFound    = errors.New("record was not found")
	ErrEmptyRecord       = errors.New("record has no moves")
	ErrNoAnalysis        = errors.New("no analysis for this position")
	ErrInvalidRegion     = errors.New("invalid region")
	ErrNoArchive         = errors.New("match archive is not configured")
	ErrInternal          = errors.New("internal error")
)
