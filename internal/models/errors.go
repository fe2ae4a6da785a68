package models

import "errors"

var (
	// ErrIO reports that a CSV file could not be opened, read or written.
	ErrIO = errors.New("csv file i/o failed")

	// ErrUserCancelled reports that a file or settings dialog was dismissed.
	ErrUserCancelled = errors.New("cancelled by user")
)
