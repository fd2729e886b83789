package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrNoFiles              = errors.New("no files provided")
	ErrTooManyFiles         = errors.New("too many files")
	ErrFileUnreadable       = errors.New("file could not be read")
	ErrFileIndexOutOfRange  = errors.New("file index out of range")
	ErrFileCleared          = errors.New("file has been cleared from the pipeline")
	ErrFileNotCompleted     = errors.New("file extraction has not completed")
	ErrTerminalStatus       = errors.New("file status is terminal")
	ErrInvalidStatus        = errors.New("invalid file status")
	ErrSessionNotFound      = errors.New("import session not found")
	ErrBatchNotFound        = errors.New("batch not found")
	ErrRowNotFound          = errors.New("row not found")
	ErrInvalidField         = errors.New("unknown transaction field")
	ErrNothingToImport      = errors.New("no valid rows to import")
	ErrImportFailed         = errors.New("import to portfolio service failed")
	ErrImportInProgress     = errors.New("import already in progress")
	ErrUpstreamUnauthorized = errors.New("portfolio service rejected credentials")
	ErrUpstreamUnavailable  = errors.New("portfolio service unavailable")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
	ErrEmptySelection       = errors.New("no transaction ids provided")
	ErrInvalidBody          = errors.New("invalid request body")
)
