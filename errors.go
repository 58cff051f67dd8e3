package lingua

import "errors"

var (
	ErrEmptyLocale     = errors.New("lingua: locale cannot be empty")
	ErrEmptyGroup      = errors.New("lingua: group name cannot be empty")
	ErrNilFetcher      = errors.New("lingua: fetcher is not provided")
	ErrNilGroupCache   = errors.New("lingua: group cache cannot be nil")
	ErrNilLogger       = errors.New("lingua: logger cannot be nil")
	ErrInvalidSnapshot = errors.New("lingua: invalid snapshot payload")
	ErrInvalidFile     = errors.New("lingua: invalid translation file")
	ErrWatchClosed     = errors.New("lingua: watch is closed")
)
