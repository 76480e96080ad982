package match_waitlist

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("match_waitlist: internal error")
)
