package leave

import "errors"

var (
	ErrInsufficientQuota = errors.New("insufficient leave quota")
)
