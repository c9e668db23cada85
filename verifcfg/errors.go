package verifcfg

import "errors"

// ERROR PRIORITY: slot out of range -> cell out of range.
var (
	// ErrSlotOutOfRange indicates a pc/arg/state slot index outside [0,3).
	ErrSlotOutOfRange = errors.New("verifcfg: slot out of range")

	// ErrCellOutOfRange indicates an auxiliary register access outside the
	// owning shape's cell range.
	ErrCellOutOfRange = errors.New("verifcfg: cell out of range")
)
