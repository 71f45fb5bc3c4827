package dataset

import "errors"

// ErrInvalidDataset is returned when a dataset fails validation in strict mode.
var ErrInvalidDataset = errors.New("invalid dataset")
