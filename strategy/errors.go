package strategy

import "github.com/arloliu/seatplan/types"

// ErrUnsupportedAlgorithm indicates an algorithm outside the closed set.
var ErrUnsupportedAlgorithm = types.ErrUnsupportedAlgorithm
