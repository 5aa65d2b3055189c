package analyzer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"MarketPhase/internal/model"
)

// ErrInsufficientData is matched by every *InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError lists the indicators whose lookback exceeded the candle batch.
type InsufficientDataError struct {
	Missing []model.IndicatorKind
	Have    int
	Need    int
}

func (e *InsufficientDataError) Error() string {
	names := make([]string, len(e.Missing))
	for i, k := range e.Missing {
		names[i] = k.String()
	}
	return fmt.Sprintf("insufficient data: have %d candles, need %d (missing %s)",
		e.Have, e.Need, strings.Join(names, ", "))
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
