package match

import "fmt"

// SplitSides splits a combined two-sided sequence at its midpoint. The page
// renders the blue side's cards first, so the first half is blue.
//
// An odd-length sequence means an entry was lost or duplicated while parsing;
// it is reported as ErrParseInconsistent rather than truncated.
func SplitSides[T any](combined []T) (blue, red []T, err error) {
	if len(combined)%2 != 0 {
		return nil, nil, &Error{
			Kind:    KindParseInconsistent,
			Message: fmt.Sprintf("odd-length side list (%d entries)", len(combined)),
		}
	}
	mid := len(combined) / 2
	blue = append([]T(nil), combined[:mid]...)
	red = append([]T(nil), combined[mid:]...)
	return blue, red, nil
}
