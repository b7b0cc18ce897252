package inventory

import (
	"context"
	"fmt"
	"strconv"
)

// serialWidth is the zero-padding convention for serial numbers.
const serialWidth = 4

// MaxBulkInward caps how many boards a single range inward may create.
const MaxBulkInward = 100

func formatSerial(n int) string {
	return fmt.Sprintf("%0*d", serialWidth, n)
}

// NextSerial computes the next serial number for a category: the
// numeric maximum of existing serials plus one, zero-padded to four
// digits. Serials that do not parse as integers are ignored. A category
// with no boards starts at "0001".
func (s *Service) NextSerial(ctx context.Context, categoryID string) (string, error) {
	boards, err := s.store.BoardsByCategory(ctx, categoryID)
	if err != nil {
		return "", fmt.Errorf("listing category boards: %w", err)
	}

	max := 0
	for _, b := range boards {
		n, err := strconv.Atoi(b.SerialNumber)
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return formatSerial(max + 1), nil
}

// ValidateSerialRange checks a bulk inward range [start, end]. It fails
// with ErrInvalidRange when end < start and with DuplicateSerialError
// for the first serial in the zero-padded range that already exists in
// the category. The MaxBulkInward cap is enforced here, before the
// duplicate scan, so an oversized range is rejected without iterating
// it.
func (s *Service) ValidateSerialRange(ctx context.Context, categoryID, startSerial, endSerial string) error {
	start, err := strconv.Atoi(startSerial)
	if err != nil {
		return fmt.Errorf("%w: start serial %q is not numeric", ErrValidation, startSerial)
	}
	end, err := strconv.Atoi(endSerial)
	if err != nil {
		return fmt.Errorf("%w: end serial %q is not numeric", ErrValidation, endSerial)
	}
	if end < start {
		return ErrInvalidRange
	}
	if end-start+1 > MaxBulkInward {
		return fmt.Errorf("%w: cannot add more than %d boards at once", ErrValidation, MaxBulkInward)
	}

	boards, err := s.store.BoardsByCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("listing category boards: %w", err)
	}
	existing := make(map[string]struct{}, len(boards))
	for _, b := range boards {
		existing[b.SerialNumber] = struct{}{}
	}

	for n := start; n <= end; n++ {
		serial := formatSerial(n)
		if _, ok := existing[serial]; ok {
			return &DuplicateSerialError{CategoryID: categoryID, SerialNumber: serial}
		}
	}
	return nil
}
