package service

import "github.com/mertkozcan/gridlock-server/internal/domain"

// WinResult reports the outcome of a win scan.
type WinResult struct {
	Won      bool           `json:"won"`
	Type     domain.WinType `json:"type,omitempty"`
	Index    int            `json:"index"`
	WinnerID uint           `json:"winner_id,omitempty"`
}

// EvaluateWin scans the current completion state for a finished game. It is a
// pure function of its inputs and is invoked after every successful cell
// completion.
//
// BLACKOUT: a user wins when their completion count reaches size*size. Counts
// accumulate in completion order, so with concurrent near-blackouts the user
// whose completion appears first in the slice is reported.
//
// Any other mode is a line race, scanned in fixed precedence: rows in
// ascending index order, then columns, then the main diagonal (index 0), then
// the anti-diagonal (index 1). A line is won when it holds exactly size
// completions all sharing one user. The first satisfying line wins even if
// several completed simultaneously.
func EvaluateWin(mode domain.GameMode, size int, completions []domain.CompletionCell) WinResult {
	if size <= 0 {
		return WinResult{}
	}

	if mode == domain.ModeBlackout {
		target := size * size
		counts := make(map[uint]int, 4)
		for _, c := range completions {
			counts[c.UserID]++
			if counts[c.UserID] == target {
				return WinResult{Won: true, Type: domain.WinBlackout, WinnerID: c.UserID}
			}
		}
		return WinResult{}
	}

	for r := 0; r < size; r++ {
		if winner, ok := lineWinner(completions, size, func(c domain.CompletionCell) bool {
			return c.RowIndex == r
		}); ok {
			return WinResult{Won: true, Type: domain.WinRow, Index: r, WinnerID: winner}
		}
	}
	for col := 0; col < size; col++ {
		if winner, ok := lineWinner(completions, size, func(c domain.CompletionCell) bool {
			return c.ColIndex == col
		}); ok {
			return WinResult{Won: true, Type: domain.WinColumn, Index: col, WinnerID: winner}
		}
	}
	if winner, ok := lineWinner(completions, size, func(c domain.CompletionCell) bool {
		return c.RowIndex == c.ColIndex
	}); ok {
		return WinResult{Won: true, Type: domain.WinDiagonal, Index: 0, WinnerID: winner}
	}
	if winner, ok := lineWinner(completions, size, func(c domain.CompletionCell) bool {
		return c.RowIndex+c.ColIndex == size-1
	}); ok {
		return WinResult{Won: true, Type: domain.WinDiagonal, Index: 1, WinnerID: winner}
	}
	return WinResult{}
}

// lineWinner reports the owner of a completed line: exactly size completions
// matching the predicate, all by the same user.
func lineWinner(completions []domain.CompletionCell, size int, match func(domain.CompletionCell) bool) (uint, bool) {
	var winner uint
	count := 0
	for _, c := range completions {
		if !match(c) {
			continue
		}
		if count == 0 {
			winner = c.UserID
		} else if c.UserID != winner {
			return 0, false
		}
		count++
		if count > size {
			return 0, false
		}
	}
	return winner, count == size
}
