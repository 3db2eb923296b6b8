package main

// closestIndex repositions a table cursor after the rows have been rebuilt.
// pids are the pid column of the new rows in display order, target is the
// pid that was under the cursor before the rebuild, and start is the row
// the cursor sits on now.
//
// An exact match anywhere in the table always wins. Otherwise the cursor
// hill-climbs from start: step one row toward the target (up when the
// current row's pid is greater, down otherwise) and stop at the first step
// that does not strictly shrink the absolute pid distance, returning the
// row before that step. The distance is a non-negative integer required to
// strictly decrease, so the walk terminates after at most len(pids) steps.
//
// The result is the locally closest pid relative to where the cursor was,
// not a global nearest-pid search. That is deliberate: the goal is "stay
// near where you were", and the cheap walk does exactly that when rows are
// ordered monotonically by pid.
func closestIndex(pids []int, target, start int) int {
	if len(pids) == 0 {
		return 0
	}
	if start < 0 {
		start = 0
	}
	if start >= len(pids) {
		start = len(pids) - 1
	}

	for i, pid := range pids {
		if pid == target {
			return i
		}
	}

	cur := start
	for {
		dist := absDiff(pids[cur], target)

		next := cur
		if pids[cur] > target {
			next--
		} else {
			next++
		}
		if next < 0 || next >= len(pids) {
			return cur
		}

		if absDiff(pids[next], target) >= dist {
			return cur
		}
		cur = next
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
