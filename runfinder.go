package main

// Window is the half-open range [Start, End) of a read kept after trimming.
type Window struct {
	Start int
	End   int
}

func (w Window) Len() int {
	return w.End - w.Start
}

// FindRun returns the leftmost run of passing bases at least minLen long.
// The window grows right while bases keep passing but never past maxLen.
// Only the first qualifying run is reported, not the longest one.
func FindRun(trace Trace, minLen, maxLen int) (Window, bool) {
	if minLen > maxLen || maxLen <= 0 {
		return Window{}, false
	}
	start, length := 0, 0
	for i, pass := range trace {
		if !pass {
			if length >= minLen {
				break
			}
			length = 0
			continue
		}
		if length == 0 {
			start = i
		}
		length++
		if length == maxLen {
			break
		}
	}
	if length < minLen {
		return Window{}, false
	}
	return Window{Start: start, End: start + length}, true
}
