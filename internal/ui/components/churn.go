package components

import (
	"fmt"
	"strings"
)

var sparkBars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as unicode bars, averaging them down to width
// when there are more values than columns. width <= 0 means no limit.
func Sparkline(values []int, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width > 0 && len(values) > width {
		values = downsample(values, width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var sb strings.Builder
	for _, v := range values {
		idx := len(sparkBars) / 2
		if hi > lo {
			idx = (v - lo) * (len(sparkBars) - 1) / (hi - lo)
		}
		sb.WriteRune(sparkBars[idx])
	}
	return sb.String()
}

func downsample(values []int, width int) []int {
	out := make([]int, width)
	bucket := float64(len(values)) / float64(width)
	for i := range out {
		start := int(float64(i) * bucket)
		end := min(int(float64(i+1)*bucket), len(values))
		if end <= start {
			continue
		}
		sum := 0
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / (end - start)
	}
	return out
}

// ChurnBar renders insertions and deletions as a green/red bar of at most
// width cells, scaled against scale (the largest churn on screen).
func ChurnBar(insertions, deletions, scale, width int) string {
	total := insertions + deletions
	if total == 0 || scale <= 0 || width <= 0 {
		return ""
	}

	cells := total * width / scale
	if cells == 0 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	plus := insertions * cells / total
	minus := cells - plus

	return fmt.Sprintf("[green]%s[red]%s[-]",
		strings.Repeat("■", plus), strings.Repeat("■", minus))
}

// Truncate shortens s to n runes with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
