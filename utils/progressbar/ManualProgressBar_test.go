package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManualProgressBar(t *testing.T) {
	var out bytes.Buffer
	p := NewManualProgressBar(&out, 10, 4)

	require.Equal(t, 0.0, p.Progress())
	p.Increment()
	p.Increment()
	require.Equal(t, 0.5, p.Progress())
	require.Contains(t, p.String(), "50.00%")
	require.Equal(t, 5, strings.Count(p.String(), "█"))

	// Progress saturates at the maximum
	for i := 0; i < 10; i++ {
		p.Increment()
	}
	require.Equal(t, 1.0, p.Progress())

	p.Display()
	p.Close()
	require.Contains(t, out.String(), "100.00%")
	require.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestManualProgressBarWidth(t *testing.T) {
	p := NewManualProgressBar(&bytes.Buffer{}, 10, 3)

	// 1/3 and 2/3 of the width are fractional and round up
	for _, filled := range []int{0, 4, 7, 10} {
		bar := p.String()
		inner := bar[1 : strings.Index(bar[1:], "|")+1]
		require.Equal(t, filled, strings.Count(inner, "█"), bar)
		require.Equal(t, 10, len([]rune(inner)), bar)
		p.Increment()
	}
}
