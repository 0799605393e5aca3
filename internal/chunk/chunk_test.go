package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlan_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		text string
		size int
		want int // expected chunk count, ceil(len/size) in runes
	}{
		{"empty", "", 500, 0},
		{"shorter than window", "hello world", 500, 1},
		{"exact multiple", strings.Repeat("a", 1000), 500, 2},
		{"ragged tail", strings.Repeat("a", 1001), 500, 3},
		{"tiny windows", "abcdefg", 3, 3},
		{"multibyte runes", strings.Repeat("ä", 7), 3, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chunks := Plan(c.text, Options{Size: c.size})
			require.Len(t, chunks, c.want)
			var sb strings.Builder
			for _, ch := range chunks {
				sb.WriteString(ch.Text)
			}
			// Concatenating the chunks must reconstruct the input exactly.
			require.Equal(t, c.text, sb.String())
			for i, ch := range chunks[:max(0, len(chunks)-1)] {
				require.Equal(t, c.size, len([]rune(ch.Text)), "chunk %d should be full-size", i)
			}
		})
	}
}

func TestPlan_Budgets(t *testing.T) {
	// 10 words: max = min(120, floor(10*0.6)) = 6, min = min(30, floor(10*0.3)) = 3
	text := strings.TrimSpace(strings.Repeat("word ", 10))
	chunks := Plan(text, DefaultOptions())
	require.Len(t, chunks, 1)
	require.Equal(t, 10, chunks[0].WordCount)
	require.Equal(t, 6, chunks[0].MaxLen)
	require.Equal(t, 3, chunks[0].MinLen)
}

func TestPlan_BudgetCaps(t *testing.T) {
	// 300 words comfortably exceed both caps.
	text := strings.TrimSpace(strings.Repeat("w ", 300))
	chunks := Plan(text, Options{Size: len(text)})
	require.Len(t, chunks, 1)
	require.Equal(t, 120, chunks[0].MaxLen)
	require.Equal(t, 30, chunks[0].MinLen)
}

func TestPlan_WhitespaceOnlyChunkHasZeroBudgets(t *testing.T) {
	chunks := Plan("   \t  \n ", Options{Size: 500})
	require.Len(t, chunks, 1)
	require.Equal(t, 0, chunks[0].WordCount)
	require.Equal(t, 0, chunks[0].MaxLen)
	require.Equal(t, 0, chunks[0].MinLen)
}

func TestPlan_BudgetsTruncate(t *testing.T) {
	// 9 words: floor(9*0.6)=5, floor(9*0.3)=2. Truncation, not rounding.
	text := strings.TrimSpace(strings.Repeat("word ", 9))
	chunks := Plan(text, DefaultOptions())
	require.Len(t, chunks, 1)
	require.Equal(t, 5, chunks[0].MaxLen)
	require.Equal(t, 2, chunks[0].MinLen)
}
