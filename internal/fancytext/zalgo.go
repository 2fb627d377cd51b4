package fancytext

import (
	"math"
	"strings"
)

// Combining marks stacked above, through and below each character.
var (
	zalgoAbove = []rune{
		0x030d, 0x030e, 0x0304, 0x0305, 0x033f, 0x0311, 0x0306, 0x0310, 0x0352,
		0x0357, 0x0351, 0x0307, 0x0308, 0x030a, 0x0342, 0x0343, 0x0344, 0x034a,
		0x034b, 0x034c, 0x0303, 0x0302, 0x030c, 0x0350, 0x0300, 0x0301, 0x030b,
		0x030f, 0x0312, 0x0313, 0x0314, 0x033d, 0x0309, 0x0363, 0x0364, 0x0365,
		0x0366, 0x0367, 0x0368, 0x0369, 0x036a, 0x036b, 0x036c, 0x036d, 0x036e,
		0x036f, 0x033e, 0x035b,
	}
	zalgoBelow = []rune{
		0x0316, 0x0317, 0x0318, 0x0319, 0x031c, 0x031d, 0x031e, 0x031f, 0x0320,
		0x0324, 0x0325, 0x0326, 0x0329, 0x032a, 0x032b, 0x032c, 0x032d, 0x032e,
		0x032f, 0x0330, 0x0331, 0x0332, 0x0333, 0x0339, 0x033a, 0x033b, 0x033c,
		0x0345, 0x0347, 0x0348, 0x0349, 0x034d, 0x034e, 0x0353, 0x0354, 0x0355,
		0x0356, 0x0359, 0x035a,
	}
	zalgoMiddle = []rune{
		0x0315, 0x031b, 0x0340, 0x0341, 0x0358, 0x0321, 0x0322, 0x0327, 0x0328,
		0x0334, 0x0335, 0x0336, 0x034f,
	}
)

// seeded returns a value in [0, 1) that depends only on seed.
func seeded(seed int) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

func pick(marks []rune, seed int) rune {
	return marks[scaled(seed, len(marks))]
}

// scaled maps seeded(seed) onto [0, n).
func scaled(seed, n int) int {
	return min(int(seeded(seed)*float64(n)), n-1)
}

// Zalgo decorates every non-space character with one to three marks above,
// one or two through and one to three below. The same input always yields the
// same output.
func Zalgo(s string) string {
	var b strings.Builder
	for idx, r := range []rune(s) {
		b.WriteRune(r)
		if r == ' ' {
			continue
		}

		seed := int(r) + idx
		above := scaled(seed, 3) + 1
		for j := 0; j < above; j++ {
			b.WriteRune(pick(zalgoAbove, seed+j+100))
		}
		middle := scaled(seed+50, 2) + 1
		for j := 0; j < middle; j++ {
			b.WriteRune(pick(zalgoMiddle, seed+j+200))
		}
		below := scaled(seed+75, 3) + 1
		for j := 0; j < below; j++ {
			b.WriteRune(pick(zalgoBelow, seed+j+300))
		}
	}
	return b.String()
}
