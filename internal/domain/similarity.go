package domain

// FuzzyMatchThreshold is the largest edit distance at which a title still
// counts as a fuzzy search match. It is not normalised by title length.
const FuzzyMatchThreshold = 3

// EditDistance returns the Levenshtein distance between a and b, counting
// single-rune insertions, deletions and substitutions.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	dp := make([][]int, len(ra)+1)
	for i := range dp {
		dp[i] = make([]int, len(rb)+1)
		dp[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		dp[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = 1 + min(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
		}
	}
	return dp[len(ra)][len(rb)]
}
