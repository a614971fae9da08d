package sanitize

import "regexp"

var (
	dollarTextPattern = regexp.MustCompile(`\$\\text\{([^}]*)\}\$`)
	bareTextPattern   = regexp.MustCompile(`\\text\{([^}]*)\}`)
	inlineMathPattern = regexp.MustCompile(`\$([^$]*)\$`)
)

// CleanLatex strips the inline LaTeX wrappers the model tends to emit around
// plain words: $\text{...}$, \text{...} and $...$, in that order.
//
// The passes repeat until nothing changes so the result is a fixed point and
// CleanLatex(CleanLatex(s)) == CleanLatex(s) for every input.
func CleanLatex(text string) string {
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(text string) string {
	text = dollarTextPattern.ReplaceAllString(text, "$1")
	text = bareTextPattern.ReplaceAllString(text, "$1")
	return inlineMathPattern.ReplaceAllString(text, "$1")
}
