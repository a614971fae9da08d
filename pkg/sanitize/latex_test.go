package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLatex(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"dollar text and inline math": {`$\text{hi}$ $x$`, "hi x"},
		"bare text":                   {`The \text{Rambam} says`, "The Rambam says"},
		"inline math":                 {`a $b + c$ d`, "a b + c d"},
		"plain markdown untouched":    {"## Header\n- **bold** item", "## Header\n- **bold** item"},
		"hebrew untouched":            {"> שמע ישראל", "> שמע ישראל"},
		"single dollar kept":          {"costs $5 today", "costs $5 today"},
		"empty":                       {"", ""},
		"multiple wrappers":           {`$\text{one}$, $\text{two}$ and \text{three}`, "one, two and three"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanLatex(tc.in))
		})
	}
}

func TestCleanLatex_DollarTextBeforeInlineMath(t *testing.T) {
	assert.Equal(t, "a$b", CleanLatex(`$\text{a$b}$`))
}

func TestCleanLatex_Idempotent(t *testing.T) {
	inputs := []string{
		`$\text{hi}$ $x$`,
		`\te$$xt{nested}`,
		`\text{\text{a}}`,
		`$$$`,
		`$a$ $b`,
		"no markup here",
		`${}$ \text{} $\text{}$`,
	}

	for _, in := range inputs {
		once := CleanLatex(in)
		assert.Equal(t, once, CleanLatex(once), "input %q", in)
	}
}
