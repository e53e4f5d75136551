package transformer

import (
	"fmt"
	"math/rand"
	"strconv"
)

/*
Dead Code Injection Overview:
-----------------------------
A single inert statement is prepended to the buffer. The statement comes from
a fixed catalog; snippets that declare names take a suffix from the run's
counter so they never collide with each other:

  var _0 = 0.52 + 0.11;
  if (1 > 2) { console.log('dead code'); }
  for (var _i1 = 0; _i1 < 0; _i1++) {}
  var _temp2 = function() { return false; };

Exactly one snippet is injected per Apply, whatever the size of the source.
*/

// Counter hands out the unique suffixes of injected names for one run.
type Counter struct {
	next int
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() int {
	n := c.next
	c.next++
	return n
}

// deadCodeTemplate renders one inert snippet.
type deadCodeTemplate func(counter *Counter, random *rand.Rand) string

var deadCodeTemplates = []deadCodeTemplate{
	// No-op arithmetic assignment
	func(counter *Counter, random *rand.Rand) string {
		return fmt.Sprintf("var _%d = %s + %s;", counter.Next(), formatFloat(random.Float64()), formatFloat(random.Float64()))
	},
	// Unreachable branch
	func(_ *Counter, _ *rand.Rand) string {
		return "if (1 > 2) { console.log('dead code'); }"
	},
	// Loop whose condition never holds
	func(counter *Counter, _ *rand.Rand) string {
		n := counter.Next()
		return fmt.Sprintf("for (var _i%d = 0; _i%d < 0; _i%d++) {}", n, n, n)
	},
	// Unused function expression
	func(counter *Counter, _ *rand.Rand) string {
		return fmt.Sprintf("var _temp%d = function() { return false; };", counter.Next())
	},
}

// DeadCodeInjector prepends one randomly chosen inert snippet.
type DeadCodeInjector struct {
	counter *Counter
	random  *rand.Rand
}

// NewDeadCodeInjector creates an injector drawing suffixes from counter.
func NewDeadCodeInjector(counter *Counter, random *rand.Rand) *DeadCodeInjector {
	return &DeadCodeInjector{
		counter: counter,
		random:  random,
	}
}

// Name implements Pass.
func (d *DeadCodeInjector) Name() string { return PassInjectDeadCode }

// Apply implements Pass.
func (d *DeadCodeInjector) Apply(src string) string {
	template := deadCodeTemplates[d.random.Intn(len(deadCodeTemplates))]
	return template(d.counter, d.random) + "\n" + src
}

// formatFloat prints f the shortest way that round-trips, which is also a
// valid JavaScript numeric literal.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
