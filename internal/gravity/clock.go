package gravity

// Token identifies one generation of scheduled ticks.
type Token uint64

// Clock tracks the live tick generation for message-based loops. Each
// Restart invalidates every token issued before it. The zero value is
// stopped.
type Clock struct {
	gen     Token
	running bool
}

// Restart starts a new generation and returns its token. Ticks carrying an
// older token are stale.
func (c *Clock) Restart() Token {
	c.gen++
	c.running = true
	return c.gen
}

// Stop invalidates all outstanding tokens.
func (c *Clock) Stop() {
	c.gen++
	c.running = false
}

// Valid reports whether a tick carrying tok should be processed.
func (c *Clock) Valid(tok Token) bool {
	return c.running && tok == c.gen
}

// Running reports whether a generation is live.
func (c *Clock) Running() bool {
	return c.running
}

// Current returns the live token. It is meaningless while stopped.
func (c *Clock) Current() Token {
	return c.gen
}
