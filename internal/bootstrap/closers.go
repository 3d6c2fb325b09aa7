package bootstrap

// Closers collects the cleanup of opened connections. Close runs them in reverse order.
type Closers struct {
	funcs []func()
}

// Add registers fn to be run by Close.
func (c *Closers) Add(fn func()) {
	c.funcs = append(c.funcs, fn)
}

// Close runs all registered functions, the last added first, and forgets them.
func (c *Closers) Close() {
	for i := len(c.funcs) - 1; i >= 0; i-- {
		c.funcs[i]()
	}

	c.funcs = nil
}
