package dreamdwell

// Close stops delivering catalog changes to this client's hooks. It is safe
// to call more than once.
func (c *client) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
