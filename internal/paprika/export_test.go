package paprika

// Exported for testing.
var WithClock = withClock
