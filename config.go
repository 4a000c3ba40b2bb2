package multisig

// Config holds the different parameters used to configure a Multisig.
type Config struct {
	// Logger is where the Multisig reports each signature position that fails
	// verification, at debug level. If not specified, DefaultLogger is used.
	Logger Logger

	// NewBitSet returns an empty bitset of the given length. It is used to
	// record the validated positions of a verification. If not specified,
	// DefaultBitSet is used.
	NewBitSet func(bitlength int) BitSet
}

// DefaultConfig returns a default configuration for a Multisig.
func DefaultConfig() *Config {
	return &Config{
		Logger:    DefaultLogger,
		NewBitSet: DefaultBitSet,
	}
}

// DefaultBitSet returns the default implementation used by a Multisig, i.e.
// the WilffBitSet
var DefaultBitSet = func(bitlength int) BitSet { return NewWilffBitset(bitlength) }

func mergeWithDefault(c *Config) *Config {
	c2 := *c
	if c.Logger == nil {
		c2.Logger = DefaultLogger
	}
	if c.NewBitSet == nil {
		c2.NewBitSet = DefaultBitSet
	}
	return &c2
}
