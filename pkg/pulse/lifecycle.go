package pulse

// LifecycleBlock is a manually loadable/unloadable unit with its own
// cancellation scope. It has no interaction with the tracker or scheduler;
// it exists to scope resources whose lifetime follows load/unload cycles,
// with signal subscriptions made inside the body tied to the block's token.
type LifecycleBlock struct {
	fn      func(*CancelToken) Cleanup
	token   *CancelToken
	cleanup Cleanup
}

// blockOptions configures a LifecycleBlock.
type blockOptions struct {
	lazy bool
}

// BlockOption configures a LifecycleBlock.
type BlockOption func(*blockOptions)

// Lazy defers the block's first run until Load is called.
func Lazy() BlockOption {
	return func(o *blockOptions) {
		o.lazy = true
	}
}

// NewLifecycleBlock creates a block around fn. Unless Lazy is given, fn runs
// immediately with a fresh cancellation token; its return value is stored as
// the block's cleanup.
func NewLifecycleBlock(fn func(*CancelToken) Cleanup, opts ...BlockOption) *LifecycleBlock {
	var o blockOptions
	for _, opt := range opts {
		opt(&o)
	}

	b := &LifecycleBlock{fn: fn}
	if !o.lazy {
		b.Load()
	}
	return b
}

// Load runs the block: any previous run is unloaded first, then fn is
// invoked with a fresh token and its return value stored as the new cleanup.
func (b *LifecycleBlock) Load() {
	b.Unload()
	b.token = NewCancelToken()
	b.cleanup = b.fn(b.token)
}

// Unload invokes the stored cleanup, if any, then fires the block's token.
// Idempotent: unloading a never-loaded or already-unloaded block is a no-op.
func (b *LifecycleBlock) Unload() {
	if b.cleanup != nil {
		cleanup := b.cleanup
		b.cleanup = nil
		cleanup()
	}
	if b.token != nil {
		b.token.Fire()
	}
}
