package pool

import "sync"

// BufferPool recycles byte slices so hot paths such as normalization do not allocate a
// fresh scratch buffer per call.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a pool whose buffers start with the given capacity.
func NewBufferPool(size int) *BufferPool {
	bp := &BufferPool{size: size}
	bp.pool.New = func() interface{} {
		buffer := make([]byte, 0, bp.size)
		return &buffer
	}
	return bp
}

// Get returns an empty buffer with at least minCap capacity.
func (bp *BufferPool) Get(minCap int) *[]byte {
	buffer := bp.pool.Get().(*[]byte)
	if cap(*buffer) < minCap {
		*buffer = make([]byte, 0, minCap)
	}
	*buffer = (*buffer)[:0]
	return buffer
}

// Put hands a buffer back. Buffers that grew past four times the pool size are dropped
// so a single huge document does not pin memory.
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > 4*bp.size && bp.size > 0 {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}
