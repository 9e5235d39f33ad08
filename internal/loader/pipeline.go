// Package loader decodes images on one background goroutine and hands the
// result to the UI goroutine through a single shared slot.
package loader

import (
	"image"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"comix/internal/debug"
	"comix/internal/source"
)

// State is the lifecycle of the single in-flight slot.
type State int

const (
	Idle State = iota
	Requested
	Decoding
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requested:
		return "requested"
	case Decoding:
		return "decoding"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

type cacheEntry struct {
	img  image.Image
	info *source.Info
}

// Request names the image the UI wants next.
type Request struct {
	Index int
	Path  source.ImagePath
}

// Result announces that the slot holds the frame for Index.
type Result struct {
	Index int
	Path  source.ImagePath
	Err   error
}

// Pipeline owns the decode worker. Request, Poll, TryWith and Close are
// called from the UI goroutine.
type Pipeline struct {
	decoder source.Decoder
	cache   *lru.Cache[string, cacheEntry]

	mu        sync.Mutex
	cond      *sync.Cond
	pending   Request
	seq       uint64
	requested bool
	decoding  bool
	stopped   bool

	slotMu sync.Mutex
	frame  *Frame

	ready     chan Result
	done      chan struct{}
	closeOnce sync.Once
}

// New starts the worker. cacheSize is the number of decoded images kept
// around; zero disables the cache.
func New(decoder source.Decoder, cacheSize int) *Pipeline {
	p := &Pipeline{
		decoder: decoder,
		ready:   make(chan Result, 1),
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)

	if cacheSize > 0 {
		cache, err := lru.New[string, cacheEntry](cacheSize)
		if err != nil {
			log.Printf("Error: Failed to create LRU cache: %v", err)
		} else {
			p.cache = cache
		}
	}

	go p.run()
	return p
}

// Request replaces any pending request and wakes the worker. A request that
// arrives while a decode is running is picked up when it finishes.
func (p *Pipeline) Request(index int, path source.ImagePath) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.pending = Request{Index: index, Path: path}
	p.seq++
	p.requested = true
	p.mu.Unlock()

	debug.Log(debug.LOAD, "request [%d] %s", index+1, path.Path)
	p.cond.Signal()
}

// Ready delivers at most one unconsumed result.
func (p *Pipeline) Ready() <-chan Result {
	return p.ready
}

// Poll returns the pending result without blocking.
func (p *Pipeline) Poll() (Result, bool) {
	select {
	case res := <-p.ready:
		return res, true
	default:
		return Result{}, false
	}
}

// State reports where the slot is in its lifecycle.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.decoding:
		return Decoding
	case p.requested:
		return Requested
	case len(p.ready) > 0:
		return Ready
	default:
		return Idle
	}
}

// TryWith runs fn on the current frame if the slot is not being written.
// It never blocks; false means a decode holds the slot or nothing has been
// loaded yet.
func (p *Pipeline) TryWith(fn func(f *Frame)) bool {
	if !p.slotMu.TryLock() {
		return false
	}
	defer p.slotMu.Unlock()
	if p.frame == nil {
		return false
	}
	fn(p.frame)
	return true
}

// Close stops the worker and waits for it. A decode in progress runs to
// completion first.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()
		p.cond.Broadcast()
		<-p.done
		debug.Log(debug.LOAD, "worker stopped")
	})
}

func (p *Pipeline) run() {
	defer close(p.done)

	for {
		p.mu.Lock()
		for !p.requested && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.mu.Unlock()
			return
		}
		req, seq := p.pending, p.seq
		p.requested = false
		p.decoding = true
		p.mu.Unlock()

		p.slotMu.Lock()
		frame := p.load(req)
		p.frame = frame
		p.slotMu.Unlock()

		p.mu.Lock()
		p.decoding = false
		if p.seq != seq {
			// A newer request is already pending; the loop picks it up.
			p.mu.Unlock()
			debug.Log(debug.LOAD, "[%d] superseded, not announced", req.Index+1)
			continue
		}
		p.publish(Result{Index: req.Index, Path: req.Path, Err: frame.Err})
		p.mu.Unlock()
	}
}

// publish must be called with mu held.
func (p *Pipeline) publish(res Result) {
	select {
	case <-p.ready:
	default:
	}
	select {
	case p.ready <- res:
	default:
	}
}

func (p *Pipeline) load(req Request) *Frame {
	key := req.Path.Path
	if p.cache != nil {
		if e, ok := p.cache.Get(key); ok {
			debug.Log(debug.LOAD, "Cache HIT: %s (cache: %d items)", key, p.cache.Len())
			return newFrame(req, e.img, e.info, nil)
		}
	}

	img, err := p.decoder.Decode(req.Path)
	if err != nil {
		log.Printf("Error: Failed to load image [%d] %s: %v", req.Index+1, key, err)
		return newFrame(req, Placeholder(PlaceholderWidth, PlaceholderHeight, req.Path.Name(), err.Error()), nil, err)
	}
	info := p.readInfo(req.Path)

	if p.cache != nil {
		p.cache.Add(key, cacheEntry{img: img, info: info})
		debug.Log(debug.LOAD, "Cache MISS: %s, decoded and cached (cache: %d items)", key, p.cache.Len())
	}
	return newFrame(req, img, info, nil)
}

// readInfo collects metadata for the info overlay so the UI never touches
// the file itself.
func (p *Pipeline) readInfo(path source.ImagePath) *source.Info {
	r, ok := p.decoder.(source.InfoReader)
	if !ok {
		return nil
	}
	info, err := r.ReadInfo(path)
	if err != nil {
		log.Printf("Warning: Failed to read info for %s: %v", path.Path, err)
		return nil
	}
	return info
}
