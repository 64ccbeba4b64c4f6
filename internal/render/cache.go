package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererPool hands out glamour renderers per Options value. A TermRenderer
// must not run two Render calls at once, so callers borrow one and give it back.
type rendererPool struct {
	mu    sync.Mutex
	pools map[Options]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[Options]*sync.Pool),
}

func (p *rendererPool) poolFor(opts Options) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	pool, ok := p.pools[opts]
	if !ok {
		pool = &sync.Pool{
			New: func() any {
				renderer, err := createRenderer(opts)
				if err != nil {
					return nil
				}
				return renderer
			},
		}
		p.pools[opts] = pool
	}
	return pool
}

// get borrows a renderer; a failed pool constructor is retried directly so the
// caller sees the error
func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if renderer, ok := p.poolFor(opts).Get().(*glamour.TermRenderer); ok && renderer != nil {
		return renderer, nil
	}
	return createRenderer(opts)
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer != nil {
		p.poolFor(opts).Put(renderer)
	}
}

// createRenderer builds a TermRenderer for opts. Styles defined in this package
// are passed as configs; anything else is a glamour style name or JSON path.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	var style glamour.TermRendererOption
	if cfg, ok := builtinStyle(opts.Style); ok {
		style = glamour.WithStyles(cfg)
	} else {
		style = glamour.WithStylePath(opts.Style)
	}

	rendererOpts := []glamour.TermRendererOption{
		style,
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every pooled renderer
func ClearCache() {
	globalPool.mu.Lock()
	globalPool.pools = make(map[Options]*sync.Pool)
	globalPool.mu.Unlock()
}

// CacheSize returns how many distinct option sets have a pool
func CacheSize() int {
	globalPool.mu.Lock()
	defer globalPool.mu.Unlock()
	return len(globalPool.pools)
}
