package text

import (
	"sync"

	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/cache"
)

// Shaper shapes text with go-text/typesetting's HarfBuzz implementation.
//
// Shaper is safe for concurrent use. HarfbuzzShaper instances are not, so
// they are pooled and each Shape call takes its own.
type Shaper struct {
	pool  sync.Pool
	lines *cache.Sharded[lineKey, []shaping.Output]

	// Language is passed to the shaper for language-specific features.
	Language language.Language

	// RTL makes right-to-left the paragraph direction.
	RTL bool
}

// NewShaper creates a shaper for English left-to-right paragraphs.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		Language: language.NewLanguage("en"),
	}
}

// lineKey identifies one shaped line.
type lineKey struct {
	font     drawing.FontID
	size     fixed.Int26_6
	rtl      bool
	language language.Language
	text     string
}

func hashLineKey(k lineKey) uint64 {
	return cache.StringHasher(k.text) ^ uint64(k.font)<<32 ^ uint64(uint32(k.size))
}

// NewCachedShaper creates a shaper like NewShaper that also remembers the
// outputs of recently shaped lines, at most perShard lines in each of
// cache.DefaultShardCount shards. Cached outputs are shared between
// callers and must not be modified.
func NewCachedShaper(perShard int) *Shaper {
	sh := NewShaper()
	sh.lines = cache.NewSharded[lineKey, []shaping.Output](perShard, hashLineKey)
	return sh
}

// CacheStats returns the statistics of the line cache. It is zero for
// shapers created by NewShaper.
func (sh *Shaper) CacheStats() cache.Stats {
	if sh.lines == nil {
		return cache.Stats{}
	}
	return sh.lines.Stats()
}

// Shape shapes s with face at size and returns one output per segment, in
// visual order.
func (sh *Shaper) Shape(face *Face, s string, size fixed.Int26_6) []shaping.Output {
	if s == "" || face == nil {
		return nil
	}
	if sh.lines == nil {
		return sh.shape(face, s, size)
	}
	key := lineKey{font: face.ID(), size: size, rtl: sh.RTL, language: sh.Language, text: s}
	outputs, _ := sh.lines.GetOrCreate(key, func() ([]shaping.Output, error) {
		return sh.shape(face, s, size), nil
	})
	return outputs
}

func (sh *Shaper) shape(face *Face, s string, size fixed.Int26_6) []shaping.Output {
	runes := []rune(s)
	segments := Segments(runes, sh.RTL)

	hb := sh.pool.Get().(*shaping.HarfbuzzShaper)
	defer sh.pool.Put(hb)

	shapingFace := face.newShapingFace()
	outputs := make([]shaping.Output, 0, len(segments))
	for _, i := range visualOrder(segments) {
		seg := segments[i]
		outputs = append(outputs, hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  seg.Start,
			RunEnd:    seg.End,
			Direction: seg.Direction,
			Face:      shapingFace,
			Size:      size,
			Script:    seg.Script,
			Language:  sh.Language,
		}))
	}
	return outputs
}
