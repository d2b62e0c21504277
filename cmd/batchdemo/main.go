// Command batchdemo records animated frames into a drawing on the in-memory
// backend and reports how much GPU traffic each frame caused.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/backend/memory"
	"github.com/gogpu/drawing/text"
)

func main() {
	var (
		width   = flag.Uint("width", 800, "viewport width")
		height  = flag.Uint("height", 600, "viewport height")
		frames  = flag.Int("frames", 10, "number of frames to record")
		cells   = flag.Int("cells", 16, "grid cells per row")
		label   = flag.String("text", "Hello, batched world!", "text drawn on every frame")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	drawing.SetLogger(logger)

	if err := run(logger, config{
		size:   drawing.Size{Width: uint32(*width), Height: uint32(*height)},
		frames: *frames,
		cells:  *cells,
		label:  *label,
	}); err != nil {
		logger.Error("batchdemo failed", "err", err)
		os.Exit(1)
	}
}

type config struct {
	size   drawing.Size
	frames int
	cells  int
	label  string
}

func run(logger *slog.Logger, cfg config) error {
	if cfg.cells <= 0 || cfg.size.Width < 100 || cfg.size.Height < 100 {
		return fmt.Errorf("need a viewport of at least 100x100 and one cell, got %dx%d and %d",
			cfg.size.Width, cfg.size.Height, cfg.cells)
	}

	device := memory.NewDevice()
	ids := drawing.NewIDAllocator()
	face, err := text.LoadFace(ids, goregular.TTF)
	if err != nil {
		return err
	}
	atlas := newShelfAtlas(ids, 1024)
	layout := text.NewLayout(face, atlas, text.DefaultCacheSize)
	shaper := text.NewCachedShaper(64)

	d := drawing.NewDrawing()
	defer d.Destroy()
	g := drawing.NewGraphics(device, cfg.size)
	pass := memory.NewPass()
	rg := drawing.NewRenderingGraphics(pass, cfg.size, 1)

	for frame := range cfg.frames {
		r, err := d.NewFrame(g)
		if err != nil {
			return err
		}
		drawGrid(r, cfg, frame)
		outputs := shaper.Shape(face, cfg.label, fixed.I(24))
		err = r.Clipped(drawing.R(20, cfg.size.Height-60, cfg.size.Width-40, 40), func(r *drawing.Renderer) error {
			return layout.Draw(r, outputs, fixed.P(0, 30), drawing.White)
		})
		if err != nil {
			_ = r.End()
			return err
		}
		if err := r.End(); err != nil {
			return err
		}

		pass.Reset()
		if err := d.Render(1, rg); err != nil {
			return err
		}

		vertex, index := d.BufferStats()
		logger.Info("frame",
			slog.Int("n", frame),
			slog.Int("vertices", len(d.Vertices())),
			slog.Int("commands", len(d.Commands())),
			slog.Int("draws", pass.Count(memory.CallDrawIndexed)),
			slog.Bool("reallocated", vertex.Reallocated || index.Reallocated),
			slog.Int("runs", vertex.Runs+index.Runs),
			slog.Int("bytes", vertex.BytesWritten+index.BytesWritten))
	}

	glyphs, lines := layout.CacheStats(), shaper.CacheStats()
	logger.Info("done",
		slog.Int("buffers", device.Live()),
		slog.Int("glyphs", glyphs.Len),
		slog.Float64("glyph_hit_rate", glyphs.HitRate),
		slog.Float64("line_hit_rate", lines.HitRate))
	return device.Err()
}

// drawGrid fills the viewport with cells; one column is highlighted per
// frame so consecutive frames differ in a few vertices only.
func drawGrid(r *drawing.Renderer, cfg config, frame int) {
	cell := cfg.size.Width / uint32(cfg.cells)
	if cell == 0 {
		return
	}
	rows := (cfg.size.Height - 80) / cell
	hot := frame % cfg.cells

	for y := range rows {
		for x := range uint32(cfg.cells) {
			color := drawing.RGB(40, 40, uint8(80+y*8%160))
			if int(x) == hot {
				color = drawing.RGB(230, 120, 30)
			}
			rect := drawing.RI(int32(x*cell), int32(y*cell), cell-1, cell-1)
			r.DrawShape(drawing.NewDrawable(drawing.FilledRect(rect, color)))
		}
	}
}
