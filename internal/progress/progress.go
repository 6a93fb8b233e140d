package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

const barWidth = 30

// Bar redraws a single status line on w after every tick.
type Bar struct {
	w       io.Writer
	label   string
	total   int
	current int
	fill    *color.Color
}

func NewBar(w io.Writer, label string) *Bar {
	return &Bar{w: w, label: label, fill: color.New(color.FgGreen)}
}

func (b *Bar) Start(total int) {
	b.total = total
	b.current = 0
	b.draw()
}

func (b *Bar) Increment() {
	b.current++
	b.draw()
}

func (b *Bar) Finish() {
	_, _ = fmt.Fprintln(b.w)
}

func (b *Bar) draw() {
	pct := 100
	filled := barWidth
	if b.total > 0 {
		pct = b.current * 100 / b.total
		filled = b.current * barWidth / b.total
	}
	bar := b.fill.Sprint(strings.Repeat("#", filled)) + strings.Repeat(" ", barWidth-filled)
	_, _ = fmt.Fprintf(b.w, "\r%s: %3d%% [%s] %s/%s",
		b.label, pct, bar, humanize.Comma(int64(b.current)), humanize.Comma(int64(b.total)))
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)  {}
func (Nop) Increment() {}
func (Nop) Finish()    {}
