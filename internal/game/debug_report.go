package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport renders a plain-text snapshot of the run for bug reports:
// header, player state, per-enemy state, live transients, and the grid.
func DebugReport(w *World, seed int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- VeilRunner debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d detection=%.0f\n", seed, w.Tick, w.DetectionLevel)

	outcome := "in progress"
	switch {
	case w.Win:
		outcome = "extracted"
	case w.GameOver:
		outcome = "down"
	case w.Paused:
		outcome = "paused"
	}
	fmt.Fprintf(&b, "outcome=%s\n\n", outcome)

	p := w.Player
	mode := "walk"
	if p.Sprinting {
		mode = "sprint"
	} else if p.Sneaking {
		mode = "sneak"
	}
	fmt.Fprintf(&b, "player: pos=(%.2f,%.2f) facing=%.2f hp=%d/%d ammo=%d/%d mode=%s noise=%.1f\n",
		p.X, p.Y, p.Facing, p.Health, playerMaxHealth, p.Ammo, playerMaxAmmo, mode, p.NoiseLevel)
	fmt.Fprintf(&b, "exit: (%d,%d)\n\n", w.ExitCol, w.ExitRow)

	b.WriteString("enemies:\n")
	for _, e := range w.Enemies {
		if e.Dead {
			fmt.Fprintf(&b, "  E%d: dead at (%.2f,%.2f)\n", e.ID, e.X, e.Y)
			continue
		}
		fmt.Fprintf(&b,
			"  E%d: %s pos=(%.2f,%.2f) facing=%.2f alert=%.1f hp=%d ammo=%d wp=%d/%d lastKnown=(%.1f,%.1f)\n",
			e.ID, e.State, e.X, e.Y, e.Facing, e.Alert, e.Health, e.Ammo,
			e.WaypointIndex, len(e.Waypoints), e.LastKnownX, e.LastKnownY)
	}

	fmt.Fprintf(&b, "\nbullets=%d noise=%d pickups=%d\n", len(w.Bullets), len(w.Noise), len(w.Pickups))
	for _, n := range w.Noise {
		fmt.Fprintf(&b, "  noise at (%.1f,%.1f) r=%.1f life=%.2f\n", n.X, n.Y, n.Radius, n.Lifetime)
	}

	b.WriteString("\ngrid:\n")
	g := w.Grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			glyph := tileGlyphs[g.At(col, row)]
			if int(p.X) == col && int(p.Y) == row {
				glyph = '@'
			}
			for _, e := range w.Enemies {
				if !e.Dead && int(e.X) == col && int(e.Y) == row {
					glyph = 'e'
				}
			}
			b.WriteByte(glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// copyToClipboard pushes text to the system clipboard. Failure is non-fatal,
// the caller just surfaces the error in the HUD status line.
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
