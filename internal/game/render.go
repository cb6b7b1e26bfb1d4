package game

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

var tileColors = [tileKindCount]color.RGBA{
	TileFloor: {R: 38, G: 40, B: 46, A: 255},
	TileWall:  {R: 90, G: 94, B: 104, A: 255},
	TileCover: {R: 70, G: 86, B: 66, A: 255},
	TileExit:  {R: 40, G: 110, B: 70, A: 255},
	TileSpawn: {R: 44, G: 52, B: 70, A: 255},
	TileAmmo:  {R: 56, G: 50, B: 38, A: 255},
}

var stateColors = map[EnemyState]color.RGBA{
	StatePatrol:      {R: 120, G: 160, B: 120, A: 255},
	StateInvestigate: {R: 220, G: 190, B: 80, A: 255},
	StateChase:       {R: 230, G: 80, B: 70, A: 255},
	StateReturn:      {R: 130, G: 150, B: 200, A: 255},
}

var hudFace = func() *text.GoTextFace {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		panic(err)
	}
	return &text.GoTextFace{Source: src, Size: 13}
}()

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 11, B: 13, A: 255})

	w := g.world
	g.drawTiles(screen, w)
	g.drawPickups(screen, w)
	g.drawVisionCones(screen, w)
	g.drawNoiseMarkers(screen, w)
	g.drawEnemies(screen, w)
	g.drawBullets(screen, w)
	g.drawPlayer(screen, w)
	g.drawHUD(screen, w)
}

func (g *Game) drawTiles(screen *ebiten.Image, w *World) {
	for row := 0; row < w.Grid.Rows; row++ {
		for col := 0; col < w.Grid.Cols; col++ {
			if !w.IsExplored(col, row) {
				continue
			}
			x := float32(g.offX + col*tilePx)
			y := float32(g.offY + row*tilePx)
			vector.FillRect(screen, x, y, tilePx, tilePx, tileColors[w.Grid.At(col, row)], false)
		}
	}
	// Frame around the playfield.
	vector.StrokeRect(screen,
		float32(g.offX)-1, float32(g.offY)-1,
		float32(w.Grid.Cols*tilePx)+2, float32(w.Grid.Rows*tilePx)+2,
		2.0, color.RGBA{R: 60, G: 66, B: 78, A: 255}, false)
}

func (g *Game) drawPickups(screen *ebiten.Image, w *World) {
	for i := range w.Pickups {
		ap := &w.Pickups[i]
		if ap.Collected || !w.IsExplored(int(ap.X), int(ap.Y)) {
			continue
		}
		px, py := g.worldToScreen(ap.X, ap.Y)
		vector.FillRect(screen, float32(px)-5, float32(py)-3, 10, 6,
			color.RGBA{R: 210, G: 170, B: 60, A: 255}, false)
	}
}

// drawVisionCones renders each live enemy's sight fan into an offscreen
// buffer as solid white, then composites it translucently so overlapping
// cones never stack to full opacity. Rays are clipped against opaque tiles.
func (g *Game) drawVisionCones(screen *ebiten.Image, w *World) {
	buf := g.visionBuf
	buf.Clear()

	fov := visionAngleDeg * math.Pi / 180.0
	halfFOV := fov / 2
	const steps = 24
	for _, e := range w.LiveEnemies() {
		r := visionRange
		if w.Player.Sneaking {
			r *= sneakVisionMul
		}
		sx := float32(e.X * tilePx)
		sy := float32(e.Y * tilePx)

		var path vector.Path
		path.MoveTo(sx, sy)
		for i := 0; i <= steps; i++ {
			a := e.Facing - halfFOV + (fov/float64(steps))*float64(i)
			ex, ey := clipVisionRay(w.Grid, e.X, e.Y, a, r)
			path.LineTo(float32(ex*tilePx), float32(ey*tilePx))
		}
		path.Close()
		vector.FillPath(buf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(g.offX), float64(g.offY))
	tint := color.RGBA{R: 235, G: 200, B: 90, A: 255}
	if w.DetectionLevel >= alertMax {
		tint = color.RGBA{R: 240, G: 90, B: 70, A: 255}
	}
	opts.ColorScale.ScaleWithColor(tint)
	opts.ColorScale.ScaleAlpha(0.16)
	screen.DrawImage(buf, opts)
}

// clipVisionRay marches a sight ray outward in small steps and stops at the
// first opaque tile, returning the endpoint in grid coordinates.
func clipVisionRay(g *Grid, ox, oy, angle, maxLen float64) (float64, float64) {
	const step = 0.1
	dx, dy := math.Cos(angle), math.Sin(angle)
	for t := step; t <= maxLen; t += step {
		x := ox + dx*t
		y := oy + dy*t
		if g.BlocksSight(int(math.Floor(x)), int(math.Floor(y))) {
			back := math.Max(0, t-step)
			return ox + dx*back, oy + dy*back
		}
	}
	return ox + dx*maxLen, oy + dy*maxLen
}

func (g *Game) drawNoiseMarkers(screen *ebiten.Image, w *World) {
	for _, n := range w.Noise {
		px, py := g.worldToScreen(n.X, n.Y)
		fade := n.FadeRatio()
		ring := float32(n.Radius * tilePx * (1.0 - fade*0.4))
		vector.StrokeCircle(screen, float32(px), float32(py), ring, 1.5,
			color.RGBA{R: 160, G: 190, B: 220, A: uint8(90 * fade)}, true)
	}
}

func (g *Game) drawEnemies(screen *ebiten.Image, w *World) {
	for _, e := range w.Enemies {
		px, py := g.worldToScreen(e.X, e.Y)
		sx, sy := float32(px), float32(py)
		if e.Dead {
			if w.IsExplored(int(e.X), int(e.Y)) {
				vector.FillCircle(screen, sx, sy, enemyRadius*tilePx,
					color.RGBA{R: 60, G: 50, B: 50, A: 255}, true)
			}
			continue
		}
		col := stateColors[e.State]
		vector.FillCircle(screen, sx, sy, enemyRadius*tilePx, col, true)
		// Facing tick.
		fx := sx + float32(math.Cos(e.Facing))*enemyRadius*tilePx*1.6
		fy := sy + float32(math.Sin(e.Facing))*enemyRadius*tilePx*1.6
		vector.StrokeLine(screen, sx, sy, fx, fy, 2.0, col, true)

		// Per-enemy alert bar above the head.
		if e.Alert > 0 {
			barW := float32(tilePx) * 0.8
			vector.FillRect(screen, sx-barW/2, sy-enemyRadius*tilePx-8, barW, 3,
				color.RGBA{R: 30, G: 30, B: 30, A: 200}, false)
			vector.FillRect(screen, sx-barW/2, sy-enemyRadius*tilePx-8,
				barW*float32(e.Alert/alertMax), 3,
				color.RGBA{R: 230, G: 140, B: 50, A: 230}, false)
		}
	}
}

func (g *Game) drawBullets(screen *ebiten.Image, w *World) {
	for _, b := range w.Bullets {
		px, py := g.worldToScreen(b.X, b.Y)
		col := color.RGBA{R: 240, G: 230, B: 180, A: 255}
		if !b.PlayerOwned {
			col = color.RGBA{R: 240, G: 150, B: 130, A: 255}
		}
		vector.FillCircle(screen, float32(px), float32(py), 3, col, true)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, w *World) {
	p := w.Player
	px, py := g.worldToScreen(p.X, p.Y)
	sx, sy := float32(px), float32(py)

	body := color.RGBA{R: 90, G: 170, B: 230, A: 255}
	if p.Sneaking {
		body = color.RGBA{R: 60, G: 120, B: 170, A: 255}
	} else if p.Sprinting {
		body = color.RGBA{R: 130, G: 200, B: 250, A: 255}
	}
	vector.FillCircle(screen, sx, sy, playerRadius*tilePx, body, true)
	fx := sx + float32(math.Cos(p.Facing))*playerRadius*tilePx*1.8
	fy := sy + float32(math.Sin(p.Facing))*playerRadius*tilePx*1.8
	vector.StrokeLine(screen, sx, sy, fx, fy, 2.0, color.RGBA{R: 220, G: 235, B: 250, A: 255}, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, w *World) {
	hudY := float64(g.offY + w.Grid.Rows*tilePx + 10)
	p := w.Player

	drawText := func(s string, x, y float64, col color.Color) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(col)
		text.Draw(screen, s, hudFace, op)
	}

	white := color.RGBA{R: 210, G: 215, B: 222, A: 255}
	drawText(fmt.Sprintf("HP %d/%d   AMMO %d/%d   KILLS %d/%d",
		p.Health, playerMaxHealth, p.Ammo, playerMaxAmmo,
		len(w.Enemies)-len(w.LiveEnemies()), len(w.Enemies)),
		float64(g.offX), hudY, white)

	// Detection meter.
	meterX := float32(g.offX)
	meterY := float32(hudY) + 22
	meterW := float32(220)
	vector.FillRect(screen, meterX, meterY, meterW, 8,
		color.RGBA{R: 30, G: 32, B: 36, A: 255}, false)
	fillCol := color.RGBA{R: 220, G: 180, B: 60, A: 255}
	if w.DetectionLevel >= alertMax {
		fillCol = color.RGBA{R: 230, G: 70, B: 60, A: 255}
	}
	vector.FillRect(screen, meterX, meterY, meterW*float32(w.DetectionLevel/alertMax), 8, fillCol, false)
	drawText("DETECTION", float64(meterX)+float64(meterW)+10, float64(meterY)-3, white)

	// Outcome / pause banner.
	switch {
	case w.Win:
		drawText("EXTRACTED — press R to replay, N for a new level",
			float64(g.offX)+300, hudY, color.RGBA{R: 110, G: 220, B: 130, A: 255})
	case w.GameOver:
		drawText("YOU WERE TAKEN DOWN — press R to retry",
			float64(g.offX)+300, hudY, color.RGBA{R: 235, G: 90, B: 80, A: 255})
	case w.Paused:
		drawText("PAUSED", float64(g.offX)+300, hudY, white)
	}

	if g.statusTimer > 0 && g.status != "" {
		drawText(g.status, float64(g.offX), float64(g.height-18),
			color.RGBA{R: 160, G: 170, B: 185, A: 255})
	}
}
