package components

import (
	"timing-grid/internal/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	// TrackPadding is the inset of the reference line from each side.
	TrackPadding = 10

	tickHalfHeight = 6
	labelGap       = 4
	minTrackWidth  = 200
)

// Track draws the moving marker over a horizontal reference line with end
// ticks and distance labels.
type Track struct {
	widget.BaseWidget

	paint func() animation.PaintData
}

func NewTrack(paint func() animation.PaintData) *Track {
	t := &Track{paint: paint}
	t.ExtendBaseWidget(t)
	return t
}

// Bounds are the marker's travel limits for the track's current width.
func (t *Track) Bounds() animation.Bounds {
	width := t.Size().Width
	if width < minTrackWidth {
		width = minTrackWidth
	}
	return animation.Bounds{
		StartX: TrackPadding,
		EndX:   float64(width - TrackPadding),
	}
}

// frame returns the paint data, falling back to the track's own bounds
// before the first run has set any.
func (t *Track) frame() animation.PaintData {
	pd := t.paint()
	if pd.EndX <= pd.StartX {
		b := t.Bounds()
		pd.StartX, pd.EndX = b.StartX, b.EndX
		pd.X = b.StartX
	}
	if pd.Radius == 0 {
		pd.Radius = animation.MarkerRadius
	}
	return pd
}

func (t *Track) CreateRenderer() fyne.WidgetRenderer {
	fg := theme.Color(theme.ColorNameForeground)

	r := &trackRenderer{
		track:      t,
		line:       canvas.NewLine(fg),
		startTick:  canvas.NewLine(fg),
		endTick:    canvas.NewLine(fg),
		marker:     canvas.NewCircle(fg),
		startLabel: canvas.NewText("", fg),
		endLabel:   canvas.NewText("", fg),
	}
	r.line.StrokeWidth = 1
	r.startTick.StrokeWidth = 1
	r.endTick.StrokeWidth = 1
	r.marker.StrokeColor = fg
	r.startLabel.TextSize = theme.CaptionTextSize()
	r.endLabel.TextSize = theme.CaptionTextSize()
	r.objects = []fyne.CanvasObject{r.line, r.startTick, r.endTick, r.startLabel, r.endLabel, r.marker}
	r.Refresh()
	return r
}

type trackRenderer struct {
	track      *Track
	line       *canvas.Line
	startTick  *canvas.Line
	endTick    *canvas.Line
	marker     *canvas.Circle
	startLabel *canvas.Text
	endLabel   *canvas.Text
	objects    []fyne.CanvasObject
}

func (r *trackRenderer) Layout(fyne.Size) {
	pd := r.track.frame()

	y := float32(pd.Y)
	startX := float32(pd.StartX)
	endX := float32(pd.EndX)

	r.line.Position1 = fyne.NewPos(startX, y)
	r.line.Position2 = fyne.NewPos(endX, y)
	r.startTick.Position1 = fyne.NewPos(startX, y-tickHalfHeight)
	r.startTick.Position2 = fyne.NewPos(startX, y+tickHalfHeight)
	r.endTick.Position1 = fyne.NewPos(endX, y-tickHalfHeight)
	r.endTick.Position2 = fyne.NewPos(endX, y+tickHalfHeight)

	radius := float32(pd.Radius)
	r.marker.Move(fyne.NewPos(float32(pd.X)-radius, y-radius))
	r.marker.Resize(fyne.NewSize(2*radius, 2*radius))

	r.startLabel.Text = pd.StartLabel
	r.endLabel.Text = pd.EndLabel
	startSize := r.startLabel.MinSize()
	endSize := r.endLabel.MinSize()
	r.startLabel.Move(fyne.NewPos(startX-startSize.Width/2, y+tickHalfHeight+labelGap))
	r.endLabel.Move(fyne.NewPos(endX-endSize.Width/2, y+tickHalfHeight+labelGap))
	r.startLabel.Resize(startSize)
	r.endLabel.Resize(endSize)
}

func (r *trackRenderer) MinSize() fyne.Size {
	labelHeight := r.startLabel.MinSize().Height
	return fyne.NewSize(minTrackWidth, animation.MarkerOffsetY+tickHalfHeight+labelGap+labelHeight+theme.Padding())
}

func (r *trackRenderer) Refresh() {
	r.Layout(r.track.Size())
	for _, o := range r.objects {
		canvas.Refresh(o)
	}
}

func (r *trackRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *trackRenderer) Destroy() {}
