package animation

import (
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"timing-grid/internal/logger"
)

const (
	// TickPeriod is the fixed interval between ticks while a run is active.
	TickPeriod = 33 * time.Millisecond

	// SampleSlots is the number of equal sub-intervals a run is divided into.
	SampleSlots = 10

	// MarkerOffsetY is the vertical position of the marker inside the track.
	MarkerOffsetY = 20.0

	MarkerRadius = 5.0

	sampleSpread = 0.03
)

const component = "Animation"

// Grid is the part of the cell store the controller writes samples into.
type Grid interface {
	RowCount() int
	ColumnCount() int
	AppendRow() int
	Cell(row, col int) string
	SetCell(row, col int, value string)
}

// State is Idle or Running.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Bounds are the horizontal pixel limits of the marker's travel.
type Bounds struct {
	StartX float64
	EndX   float64
}

// PaintData is everything the drawing collaborator needs for one frame.
type PaintData struct {
	X, Y       float64
	Radius     float64
	StartX     float64
	EndX       float64
	StartLabel string
	EndLabel   string
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used for samples.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller drives a run: it owns elapsed time, the marker position and the
// per-slot samples written into the grid. All methods must be called from
// the goroutine that receives ticks.
type Controller struct {
	grid   Grid
	ticker Ticker
	rng    *rand.Rand
	log    logger.Logger

	state     State
	elapsedMs int
	durationS int
	speed     float64
	startX    float64
	endX      float64
	currentX  float64
	activeRow int

	elapsedHandler  func(seconds int)
	redrawHandler   func()
	finishedHandler func(row int)
}

// NewController creates an idle controller. The first run writes into a new
// row appended after the rows the grid already has.
func NewController(grid Grid, ticker Ticker, opts ...Option) *Controller {
	c := &Controller{
		grid:      grid,
		ticker:    ticker,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:       logger.NoOpLogger{},
		activeRow: grid.RowCount(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) SetElapsedHandler(handler func(seconds int)) {
	c.elapsedHandler = handler
}

func (c *Controller) SetRedrawHandler(handler func()) {
	c.redrawHandler = handler
}

func (c *Controller) SetFinishedHandler(handler func(row int)) {
	c.finishedHandler = handler
}

// Start resets the run and arms the ticker. Calling Start while running
// discards the current run; only one ticker period is ever armed.
func (c *Controller) Start(durationS int, speed float64, bounds Bounds) {
	if c.state == Running {
		c.ticker.Stop()
		c.log.Debug(component, "run restarted before completion", map[string]interface{}{
			"elapsed_ms": c.elapsedMs,
			"row":        c.activeRow,
		})
	}

	c.elapsedMs = 0
	c.durationS = durationS
	c.speed = speed
	c.startX = bounds.StartX
	c.endX = bounds.EndX
	c.currentX = bounds.StartX

	for c.grid.RowCount() <= c.activeRow {
		c.grid.AppendRow()
	}

	c.state = Running
	c.ticker.Start(TickPeriod, c.OnTick)

	c.log.Info(component, "run started", map[string]interface{}{
		"duration_s": durationS,
		"speed_mps":  speed,
		"row":        c.activeRow,
		"start_x":    bounds.StartX,
		"end_x":      bounds.EndX,
	})

	c.notifyElapsed(0)
	c.redraw()
}

// OnTick advances the run by one period.
func (c *Controller) OnTick() {
	if c.state != Running {
		return
	}

	c.elapsedMs += int(TickPeriod / time.Millisecond)
	elapsedS := c.elapsedMs / 1000

	c.sample(elapsedS)
	c.notifyElapsed(elapsedS)

	if elapsedS >= c.durationS {
		finished := c.activeRow
		c.activeRow++
		c.state = Idle
		c.ticker.Stop()

		c.log.Info(component, "run finished", map[string]interface{}{
			"row":        finished,
			"elapsed_ms": c.elapsedMs,
		})
		if c.finishedHandler != nil {
			c.finishedHandler(finished)
		}
		return
	}

	fraction := float64(c.elapsedMs) / (float64(c.durationS) * 1000)
	c.currentX = c.startX + fraction*(c.endX-c.startX)
	c.redraw()
}

// sample writes one noisy reading of speed*t into the slot that ends at
// elapsedS. Runs shorter than SampleSlots seconds have a zero step and
// produce no samples.
func (c *Controller) sample(elapsedS int) {
	step := c.durationS / SampleSlots
	if step == 0 || elapsedS == 0 || elapsedS%step != 0 {
		return
	}

	col := elapsedS/step - 1
	if col >= c.grid.ColumnCount() || c.grid.Cell(c.activeRow, col) != "" {
		return
	}

	nominal := c.speed * float64(elapsedS)
	lo := nominal * (1 - sampleSpread)
	hi := nominal * (1 + sampleSpread)
	value := lo + c.rng.Float64()*(hi-lo)

	c.grid.SetCell(c.activeRow, col, strconv.FormatFloat(value, 'f', 2, 64))
	c.log.Debug(component, "sample recorded", map[string]interface{}{
		"row":   c.activeRow,
		"col":   col,
		"value": value,
	})
}

// Stop disarms the ticker without completing the run.
func (c *Controller) Stop() {
	if c.state != Running {
		return
	}
	c.ticker.Stop()
	c.state = Idle
	c.log.Info(component, "run stopped", map[string]interface{}{"elapsed_ms": c.elapsedMs})
}

// CurrentPosition returns the marker centre.
func (c *Controller) CurrentPosition() (x, y float64) {
	return c.currentX, MarkerOffsetY
}

func (c *Controller) PaintData() PaintData {
	return PaintData{
		X:          c.currentX,
		Y:          MarkerOffsetY,
		Radius:     MarkerRadius,
		StartX:     c.startX,
		EndX:       c.endX,
		StartLabel: "0 m",
		EndLabel:   distanceLabel(c.speed * float64(c.durationS)),
	}
}

// distanceLabel renders metres rounded to centimetres, without trailing zeros.
func distanceLabel(m float64) string {
	return strconv.FormatFloat(math.Round(m*100)/100, 'f', -1, 64) + " m"
}

func (c *Controller) State() State { return c.state }

func (c *Controller) ElapsedMs() int { return c.elapsedMs }

func (c *Controller) ActiveRow() int { return c.activeRow }

func (c *Controller) Running() bool { return c.state == Running }

// SetActiveRow points the next run at row. Used after the grid is replaced.
func (c *Controller) SetActiveRow(row int) {
	if row < 0 {
		row = 0
	}
	c.activeRow = row
}

func (c *Controller) notifyElapsed(seconds int) {
	if c.elapsedHandler != nil {
		c.elapsedHandler(seconds)
	}
}

func (c *Controller) redraw() {
	if c.redrawHandler != nil {
		c.redrawHandler()
	}
}
