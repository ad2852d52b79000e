// Package mbi5039 controls a monochrome LED dot-matrix display built from
// MBI5039 shift-register LED drivers via SPI.
//
// The panel is a dumb shift-register chain: every refresh clocks out a full
// frame, a pulse on the latch pin transfers it to the output stages, and a
// PWM signal on the active-low output-enable pin sets the brightness.
//
// See the examples for how to use this package.
package mbi5039

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// PWM duty bounds for the output-enable pin, on the 16 bit scale the panel
// was calibrated against.
//
// The output-enable signal is active low, so duty and brightness are
// inverted: 65535 keeps the outputs disabled for the whole period, and
// brightnessMax holds the LOWER duty bound. 40000 is the usable maximum the
// physical panel was calibrated against, not the theoretical limit of 0.
// Do not "fix" the direction of this mapping.
const (
	brightnessMax = 40000
	brightnessMin = 65535
)

// pwmFreq is the output-enable dimming frequency.
const pwmFreq = 10 * physic.KiloHertz

// Opts is the configuration for the display.
type Opts struct {
	// Display dimensions in pixels.
	W int // Width (default: 64, must be a multiple of 4)
	H int // Height (default: 16, must be a multiple of 8)

	// Brightness is the initial brightness percentage (0-100).
	Brightness int
}

// Dev is the device handle for the display.
//
// The outputs stay disabled after construction; the panel lights up on the
// first On or Flush with show set.
type Dev struct {
	// Communication
	c  conn.Conn   // SPI connection (data + clock)
	le gpio.PinOut // Latch pin
	oe gpio.PinOut // Output-enable pin (PWM, active low)

	// Display geometry
	rect image.Rectangle

	// Pixel buffers
	bitmap *image1bit.VerticalLSB // Frame being drawn
	wire   []byte                 // Transcoded frame, reused across flushes

	// State
	duty   uint16 // Output-enable duty for On, 16 bit scale
	halted bool
}

// New creates a new MBI5039 display chain connected via SPI.
//
// The SPI port carries the data and clock lines and is configured for 1MHz,
// Mode3 (CPOL=1, CPHA=1), 8-bit MSB-first transfers, matching the edge the
// MBI5039 samples on. le is the latch pin and oe the output-enable pin; both
// must be configured as outputs.
//
// opts can be nil to use defaults (64x16 panel at full brightness).
func New(p spi.Port, le, oe gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 64, H: 16, Brightness: 100}
	}

	if opts.W <= 0 || opts.W%4 != 0 {
		return nil, errors.New("mbi5039: width must be a positive multiple of 4")
	}
	if opts.H <= 0 || opts.H%8 != 0 {
		return nil, errors.New("mbi5039: height must be a positive multiple of 8")
	}
	if opts.Brightness < 0 || opts.Brightness > 100 {
		return nil, errors.New("mbi5039: brightness must be between 0 and 100")
	}

	c, err := p.Connect(1*physic.MegaHertz, spi.Mode3, 8)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, opts.W, opts.H)
	d := &Dev{
		c:      c,
		le:     le,
		oe:     oe,
		rect:   rect,
		bitmap: image1bit.NewVerticalLSB(rect),
		wire:   make([]byte, opts.H/8*opts.W),
		duty:   uint16(scale(opts.Brightness, 0, 100, brightnessMin, brightnessMax)),
	}

	if err := d.le.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("mbi5039: failed to pull LE low: %w", err)
	}
	// Start dark regardless of the configured brightness.
	if err := d.oe.PWM(dutyCycle(brightnessMin), pwmFreq); err != nil {
		return nil, fmt.Errorf("mbi5039: failed to configure OE pwm: %w", err)
	}

	return d, nil
}

// scale maps value from [inMin, inMax] to [outMin, outMax] linearly.
// outMin may be larger than outMax, in which case the output decreases as
// the input increases; the brightness mapping relies on this.
func scale(value, inMin, inMax, outMin, outMax int) int {
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// dutyCycle converts a duty on the panel's 16 bit scale to a gpio.Duty.
func dutyCycle(d uint16) gpio.Duty {
	return gpio.Duty(int64(d) * int64(gpio.DutyMax) / brightnessMin)
}

// SetBrightness sets the display brightness (0-100).
//
// Higher percentages map to lower output-enable duty values; see the
// brightnessMax/brightnessMin documentation for why the mapping is
// inverted. The new value takes effect on the next On or Flush with show.
func (d *Dev) SetBrightness(pct int) error {
	if d.halted {
		return errors.New("mbi5039: halted")
	}
	if pct < 0 || pct > 100 {
		return errors.New("mbi5039: brightness must be between 0 and 100")
	}
	d.duty = uint16(scale(pct, 0, 100, brightnessMin, brightnessMax))
	return nil
}

// On enables the LED outputs at the current brightness. Idempotent.
func (d *Dev) On() error {
	if d.halted {
		return errors.New("mbi5039: halted")
	}
	return d.oe.PWM(dutyCycle(d.duty), pwmFreq)
}

// Off disables the LED outputs. Idempotent.
//
// The shift registers keep their contents; On restores the same frame.
func (d *Dev) Off() error {
	if d.halted {
		return errors.New("mbi5039: halted")
	}
	return d.oe.PWM(dutyCycle(brightnessMin), pwmFreq)
}

// Flush pushes the current bitmap to the panel: the frame is transcoded to
// wire order, transmitted over SPI, and latched into the output stages.
//
// If show is true the outputs are then enabled at the current brightness;
// otherwise the output-enable state is left untouched, which allows staging
// a frame while the panel is dark.
//
// A transmit failure leaves the panel in an undefined visual state until
// the next successful Flush.
func (d *Dev) Flush(show bool) error {
	if d.halted {
		return errors.New("mbi5039: halted")
	}

	encodeFrame(d.wire, d.bitmap.Pix)
	if err := d.c.Tx(d.wire, nil); err != nil {
		return fmt.Errorf("mbi5039: frame transmit failed: %w", err)
	}

	// Rising edge moves the shifted frame into the output latches; the
	// final return to low arms the next frame.
	for _, l := range []gpio.Level{gpio.Low, gpio.High, gpio.Low} {
		if err := d.le.Out(l); err != nil {
			return fmt.Errorf("mbi5039: failed to pulse LE: %w", err)
		}
	}

	if show {
		return d.On()
	}
	return nil
}

// Bitmap returns the backing frame bitmap.
//
// Callers draw into it with image1bit.VerticalLSB's pixel operations or
// image/draw and then call Flush. The device reads the bitmap in place
// during Flush; callers on multiple goroutines must serialize access.
func (d *Dev) Bitmap() *image1bit.VerticalLSB {
	return d.bitmap
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a raw frame to the display in VerticalLSB format and shows
// it. The data must be exactly (height/8)*width bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errors.New("mbi5039: halted")
	}
	if len(pixels) != len(d.bitmap.Pix) {
		return 0, errors.New("mbi5039: invalid buffer size")
	}
	copy(d.bitmap.Pix, pixels)
	if err := d.Flush(true); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw draws an image onto the display and shows it.
// The dst rectangle specifies the destination region on the display.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("mbi5039: halted")
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	draw.Draw(d.bitmap, dst, src, sp, draw.Src)
	return d.Flush(true)
}

// Halt blanks the display and stops accepting operations.
// The shift register chain has no power-down command; halting only disables
// the outputs via output-enable.
func (d *Dev) Halt() error {
	d.halted = true
	return d.oe.PWM(dutyCycle(brightnessMin), pwmFreq)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("mbi5039.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

var _ display.Drawer = &Dev{}
