// Package mbi5039 controls a monochrome LED dot-matrix display built from
// MBI5039 shift-register LED drivers, such as the Bustec BTM140.2 panel.
// This driver implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel, no grayscale
// - No controller RAM: every update shifts a full frame through the chain
// - Frame transfer to the output stages on a latch pulse
// - Brightness via PWM on the active-low output-enable line
//
// # Hardware Connection
//
// Connect the panel to your system via SPI plus two GPIO pins:
//
//	Panel Pin → System Pin
//	GND       → GND
//	VCC       → 5V
//	SDI       → SPI Data (MOSI)
//	CLK       → SPI Clock (SCLK)
//	LE        → GPIO (latch, any available pin)
//	OE        → GPIO (output enable, PWM capable)
//
// The SPI port is driven at 1MHz, Mode3, 8-bit, MSB first. Output-enable is
// dimmed at 10kHz.
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/ssd1306/image1bit"
//		"periph.io/x/host/v3"
//
//		"github.com/lokomoti/mbi5039"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get latch and output-enable GPIO pins
//		le := gpioreg.ByName("GPIO21")
//		oe := gpioreg.ByName("GPIO20")
//
//		// Create device
//		dev, _ := mbi5039.New(spiBus, le, oe, &mbi5039.Opts{
//			W:          64,
//			H:          16,
//			Brightness: 100,
//		})
//		defer dev.Halt()
//
//		// Draw into the frame bitmap
//		img := dev.Bitmap()
//		for x := 0; x < 64; x++ {
//			img.SetBit(x, x%16, image1bit.On)
//		}
//
//		// Push the frame and light the panel up
//		dev.Flush(true)
//	}
//
// The display stays dark after New regardless of the configured brightness;
// the first Flush with show set (or an explicit On) enables the outputs.
//
// # Brightness
//
// Brightness is a percentage from 0 to 100:
//
//	dev.SetBrightness(30) // takes effect on the next On or Flush(true)
//
// Internally the percentage maps to an output-enable PWM duty on a 16 bit
// scale, and the mapping is INVERTED: output-enable is active low, so 65535
// means fully off and 40000 is the brightest setting the panel was
// calibrated against. A brightness of 100 therefore yields the LOWEST duty
// value. This is hardware calibration, not a bug; keep the direction as is.
//
// # Staging Frames
//
// Flush(false) shifts and latches a frame without touching the
// output-enable state. Combined with Off it allows preparing the next frame
// while the panel is dark:
//
//	dev.Off()
//	// ... draw ...
//	dev.Flush(false) // frame is latched but panel stays dark
//	dev.On()
//
// # Raw Frames
//
// Write accepts a complete frame in VerticalLSB layout, the same packing
// used by image1bit: one byte covers 8 vertically stacked pixels of one
// column (LSB topmost), bytes ordered column by column, band by band. The
// buffer must be exactly (height/8)*width bytes:
//
//	pixels := make([]byte, 64*16/8) // 128 bytes for 64x16
//	// ... fill pixels ...
//	dev.Write(pixels)
//
// The driver transcodes each frame into the shift order of the physical
// chain (interleaved halves, partially bit-reversed, last byte first)
// before transmitting; callers never deal with wire order.
//
// # Concurrency
//
// Dev is not safe for concurrent use. All operations are blocking and run
// to completion; a single goroutine should own both drawing and flushing.
//
// # Datasheet
//
// For register timing of the MBI5039 constant-current driver, see:
// https://www.macroblock.com.tw/en/products/detail/MBI5039
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a
// display.Drawer.
package mbi5039
