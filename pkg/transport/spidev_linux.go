// Linux spidev transport
//
// Talks to /dev/spidevB.C through the SPI_IOC_MESSAGE ioctl, one
// full-duplex transfer per exchange. MCP4XXX parts use SPI mode 0 and
// are comfortable well below 10 MHz.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

//go:build linux

package transport

import (
	"os"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"digipot-go/pkg/errors"
)

// SPIDevConfig holds the bus parameters of a spidev transport.
type SPIDevConfig struct {
	// Device is the spidev node, e.g. "/dev/spidev0.0".
	Device string

	// Speed is the clock rate in Hz. Defaults to 1 MHz.
	Speed uint32

	// Mode is the SPI mode (0-3). MCP4XXX uses mode 0.
	Mode uint8
}

// DefaultSPIDevConfig returns a config for the first chip select on bus 0.
func DefaultSPIDevConfig() SPIDevConfig {
	return SPIDevConfig{Device: "/dev/spidev0.0", Speed: 1000000}
}

// SPIDev is a transport over a Linux spidev character device. Safe for
// concurrent use.
type SPIDev struct {
	mu    sync.Mutex
	file  *os.File
	speed uint32
}

// spidev ioctl numbers (from linux/spi/spidev.h).
const (
	spiIOCWrMode        = 0x40016B01
	spiIOCWrMaxSpeedHz  = 0x40046B04
	spiIOCMessageBase   = 0x40006B00
	spiIOCMessageStride = 0x200000
)

// spiIOCTransfer matches struct spi_ioc_transfer.
type spiIOCTransfer struct {
	txBuf       uint64
	rxBuf       uint64
	length      uint32
	speedHz     uint32
	delayUsecs  uint16
	bitsPerWord uint8
	csChange    uint8
	pad         uint32
}

// OpenSPIDev opens a spidev node and programs the bus mode and clock.
func OpenSPIDev(cfg SPIDevConfig) (*SPIDev, error) {
	if cfg.Device == "" {
		return nil, errors.Validationf("spidev device path is empty")
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1000000
	}
	if cfg.Mode > 3 {
		return nil, errors.Validationf("spi mode must be 0-3, got %d", cfg.Mode)
	}
	file, err := os.OpenFile(cfg.Device, unix.O_RDWR|unix.O_NOCTTY, 0600)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection, "open spidev")
	}
	d := &SPIDev{file: file, speed: cfg.Speed}
	mode := cfg.Mode
	if err := d.ioctl(spiIOCWrMode, unsafe.Pointer(&mode)); err != nil {
		file.Close()
		return nil, err
	}
	speed := cfg.Speed
	if err := d.ioctl(spiIOCWrMaxSpeedHz, unsafe.Pointer(&speed)); err != nil {
		file.Close()
		return nil, err
	}
	return d, nil
}

func (d *SPIDev) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.file.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errors.Wrap(errno, errors.ErrConnection, "spidev ioctl failed")
	}
	return nil
}

// Transfer performs one full-duplex exchange.
func (d *SPIDev) Transfer(tx []byte) ([]byte, error) {
	if len(tx) == 0 {
		return nil, errors.Validationf("transfer frame is empty")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil, errors.NoTransport()
	}
	rx := make([]byte, len(tx))
	tr := spiIOCTransfer{
		txBuf:       uint64(uintptr(unsafe.Pointer(&tx[0]))),
		rxBuf:       uint64(uintptr(unsafe.Pointer(&rx[0]))),
		length:      uint32(len(tx)),
		speedHz:     d.speed,
		bitsPerWord: 8,
	}
	err := d.ioctl(spiIOCMessageBase+spiIOCMessageStride, unsafe.Pointer(&tr))
	runtime.KeepAlive(tx)
	runtime.KeepAlive(rx)
	if err != nil {
		return nil, err
	}
	return rx, nil
}

// Close releases the spidev node.
func (d *SPIDev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
