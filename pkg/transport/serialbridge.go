// Serial bridge transport
//
// Tunnels SPI exchanges to a chip hanging off a remote microcontroller
// over a serial link. Each exchange is one framed packet in either
// direction:
//
//	sync (0x7E) | length | payload... | crc8
//
// The CRC covers the length byte and the payload. The remote side
// performs the SPI transfer and answers with the response bytes in the
// same framing.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package transport

import (
	"io"
	"sync"
	"time"

	"github.com/sigurn/crc8"
	"github.com/sirupsen/logrus"
	"github.com/tarm/serial"

	"digipot-go/pkg/errors"
	"digipot-go/pkg/logutil"
)

const (
	frameSync      = 0x7E
	frameMaxPaylen = 64
)

var crcTable = crc8.MakeTable(crc8.Params{
	Poly: 0x07,
	Name: "CRC-8/Bridge",
})

// SerialBridgeConfig holds the link parameters of a serial bridge.
type SerialBridgeConfig struct {
	// Port is the serial device, e.g. "/dev/ttyACM0".
	Port string

	// Baud is the link rate. Defaults to 115200.
	Baud int

	// ReadTimeout bounds each response read. Defaults to one second.
	ReadTimeout time.Duration
}

// DefaultSerialBridgeConfig returns a config for a 115200 baud link.
func DefaultSerialBridgeConfig() SerialBridgeConfig {
	return SerialBridgeConfig{Baud: 115200, ReadTimeout: time.Second}
}

// SerialBridge is a transport over a framed serial link. Safe for
// concurrent use; exchanges are serialized on the port.
type SerialBridge struct {
	mu   sync.Mutex
	port io.ReadWriteCloser
	log  *logrus.Entry
}

// OpenSerialBridge opens the serial port and wraps it in a bridge.
func OpenSerialBridge(cfg SerialBridgeConfig) (*SerialBridge, error) {
	if cfg.Port == "" {
		return nil, errors.Validationf("serial port path is empty")
	}
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = time.Second
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection, "open serial port")
	}
	return NewSerialBridge(port), nil
}

// NewSerialBridge wraps an already open link. Used by tests and by
// callers that configure the port themselves.
func NewSerialBridge(port io.ReadWriteCloser) *SerialBridge {
	return &SerialBridge{
		port: port,
		log:  logutil.GetLogger("serialbridge"),
	}
}

// encodeFrame wraps a payload in the bridge framing.
func encodeFrame(payload []byte) ([]byte, error) {
	if len(payload) == 0 || len(payload) > frameMaxPaylen {
		return nil, errors.Validationf("payload length %d outside [1, %d]", len(payload), frameMaxPaylen)
	}
	frame := make([]byte, 0, len(payload)+3)
	frame = append(frame, frameSync, byte(len(payload)))
	frame = append(frame, payload...)
	frame = append(frame, crc8.Checksum(frame[1:], crcTable))
	return frame, nil
}

// decodeFrame reads one frame from the link, scanning past noise bytes
// until a sync byte is found.
func decodeFrame(r io.Reader) ([]byte, error) {
	var b [1]byte
	// Scan for sync. A bounded scan keeps a dead link from hanging the
	// caller forever when the port has no read timeout.
	for i := 0; i < 4096; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, errors.Wrap(err, errors.ErrConnection, "read sync byte")
		}
		if b[0] == frameSync {
			break
		}
		if i == 4095 {
			return nil, errors.Protocolf("no sync byte in 4096 bytes of input")
		}
	}
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection, "read length byte")
	}
	paylen := int(b[0])
	if paylen == 0 || paylen > frameMaxPaylen {
		return nil, errors.Protocolf("frame length %d outside [1, %d]", paylen, frameMaxPaylen)
	}
	buf := make([]byte, paylen+1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection, "read frame body")
	}
	crc := crc8.Init(crcTable)
	crc = crc8.Update(crc, []byte{byte(paylen)}, crcTable)
	crc = crc8.Update(crc, buf[:paylen], crcTable)
	crc = crc8.Complete(crc, crcTable)
	if crc != buf[paylen] {
		return nil, errors.Protocolf("frame crc mismatch: computed 0x%02x, received 0x%02x", crc, buf[paylen])
	}
	return buf[:paylen], nil
}

// Transfer sends one exchange to the remote side and returns its
// response payload.
func (s *SerialBridge) Transfer(tx []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil, errors.NoTransport()
	}
	frame, err := encodeFrame(tx)
	if err != nil {
		return nil, err
	}
	if _, err := s.port.Write(frame); err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection, "write frame")
	}
	resp, err := decodeFrame(s.port)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("exchange: tx % 02x rx % 02x", tx, resp)
	return resp, nil
}

// Close releases the serial port.
func (s *SerialBridge) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
