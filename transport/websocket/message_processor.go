package websocket

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opBinary       byte = 0x2
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xA
)

const (
	maxMessageSize     = 64 << 10
	maxControlPayload  = 125
	closeProtocolError = 1002
)

var (
	ErrMessageTooLarge  = errors.New("websocket message is too large")
	ErrConnectionClosed = errors.New("websocket connection closed by peer")
	ErrProtocol         = errors.New("websocket protocol violation")
)

// frame is one websocket frame. Client frames carry a mask, server frames never do.
type frame struct {
	fin     bool
	opCode  byte
	mask    []byte
	payload []byte
}

func writeFrame(w *bufio.Writer, f frame) error {
	header := make([]byte, 2, 14)
	header[0] = f.opCode

	if f.fin {
		header[0] |= 0x80
	}

	length := len(f.payload)

	switch {
	case length < 126:
		header[1] = byte(length)
	case length < 1<<16:
		header[1] = 126
		header = binary.BigEndian.AppendUint16(header, uint16(length))
	default:
		header[1] = 127
		header = binary.BigEndian.AppendUint64(header, uint64(length))
	}

	payload := f.payload
	if f.mask != nil {
		header[1] |= 0x80
		header = append(header, f.mask...)
		payload = applyMask(append([]byte(nil), payload...), f.mask)
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame payload: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

func readFrame(r *bufio.Reader) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	f := frame{
		fin:    header[0]&0x80 != 0,
		opCode: header[0] & 0x0f,
	}

	length, err := readPayloadLength(r, header[1]&0x7f)
	if err != nil {
		return frame{}, err
	}

	if length > maxMessageSize {
		return frame{}, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, length)
	}

	if header[1]&0x80 != 0 {
		f.mask = make([]byte, 4)
		if _, err = io.ReadFull(r, f.mask); err != nil {
			return frame{}, fmt.Errorf("failed to read mask: %w", err)
		}
	}

	f.payload = make([]byte, length)
	if _, err = io.ReadFull(r, f.payload); err != nil {
		return frame{}, fmt.Errorf("failed to read payload: %w", err)
	}

	if f.mask != nil {
		applyMask(f.payload, f.mask)
	}

	return f, nil
}

func readPayloadLength(r *bufio.Reader, payloadLen byte) (uint64, error) {
	switch payloadLen {
	case 126:
		length := make([]byte, 2)
		if _, err := io.ReadFull(r, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}

		return uint64(binary.BigEndian.Uint16(length)), nil

	case 127:
		length := make([]byte, 8)
		if _, err := io.ReadFull(r, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}

		return binary.BigEndian.Uint64(length), nil

	default:
		return uint64(payloadLen), nil
	}
}

func closePayload(code uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, code)
}

func applyMask(payload, mask []byte) []byte {
	for i := range payload {
		payload[i] ^= mask[i%4]
	}

	return payload
}
