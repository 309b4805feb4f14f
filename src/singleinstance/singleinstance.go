package singleinstance

import (
	"context"
	"errors"
	"log"
)

const residentHost = "127.0.0.1"

// Protocol lines. A second launch sends captureRequest and the resident
// answers okResponse once the capture is queued.
const (
	captureRequest = "CAPTURE\n"
	okResponse     = "OK\n"
	busyResponse   = "BUSY\n"
)

// ErrResidentRunning is returned by Acquire when another instance owns the
// port and accepted the request.
var ErrResidentRunning = errors.New("singleinstance: resident already running")

// ErrBusy is returned by Client.RequestCapture when the resident answered
// but its request queue was full.
var ErrBusy = errors.New("singleinstance: resident is busy")

// Acquire makes this process the resident instance. If another instance
// already listens on port, it is asked to start a capture and
// ErrResidentRunning is returned so the caller can exit.
func Acquire(ctx context.Context, port int) (*Server, error) {
	srv := NewServer(port)
	err := srv.Start(ctx)
	if err == nil {
		return srv, nil
	}

	delegated, derr := NewClient(port).RequestCapture(ctx)
	if delegated {
		if derr != nil {
			log.Printf("singleinstance: %v", derr)
		}
		return nil, ErrResidentRunning
	}
	if derr != nil {
		return nil, errors.Join(err, derr)
	}
	return nil, err
}
