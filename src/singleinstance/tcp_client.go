package singleinstance

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"time"
)

// Client talks to a resident instance.
type Client struct {
	port int
}

func NewClient(port int) *Client { return &Client{port: port} }

// RequestCapture asks the resident to start a capture. delegated is false
// when nothing answered the protocol on the port.
func (c *Client) RequestCapture(ctx context.Context) (bool, error) {
	deadline := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			deadline = d
		}
	}

	addr := net.JoinHostPort(residentHost, strconv.Itoa(c.port))
	conn, err := net.DialTimeout("tcp", addr, deadline)
	if err != nil {
		return false, nil
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(deadline))

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(captureRequest); err != nil {
		return false, err
	}
	if err := w.Flush(); err != nil {
		return false, err
	}

	status, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		// Something else owns the port.
		return false, nil
	}
	switch status {
	case okResponse:
		return true, nil
	case busyResponse:
		return true, ErrBusy
	}
	return false, nil
}
