package singleinstance

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"sync"
	"time"
)

// Server owns the loopback port and turns client requests into capture
// signals.
type Server struct {
	port     int
	lis      net.Listener
	requests chan struct{}

	closeOnce sync.Once
}

func NewServer(port int) *Server {
	return &Server{port: port, requests: make(chan struct{}, 4)}
}

// Start binds the port. A bind failure usually means another resident.
func (s *Server) Start(ctx context.Context) error {
	if s.lis != nil {
		return nil
	}
	addr := net.JoinHostPort(residentHost, strconv.Itoa(s.port))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("singleinstance: failed to bind %s: %v", addr, err)
		return fmt.Errorf("bind %s: %w", addr, err)
	}
	s.lis = lis
	s.port = lis.Addr().(*net.TCPAddr).Port
	log.Printf("singleinstance: listening on %s", lis.Addr())
	go s.acceptLoop(ctx)
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()
	return nil
}

// Port returns the bound port, or the configured one before Start.
func (s *Server) Port() int { return s.port }

// Requests delivers one value per accepted capture request.
func (s *Server) Requests() <-chan struct{} { return s.requests }

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		c, err := s.lis.Accept()
		if err != nil {
			return
		}
		s.handle(ctx, c)
	}
}

func (s *Server) handle(ctx context.Context, c net.Conn) {
	defer c.Close()
	remote := c.RemoteAddr().String()
	_ = c.SetDeadline(time.Now().Add(3 * time.Second))

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil || line != captureRequest {
		log.Printf("singleinstance: ignoring request %q from %s", line, remote)
		return
	}

	resp := okResponse
	select {
	case s.requests <- struct{}{}:
		log.Printf("singleinstance: capture requested by %s", remote)
	case <-ctx.Done():
		return
	default:
		resp = busyResponse
	}
	w := bufio.NewWriter(c)
	_, _ = w.WriteString(resp)
	_ = w.Flush()
}

// Close stops accepting clients.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.lis != nil {
			err = s.lis.Close()
		}
	})
	return err
}
