package path_track

import (
	"fmt"
	"net"
)

// OutputSender sends control commands over UDP as CSV.
type OutputSender struct {
	conn *net.UDPConn
}

// NewOutputSender creates a UDP sender for the given address.
func NewOutputSender(addr string) (*OutputSender, error) {
	if addr == "" {
		return &OutputSender{}, nil
	}
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	return &OutputSender{conn: conn}, nil
}

// Close releases the UDP socket.
func (s *OutputSender) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Send writes "steer,throttle,brake,controller" as a CSV payload.
func (s *OutputSender) Send(cmd ControlCommand, controller string) error {
	if s == nil || s.conn == nil {
		return nil
	}
	_, err := s.conn.Write(formatCommand(cmd, controller))
	return err
}

// formatCommand renders the CSV payload for one command.
func formatCommand(cmd ControlCommand, controller string) []byte {
	return []byte(fmt.Sprintf("%.4f,%.4f,%.4f,%s", cmd.Steer, cmd.Throttle, cmd.Brake, controller))
}
