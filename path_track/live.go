package path_track

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"path-tracking/internal/log"
)

// summaryEvery is the number of seconds between episode summary log lines.
const summaryEvery = 10.0

// stopLabel is reported in place of a controller name when the vehicle is stopped.
const stopLabel = "Stop"

// RunLive starts the UDP-to-UDP control loop and runs until ctx is done.
func RunLive(ctx context.Context, cfg AppConfig) (err error) {
	if cfg.Hz <= 0 {
		return fmt.Errorf("hz must be > 0")
	}
	if cfg.Live.UDPAddr == "" {
		return fmt.Errorf("live.udp_addr must be set")
	}
	if len(cfg.Path) == 0 {
		return fmt.Errorf("path: %w", ErrInvalidPath)
	}

	controller, err := NewController(cfg.Controller)
	if err != nil {
		return err
	}

	store := &liveStore{}
	conn, err := startUDPListener(cfg.Live, store)
	if err != nil {
		return err
	}
	sender, err := NewOutputSender(cfg.Output.UDPAddr)
	if err != nil {
		return multierr.Append(err, conn.Close())
	}
	defer func() {
		err = multierr.Combine(err, sender.Close(), conn.Close())
	}()
	telemetry, err := StartTelemetry(cfg.Telemetry)
	if err != nil {
		return err
	}

	episode := uuid.NewString()
	logger := log.With("episode", episode, "controller", cfg.Controller.Type)
	telemetry.SetEpisode(episode)
	logger.Infow("control loop started", "hz", cfg.Hz, "waypoints", len(cfg.Path), "live", cfg.Live.UDPAddr)

	tracker := NewStateTracker(cfg.State)
	metrics := &TrackingMetrics{}
	info, hasInfo := controller.(InfoProvider)

	dtTarget := 1.0 / cfg.Hz
	t0 := time.Now()
	lastSummary := 0.0
	var lastSeq uint64

	for {
		if ctx.Err() != nil {
			logger.Infow("control loop stopped", "summary", metrics.Summary())
			return nil
		}

		now := time.Now()
		simT := now.Sub(t0).Seconds()

		sample, hasT, seq := store.Snapshot()
		if seq != lastSeq {
			lastSeq = seq
			if !hasT {
				sample.T = simT
			}
		} else {
			sample = VehicleSample{}
		}
		st := tracker.Update(simT, sample)
		telemetry.UpdateState(st)

		cmd := StopCommand()
		label := stopLabel
		var snap *Telemetry
		if st.Valid {
			out, stepErr := controller.RunStep(st.Pose, st.Velocity, cfg.Path)
			if stepErr != nil {
				logger.Warnw("control step failed", "err", stepErr)
			} else {
				cmd = out
				label = controllerLabel(controller)
				if hasInfo {
					i := info.Info()
					snap = &i
					label = i.ActiveController
				}
				if err := metrics.Record(st.Pose, st.Velocity, cfg.Path, cmd, label, snap); err != nil {
					logger.Warnw("metrics record failed", "err", err)
				}
			}
		}

		if err := sender.Send(cmd, label); err != nil {
			logger.Debugw("send failed", "err", err)
		}
		telemetry.UpdateCommand(cmd, snap)

		if cfg.Log.Enabled {
			logger.Debugw("tick",
				"t", st.T,
				"active", label,
				"x", st.Pose.Position.X,
				"y", st.Pose.Position.Y,
				"yaw", st.Pose.Heading,
				"speed", Speed(st.Velocity),
				"age", st.Age,
				"valid", st.Valid,
				"steer", cmd.Steer,
				"throttle", cmd.Throttle,
				"brake", cmd.Brake,
			)
		}
		if simT-lastSummary >= summaryEvery && metrics.Steps() > 0 {
			lastSummary = simT
			logger.Infow("tracking summary", "summary", metrics.Summary())
		}

		elapsed := time.Since(now).Seconds()
		sleep := max(0, dtTarget-elapsed)
		select {
		case <-ctx.Done():
		case <-time.After(time.Duration(sleep * float64(time.Second))):
		}
	}
}

// controllerLabel names a standalone tracker the same way the hybrid
// controller reports its active policy.
func controllerLabel(c Controller) string {
	switch c.(type) {
	case *PurePursuit:
		return PolicyPurePursuit.String()
	case *Stanley:
		return PolicyStanley.String()
	case *Hybrid:
		return PolicyHybrid.String()
	default:
		return fmt.Sprintf("%T", c)
	}
}

type liveStore struct {
	mu       sync.RWMutex
	last     VehicleSample
	lastHasT bool
	seq      uint64
}

// Update stores the latest sample and advances the sequence counter.
func (s *liveStore) Update(sample VehicleSample, hasT bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = sample
	s.lastHasT = hasT
	s.seq++
}

// Snapshot returns the most recent sample and metadata.
func (s *liveStore) Snapshot() (VehicleSample, bool, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastHasT, s.seq
}

// startUDPListener spawns a goroutine that listens for vehicle state packets.
// The goroutine exits when the returned connection is closed.
func startUDPListener(cfg LiveConfig, store *liveStore) (*net.UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp", cfg.UDPAddr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, err
	}

	bufSize := cfg.ReadBuffer
	if bufSize <= 0 {
		bufSize = 2048
	}

	go func() {
		buf := make([]byte, bufSize)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if err != nil {
				continue
			}
			sample, hasT, err := parseVehicleSample(buf[:n])
			if err != nil {
				log.Debug("dropping vehicle packet", "err", err)
				continue
			}
			store.Update(sample, hasT)
		}
	}()

	return conn, nil
}

// parseVehicleSample parses "[t,]x,y,z,yaw,vx,vy,vz" CSV payloads.
// yaw is in radians.
func parseVehicleSample(b []byte) (VehicleSample, bool, error) {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return VehicleSample{}, false, errors.New("empty payload")
	}

	parts := strings.Split(s, ",")
	if len(parts) != 7 && len(parts) != 8 {
		return VehicleSample{}, false, fmt.Errorf("expected 7 or 8 fields, got %d", len(parts))
	}

	var t float64
	hasT := len(parts) == 8
	if hasT {
		v, err := parseF64(parts[0])
		if err != nil {
			return VehicleSample{}, false, err
		}
		t = v
		parts = parts[1:]
	}

	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseF64(p)
		if err != nil {
			return VehicleSample{}, false, fmt.Errorf("field %d: %w", i, err)
		}
		vals[i] = v
	}

	sample := VehicleSample{
		T:        t,
		Received: true,
		Pose: Pose{
			Position: r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]},
			Heading:  WrapAngle(vals[3]),
		},
		Velocity: r3.Vector{X: vals[4], Y: vals[5], Z: vals[6]},
	}
	return sample, hasT, nil
}

// parseF64 parses a float from a CSV field.
func parseF64(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
