// Package runner orchestrates waking a sequence of targets.
package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/fgeck/homelab-wol/internal/metrics"
	"github.com/fgeck/homelab-wol/internal/models"
	"github.com/fgeck/homelab-wol/internal/services/wol"
	"github.com/rs/zerolog"
)

// ErrTargetsFailed is returned when at least one target could not be woken.
var ErrTargetsFailed = errors.New("some targets failed")

// Service defines the interface for the wakeup runner.
type Service interface {
	Run(ctx context.Context, cfg models.WakeConfig, targets iter.Seq2[models.WakeupTarget, error]) error
}

// Impl implements the runner Service interface.
type Impl struct {
	wolSvc  wol.Service
	metrics *metrics.Recorder
	logger  zerolog.Logger
	now     func() time.Time
}

// New creates a new runner service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		wolSvc:  wol.New(logger),
		metrics: metrics.New(),
		logger:  logger,
		now:     time.Now,
	}
}

// NewWithServices creates a new runner service with custom services (for testing).
func NewWithServices(logger zerolog.Logger, wolSvc wol.Service, recorder *metrics.Recorder) *Impl {
	return &Impl{
		wolSvc:  wolSvc,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

// Run wakes every target in order, pausing cfg.Wait between packets.
// Lines that fail to parse and targets that fail to wake are logged and
// skipped. A short write or a cancelled context stops the run at once.
func (s *Impl) Run(ctx context.Context, cfg models.WakeConfig, targets iter.Seq2[models.WakeupTarget, error]) error {
	startTime := s.now()
	var attempted, sent, failed int
	var runErr error

	defer func() {
		if cfg.MetricsFile == "" {
			return
		}
		if err := s.metrics.WriteTextfile(cfg.MetricsFile, s.now()); err != nil {
			s.logger.Error().Err(err).Msg("failed to write metrics")
		}
	}()

	for target, err := range targets {
		if err != nil {
			failed++
			s.metrics.ParseErrors.Inc()
			s.logger.Error().Err(err).Msg("skipping invalid wakeup line")
			continue
		}

		if attempted > 0 && cfg.Wait > 0 {
			if err := s.wait(ctx, cfg.Wait); err != nil {
				runErr = err
				break
			}
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		attempted++
		result, err := s.wolSvc.Wake(ctx, target, cfg)
		if err != nil {
			s.metrics.SendErrors.Inc()
			s.logger.Error().
				Err(err).
				Str("mac", target.HardwareAddress().String()).
				Msg("aborting run")
			runErr = fmt.Errorf("waking %s: %w", target.HardwareAddress(), err)
			break
		}
		if result.Error != nil {
			failed++
			s.metrics.SendErrors.Inc()
			s.logger.Error().
				Err(result.Error).
				Str("mac", target.HardwareAddress().String()).
				Msg("failed to wake up target")
			continue
		}

		sent++
		s.metrics.PacketsSent.Inc()
		s.logger.Info().
			Str("mac", target.HardwareAddress().String()).
			Str("address", result.Address.String()).
			Dur("duration", result.Duration).
			Msg("magic packet sent")
	}

	s.logger.Info().
		Int("sent", sent).
		Int("failed", failed).
		Dur("duration", s.now().Sub(startTime)).
		Msg("wakeup run finished")

	if runErr != nil {
		return runErr
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTargetsFailed, failed, sent+failed)
	}
	return nil
}

func (s *Impl) wait(ctx context.Context, d time.Duration) error {
	s.logger.Debug().Dur("wait", d).Msg("waiting before next packet")
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
