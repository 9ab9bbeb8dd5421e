package availability

import (
	"context"
	"fmt"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/errors"
	"github.com/synapsehq/synapse-api/pkg/logger"
)

// SlotInvalidator drops cached slot grids for a psychologist after their
// windows change.
type SlotInvalidator interface {
	InvalidateSlots(psychologistID int64)
}

// Service manages the weekly recurring availability windows that drive
// slot computation and booking validation.
type Service struct {
	windows       repository.AvailabilityRepository
	psychologists repository.PsychologistRepository
	slots         SlotInvalidator
	logger        *logger.Logger
}

func NewService(windows repository.AvailabilityRepository, psychologists repository.PsychologistRepository, slots SlotInvalidator, logger *logger.Logger) *Service {
	return &Service{
		windows:       windows,
		psychologists: psychologists,
		slots:         slots,
		logger:        logger,
	}
}

func (s *Service) invalidateSlots(psychologistID int64) {
	if s.slots != nil {
		s.slots.InvalidateSlots(psychologistID)
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAvailabilityRequest) (*model.AvailabilityWindow, error) {
	if _, err := s.psychologists.Get(ctx, req.PsychologistID); err != nil {
		return nil, err
	}

	day := *req.DayOfWeek
	if day < 0 || day > 6 {
		return nil, errors.Validation("day_of_week must be between 0 (Monday) and 6 (Sunday)", "day_of_week")
	}

	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, errors.Validation("start_time must be in HH:MM format", "start_time")
	}
	end, err := model.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, errors.Validation("end_time must be in HH:MM format", "end_time")
	}
	if start >= end {
		return nil, errors.Validation("start_time must be before end_time", "start_time")
	}

	window := &model.AvailabilityWindow{
		PsychologistID: req.PsychologistID,
		DayOfWeek:      day,
		StartTime:      start,
		EndTime:        end,
		IsActive:       true,
	}

	if err := s.checkOverlap(ctx, window, 0); err != nil {
		return nil, err
	}

	if err := s.windows.Create(ctx, window); err != nil {
		return nil, err
	}
	s.invalidateSlots(window.PsychologistID)

	s.logger.Info("availability window created",
		"window_id", window.ID,
		"psychologist_id", window.PsychologistID,
		"day_of_week", window.DayOfWeek,
	)
	return window, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.AvailabilityWindow, error) {
	return s.windows.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.AvailabilityWindow, error) {
	return s.windows.List(ctx)
}

func (s *Service) ListByPsychologist(ctx context.Context, psychologistID int64) ([]*model.AvailabilityWindow, error) {
	if _, err := s.psychologists.Get(ctx, psychologistID); err != nil {
		return nil, err
	}
	return s.windows.ListByPsychologist(ctx, psychologistID)
}

// Update applies partial changes. When the resulting window is active it is
// re-validated against its active siblings, so a time change cannot smuggle
// in an overlap.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateAvailabilityRequest) (*model.AvailabilityWindow, error) {
	window, err := s.windows.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		start, err := model.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return nil, errors.Validation("start_time must be in HH:MM format", "start_time")
		}
		window.StartTime = start
	}
	if req.EndTime != nil {
		end, err := model.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			return nil, errors.Validation("end_time must be in HH:MM format", "end_time")
		}
		window.EndTime = end
	}
	if window.StartTime >= window.EndTime {
		return nil, errors.Validation("start_time must be before end_time", "start_time")
	}
	if req.IsActive != nil {
		window.IsActive = *req.IsActive
	}

	if window.IsActive {
		if err := s.checkOverlap(ctx, window, window.ID); err != nil {
			return nil, err
		}
	}

	if err := s.windows.Update(ctx, window); err != nil {
		return nil, err
	}
	s.invalidateSlots(window.PsychologistID)
	return window, nil
}

func (s *Service) Activate(ctx context.Context, id int64) (*model.AvailabilityWindow, error) {
	window, err := s.windows.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !window.IsActive {
		if err := s.checkOverlap(ctx, window, window.ID); err != nil {
			return nil, err
		}
		window.IsActive = true
		if err := s.windows.Update(ctx, window); err != nil {
			return nil, err
		}
		s.invalidateSlots(window.PsychologistID)
	}
	return window, nil
}

func (s *Service) Deactivate(ctx context.Context, id int64) (*model.AvailabilityWindow, error) {
	window, err := s.windows.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if window.IsActive {
		window.IsActive = false
		if err := s.windows.Update(ctx, window); err != nil {
			return nil, err
		}
		s.invalidateSlots(window.PsychologistID)
	}
	return window, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	window, err := s.windows.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.windows.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSlots(window.PsychologistID)
	return nil
}

// checkOverlap rejects a window that intersects any active sibling on the
// same weekday. Intervals are half-open, so back to back windows are fine.
func (s *Service) checkOverlap(ctx context.Context, window *model.AvailabilityWindow, excludeID int64) error {
	siblings, err := s.windows.ListByPsychologist(ctx, window.PsychologistID)
	if err != nil {
		return err
	}
	for _, other := range siblings {
		if other.ID == excludeID || !other.IsActive || other.DayOfWeek != window.DayOfWeek {
			continue
		}
		if window.Overlaps(other) {
			return errors.Conflict(fmt.Sprintf(
				"window overlaps an existing availability from %s to %s",
				other.StartTime, other.EndTime,
			))
		}
	}
	return nil
}
