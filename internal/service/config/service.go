package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	configRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/config"
	"github.com/m04kA/ReDe-ReservationService/internal/service/config/models"
)

// Service сервис для работы с часами работы сооружений
type Service struct {
	configRepo ConfigRepository
	rules      domain.BookingRules
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	rules domain.BookingRules,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		rules:      rules,
		logger:     logger,
	}
}

// List возвращает все сооружения с их часами работы
// Публичный метод, сооружения без записи в БД получают значения по умолчанию
func (s *Service) List(ctx context.Context) (*models.ConfigListResponse, error) {
	s.logger.Info("List: fetching facility configs")

	configs, err := s.configRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	stored := make(map[domain.Facility]*domain.FacilityConfig, len(configs))
	for _, c := range configs {
		stored[c.Facility] = c
	}

	resp := &models.ConfigListResponse{
		Facilities: make([]models.ConfigResponse, 0, len(domain.AllFacilities)),
	}
	for _, facility := range domain.AllFacilities {
		if c, ok := stored[facility]; ok {
			resp.Facilities = append(resp.Facilities, *models.FromDomainConfig(c, false))
			continue
		}
		resp.Facilities = append(resp.Facilities, *models.FromDomainConfig(s.rules.DefaultFacilityConfig(facility), true))
	}

	return resp, nil
}

// Get получает часы работы сооружения
func (s *Service) Get(ctx context.Context, facilityCode string) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for facility=%s", facilityCode)

	facility, err := domain.ParseFacility(facilityCode)
	if err != nil {
		s.logger.Warn("Get: unknown facility %q", facilityCode)
		return nil, ErrFacilityNotFound
	}

	config, isDefault, err := s.getOrDefault(ctx, facility)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConfig(config, isDefault), nil
}

// Update обновляет часы работы сооружения
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, facilityCode string, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for facility=%s", facilityCode)

	// 1. Проверяем сооружение
	facility, err := domain.ParseFacility(facilityCode)
	if err != nil {
		s.logger.Warn("Update: unknown facility %q", facilityCode)
		return nil, ErrFacilityNotFound
	}

	// 2. Получаем текущую конфигурацию
	current, _, err := s.getOrDefault(ctx, facility)
	if err != nil {
		return nil, err
	}

	// 3. Применяем обновления к копии
	updated := *current
	if req.OpenTime != nil {
		hour, err := models.ParseHour(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
		}
		updated.OpenHour = hour
	}
	if req.CloseTime != nil {
		hour, err := models.ParseHour(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
		}
		updated.CloseHour = hour
	}
	if req.IsOpen != nil {
		updated.IsOpen = *req.IsOpen
	}

	// 4. Валидируем итоговые часы
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for facility=%s: %v", facility, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 5. Сохраняем
	saved, err := s.configRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error for facility=%s: %v", facility, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: facility=%s now %s-%s, open=%t",
		facility, domain.FormatHour(saved.OpenHour), domain.FormatHour(saved.CloseHour), saved.IsOpen)
	return models.FromDomainConfig(saved, false), nil
}

// getOrDefault возвращает сохраненную конфигурацию или значения по умолчанию
func (s *Service) getOrDefault(ctx context.Context, facility domain.Facility) (*domain.FacilityConfig, bool, error) {
	config, err := s.configRepo.GetByFacility(ctx, facility)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return s.rules.DefaultFacilityConfig(facility), true, nil
		}
		s.logger.Error("getOrDefault: repository error for facility=%s: %v", facility, err)
		return nil, false, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return config, false, nil
}
