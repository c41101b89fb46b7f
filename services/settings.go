package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/shared"
)

// SettingsService manages site-wide switches, currently maintenance
// mode. The flag lives in the settings table and is cached in Redis so
// the public routes don't hit postgres on every request.
type SettingsService struct {
	appContext.DefaultService

	sqlSvc   *PostgresService
	redisSvc *RedisService
}

const (
	SETTINGS_SVC = "settings_svc"

	maintenanceCacheKey = "settings:maintenance"
	maintenanceCacheTTL = 30 * time.Second

	maintenanceOn  = "on"
	maintenanceOff = "off"
)

func (svc SettingsService) Id() string {
	return SETTINGS_SVC
}

func (svc *SettingsService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// MaintenanceStatus reports whether the site is in maintenance mode and
// the message to show. Cache misses fall through to the database; a
// failing database reads as "not in maintenance" so an outage of the
// settings table can't take the whole site down.
func (svc *SettingsService) MaintenanceStatus(ctx context.Context) dto.MaintenanceResponse {
	if cached, err := svc.redisSvc.Get(ctx, maintenanceCacheKey); err == nil && cached != "" {
		if cached == maintenanceOff {
			return dto.MaintenanceResponse{Enabled: false}
		}
		return dto.MaintenanceResponse{Enabled: true, Message: svc.maintenanceMessage()}
	}

	value, err := svc.sqlSvc.GetSetting(shared.SettingMaintenanceMode)
	if err != nil {
		log.WithError(err).Warn("Failed to read maintenance mode setting")
		return dto.MaintenanceResponse{Enabled: false}
	}

	state := maintenanceOff
	if value == maintenanceOn {
		state = maintenanceOn
	}
	if err := svc.redisSvc.Set(ctx, maintenanceCacheKey, state, maintenanceCacheTTL); err != nil {
		log.WithError(err).Debug("Failed to cache maintenance mode")
	}

	if state == maintenanceOn {
		return dto.MaintenanceResponse{Enabled: true, Message: svc.maintenanceMessage()}
	}
	return dto.MaintenanceResponse{Enabled: false}
}

// SetMaintenance flips maintenance mode and invalidates the cache.
func (svc *SettingsService) SetMaintenance(ctx context.Context, enabled bool, message string) error {
	value := maintenanceOff
	if enabled {
		value = maintenanceOn
	}

	if err := svc.sqlSvc.SaveSetting(shared.SettingMaintenanceMode, value); err != nil {
		return err
	}
	if message != "" {
		if err := svc.sqlSvc.SaveSetting(shared.SettingMaintenanceMessage, message); err != nil {
			return err
		}
	}

	if err := svc.redisSvc.Delete(ctx, maintenanceCacheKey); err != nil {
		log.WithError(err).Debug("Failed to invalidate maintenance cache")
	}
	return nil
}

func (svc *SettingsService) maintenanceMessage() string {
	message, err := svc.sqlSvc.GetSetting(shared.SettingMaintenanceMessage)
	if err != nil || message == "" {
		return "Die Seite befindet sich im Wartungsmodus. Bitte versuchen Sie es später erneut."
	}
	return message
}
