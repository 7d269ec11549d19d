package services

import (
	"strconv"

	"gebeya_backend/internal/config"
	"gebeya_backend/internal/pkg/chapa"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

type SystemConfigService interface {
	GetSystemConfig() (*dto.SystemConfigResponse, error)
	UpdateSystemConfig(req *dto.UpdateSystemConfigRequest) (*dto.SystemConfigResponse, error)
}

type systemConfigService struct {
	settingRepo repositories.SettingRepository
}

func NewSystemConfigService(settingRepo repositories.SettingRepository) SystemConfigService {
	return &systemConfigService{settingRepo: settingRepo}
}

// GetSystemConfig reports integration status without exposing secrets.
// Gateway status uses the same resolution order as payment processing,
// so the answer reflects what a webhook would actually see.
func (s *systemConfigService) GetSystemConfig() (*dto.SystemConfigResponse, error) {
	cfg := config.GetConfig()

	_, chapaConfigured := chapa.ResolveSecret(s.settingRepo, chapa.SettingSecretKey, chapa.EnvSecretKey, cfg.Chapa.SecretKey)

	resp := &dto.SystemConfigResponse{
		APIStatus: dto.APIStatus{
			ChapaConfigured: chapaConfigured,
			SMSConfigured:   cfg.SMS.APIKey != "",
			EmailConfigured: cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" && cfg.Email.SMTPPassword != "",
		},
		FeatureFlags: s.loadFlags(),
	}
	return resp, nil
}

func (s *systemConfigService) UpdateSystemConfig(req *dto.UpdateSystemConfigRequest) (*dto.SystemConfigResponse, error) {
	flags := req.FeatureFlags

	if err := s.settingRepo.Set(repositories.SettingForceModeration, strconv.FormatBool(flags.ForceModeration)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.settingRepo.Set(repositories.SettingEnableSMSNotifications, strconv.FormatBool(flags.EnableSMSNotifications)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetSystemConfig()
}

func (s *systemConfigService) loadFlags() dto.FeatureFlags {
	var flags dto.FeatureFlags

	if v, ok := s.settingRepo.GetSetting(repositories.SettingForceModeration); ok {
		flags.ForceModeration, _ = strconv.ParseBool(v)
	}
	if v, ok := s.settingRepo.GetSetting(repositories.SettingEnableSMSNotifications); ok {
		flags.EnableSMSNotifications, _ = strconv.ParseBool(v)
	}

	return flags
}
