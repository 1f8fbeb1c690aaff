package services

import (
	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: repo}
}

func (s *SettingsService) Get() (*entity.Settings, error) {
	return s.settingsRepo.Get()
}

type UpdateSettingsInput struct {
	CompanyName      string `json:"company_name"`
	LDAPURL          string `json:"ldap_url"`
	LDAPBaseDN       string `json:"ldap_base_dn"`
	LDAPBindDN       string `json:"ldap_bind_dn"`
	LDAPBindPassword string `json:"ldap_bind_password"`
	EmailHost        string `json:"email_host"`
	EmailPort        int    `json:"email_port"`
	EmailUser        string `json:"email_user"`
	EmailPassword    string `json:"email_password"`
}

// Update แก้แถว settings (id=1) — password เขียนทับเฉพาะตอนส่งค่ามาไม่ว่าง
func (s *SettingsService) Update(in UpdateSettingsInput) (*entity.Settings, error) {
	updates := map[string]any{
		"company_name": in.CompanyName,
		"ldap_url":     in.LDAPURL,
		"ldap_base_dn": in.LDAPBaseDN,
		"ldap_bind_dn": in.LDAPBindDN,
		"email_host":   in.EmailHost,
		"email_port":   in.EmailPort,
		"email_user":   in.EmailUser,
	}
	if in.LDAPBindPassword != "" {
		updates["ldap_bind_password"] = in.LDAPBindPassword
	}
	if in.EmailPassword != "" {
		updates["email_password"] = in.EmailPassword
	}

	if err := s.settingsRepo.Update(updates); err != nil {
		return nil, err
	}
	return s.settingsRepo.Get()
}

func (s *SettingsService) UpdateLogo(path string) error {
	return s.settingsRepo.UpdateLogo(path)
}
