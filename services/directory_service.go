package services

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
)

// DirectoryUser = ข้อมูลผู้ใช้ที่ได้จาก LDAP
type DirectoryUser struct {
	Username   string
	Email      string
	Department string
}

// DirectoryService ตรวจ credential กับ LDAP ตามค่าใน settings
// ถ้าไม่ได้ตั้งค่า ldap_url จะคืน ErrDirectoryDisabled ให้ caller fallback
type DirectoryService struct {
	settingsRepo *repository.SettingsRepository
}

func NewDirectoryService(repo *repository.SettingsRepository) *DirectoryService {
	return &DirectoryService{settingsRepo: repo}
}

func (s *DirectoryService) Authenticate(username, password string) (*DirectoryUser, error) {
	set, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	if set.LDAPURL == "" {
		return nil, ErrDirectoryDisabled
	}

	conn, err := ldap.DialURL(set.LDAPURL)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// bind ด้วย DN ของ user ตรง ๆ (แบบเดียวกับระบบเดิม)
	dn := fmt.Sprintf("cn=%s,%s", ldap.EscapeDN(username), set.LDAPBaseDN)
	if err := conn.Bind(dn, password); err != nil {
		return nil, err
	}

	// ดึง email / department ของ user
	req := ldap.NewSearchRequest(
		dn,
		ldap.ScopeBaseObject, ldap.NeverDerefAliases, 1, 0, false,
		"(objectClass=*)",
		[]string{"cn", "mail", "department"},
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		return nil, err
	}
	if len(res.Entries) == 0 {
		return nil, ErrInvalidCredentials
	}

	entry := res.Entries[0]
	return &DirectoryUser{
		Username:   entry.GetAttributeValue("cn"),
		Email:      entry.GetAttributeValue("mail"),
		Department: entry.GetAttributeValue("department"),
	}, nil
}
