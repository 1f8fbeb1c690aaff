package entity

// Settings มีแถวเดียวเสมอ (id = 1) แก้ได้เฉพาะ admin
type Settings struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyName string `gorm:"default:'Graviti Pharmaceuticals'" json:"companyName"`
	LogoPath    string `gorm:"default:'/images/default-logo.png'" json:"logoPath"`

	// LDAP (ไม่ตั้งค่า = ใช้ local auth อย่างเดียว)
	LDAPURL          string `json:"ldapUrl"`
	LDAPBaseDN       string `json:"ldapBaseDn"`
	LDAPBindDN       string `json:"ldapBindDn"`
	LDAPBindPassword string `json:"-"`

	// SMTP ขาออก
	EmailHost     string `json:"emailHost"`
	EmailPort     int    `json:"emailPort"`
	EmailUser     string `json:"emailUser"`
	EmailPassword string `json:"-"`
}
