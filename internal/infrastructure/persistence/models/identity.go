package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	CompanyID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	MSCode         string              `gorm:"type:varchar(50);column:ms_code"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time          `gorm:"index"`
	LastLoginIP    string              `gorm:"type:varchar(45)"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:     m.BaseModel.ToDomain(),
		CompanyID:      m.CompanyID,
		Username:       m.Username,
		PasswordHash:   m.PasswordHash,
		DisplayName:    m.DisplayName,
		MSCode:         m.MSCode,
		Status:         m.Status,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.CompanyID = u.CompanyID
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.MSCode = u.MSCode
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}
