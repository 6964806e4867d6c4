package models

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/orderdesk/backend/internal/domain/company"
)

// CompanyModel is the persistence model for the Company domain entity.
// Endpoint URLs are stored as a JSON column so new commerce operations can be
// added without schema changes.
type CompanyModel struct {
	BaseModel
	Name             string         `gorm:"type:varchar(200);not null"`
	Code             string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	APIKey           string         `gorm:"type:varchar(255)"`
	Endpoints        datatypes.JSON `gorm:"type:jsonb"`
	ExtractionPrompt string         `gorm:"type:text"`
	ExtractionSchema string         `gorm:"type:text"`
	Active           bool           `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity
func (m *CompanyModel) ToDomain() (*company.Company, error) {
	var endpoints company.Endpoints
	if len(m.Endpoints) > 0 {
		if err := json.Unmarshal(m.Endpoints, &endpoints); err != nil {
			return nil, err
		}
	}

	return &company.Company{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		Code:             m.Code,
		APIKey:           m.APIKey,
		Endpoints:        endpoints,
		ExtractionPrompt: m.ExtractionPrompt,
		ExtractionSchema: m.ExtractionSchema,
		Active:           m.Active,
	}, nil
}

// FromDomain populates the persistence model from a domain Company entity
func (m *CompanyModel) FromDomain(c *company.Company) error {
	endpoints, err := json.Marshal(c.Endpoints)
	if err != nil {
		return err
	}

	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Code = c.Code
	m.APIKey = c.APIKey
	m.Endpoints = endpoints
	m.ExtractionPrompt = c.ExtractionPrompt
	m.ExtractionSchema = c.ExtractionSchema
	m.Active = c.Active
	return nil
}
