package models

import (
	"time"
)

// ProductionLog records one production run: how many material units
// came out and how many raw units each input industry supplied.
type ProductionLog struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	TeamID             uint      `gorm:"not null;index" json:"team_id"`
	UnitsProduced      int       `gorm:"not null" json:"units_produced"`
	CementUnitsUsed    int       `gorm:"not null;default:0" json:"cement_units_used"`
	EnergyUnitsUsed    int       `gorm:"not null;default:0" json:"energy_units_used"`
	IronUnitsUsed      int       `gorm:"not null;default:0" json:"iron_units_used"`
	AluminiumUnitsUsed int       `gorm:"not null;default:0" json:"aluminium_units_used"`
	WoodUnitsUsed      int       `gorm:"not null;default:0" json:"wood_units_used"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName specifies the table name for ProductionLog model
func (ProductionLog) TableName() string {
	return "production_logs"
}

// SetInputUsed records the raw units consumed from one input industry.
func (p *ProductionLog) SetInputUsed(industry string, units int) {
	switch industry {
	case IndustryCement:
		p.CementUnitsUsed = units
	case IndustryEnergy:
		p.EnergyUnitsUsed = units
	case IndustryIron:
		p.IronUnitsUsed = units
	case IndustryAluminium:
		p.AluminiumUnitsUsed = units
	case IndustryWood:
		p.WoodUnitsUsed = units
	}
}

// InputsUsed returns the per-industry raw units consumed, omitting zeroes.
func (p *ProductionLog) InputsUsed() map[string]int {
	inputs := map[string]int{
		IndustryCement:    p.CementUnitsUsed,
		IndustryEnergy:    p.EnergyUnitsUsed,
		IndustryIron:      p.IronUnitsUsed,
		IndustryAluminium: p.AluminiumUnitsUsed,
		IndustryWood:      p.WoodUnitsUsed,
	}
	for ind, units := range inputs {
		if units == 0 {
			delete(inputs, ind)
		}
	}
	return inputs
}

// ProduceRequest is the payload for a production run
type ProduceRequest struct {
	Units int `json:"units" binding:"required"`
}

// ProductionRequirement is one line of the production preview: what one
// input industry must supply versus what the team actually holds.
type ProductionRequirement struct {
	Industry   string `json:"industry"`
	Required   int    `json:"required"`
	Available  int    `json:"available"`
	Sufficient bool   `json:"sufficient"`
}
