package models

import (
	"time"
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusAviso   Status = "aviso"
	StatusErro    Status = "erro"
	StatusReparo  Status = "reparo"
)

// Statuses lists every status in dashboard order.
var Statuses = []Status{StatusOnline, StatusOffline, StatusAviso, StatusErro, StatusReparo}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type Camera struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	Name                string    `json:"name" gorm:"not null"`
	IP                  string    `json:"ip" gorm:"column:ip;not null"`
	Serial              string    `json:"serial" gorm:"not null"`
	Location            string    `json:"location" gorm:"not null"`
	Store               string    `json:"store" gorm:"not null"`
	Status              Status    `json:"status" gorm:"type:varchar(16);not null;default:offline"`
	ChannelsTotal       int       `json:"channels_total" gorm:"not null;default:0"`
	ChannelsWorking     int       `json:"channels_working" gorm:"not null;default:0"`
	ChannelsBlackscreen int       `json:"channels_blackscreen" gorm:"not null;default:0"`
	CreatedAt           time.Time `json:"created_at" gorm:"index"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Camera) TableName() string {
	return "cameras"
}

// Channels returns the channel health counters of the camera.
func (c Camera) Channels() Channels {
	return Channels{
		Total:       c.ChannelsTotal,
		Working:     c.ChannelsWorking,
		Blackscreen: c.ChannelsBlackscreen,
	}
}

type Channels struct {
	Total       int `json:"total"`
	Working     int `json:"working"`
	Blackscreen int `json:"blackscreen"`
}

// CameraFormData is a complete, client-supplied camera.
type CameraFormData struct {
	Name                string `json:"name" validate:"required,min=1"`
	IP                  string `json:"ip" validate:"required,min=1"`
	Serial              string `json:"serial" validate:"required,min=1"`
	Location            string `json:"location" validate:"required,min=1"`
	Store               string `json:"store" validate:"required,min=1"`
	Status              Status `json:"status" validate:"required,oneof=online offline aviso erro reparo"`
	ChannelsTotal       int    `json:"channels_total" validate:"min=0"`
	ChannelsWorking     int    `json:"channels_working" validate:"min=0"`
	ChannelsBlackscreen int    `json:"channels_blackscreen" validate:"min=0"`
}

// CameraPatch is a partial camera; nil fields are absent from the request.
type CameraPatch struct {
	Name                *string `json:"name,omitempty" validate:"omitempty,min=1"`
	IP                  *string `json:"ip,omitempty" validate:"omitempty,min=1"`
	Serial              *string `json:"serial,omitempty" validate:"omitempty,min=1"`
	Location            *string `json:"location,omitempty" validate:"omitempty,min=1"`
	Store               *string `json:"store,omitempty" validate:"omitempty,min=1"`
	Status              *Status `json:"status,omitempty" validate:"omitempty,oneof=online offline aviso erro reparo"`
	ChannelsTotal       *int    `json:"channels_total,omitempty" validate:"omitempty,min=0"`
	ChannelsWorking     *int    `json:"channels_working,omitempty" validate:"omitempty,min=0"`
	ChannelsBlackscreen *int    `json:"channels_blackscreen,omitempty" validate:"omitempty,min=0"`
}

// FieldUpdate is one column assignment of a partial update.
type FieldUpdate struct {
	Column string
	Value  any
}

// Fields returns the present fields in fixed column order.
func (p CameraPatch) Fields() []FieldUpdate {
	var fields []FieldUpdate
	if p.Name != nil {
		fields = append(fields, FieldUpdate{Column: "name", Value: *p.Name})
	}
	if p.IP != nil {
		fields = append(fields, FieldUpdate{Column: "ip", Value: *p.IP})
	}
	if p.Serial != nil {
		fields = append(fields, FieldUpdate{Column: "serial", Value: *p.Serial})
	}
	if p.Location != nil {
		fields = append(fields, FieldUpdate{Column: "location", Value: *p.Location})
	}
	if p.Store != nil {
		fields = append(fields, FieldUpdate{Column: "store", Value: *p.Store})
	}
	if p.Status != nil {
		fields = append(fields, FieldUpdate{Column: "status", Value: string(*p.Status)})
	}
	if p.ChannelsTotal != nil {
		fields = append(fields, FieldUpdate{Column: "channels_total", Value: *p.ChannelsTotal})
	}
	if p.ChannelsWorking != nil {
		fields = append(fields, FieldUpdate{Column: "channels_working", Value: *p.ChannelsWorking})
	}
	if p.ChannelsBlackscreen != nil {
		fields = append(fields, FieldUpdate{Column: "channels_blackscreen", Value: *p.ChannelsBlackscreen})
	}
	return fields
}

// Empty reports whether no field is present.
func (p CameraPatch) Empty() bool {
	return len(p.Fields()) == 0
}

// Apply copies the present fields onto c.
func (p CameraPatch) Apply(c *Camera) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.IP != nil {
		c.IP = *p.IP
	}
	if p.Serial != nil {
		c.Serial = *p.Serial
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Store != nil {
		c.Store = *p.Store
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.ChannelsTotal != nil {
		c.ChannelsTotal = *p.ChannelsTotal
	}
	if p.ChannelsWorking != nil {
		c.ChannelsWorking = *p.ChannelsWorking
	}
	if p.ChannelsBlackscreen != nil {
		c.ChannelsBlackscreen = *p.ChannelsBlackscreen
	}
}
