package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID.IsNil() {
		return errors.New("itemId is required")
	}
	if p.Count < 0 {
		return errors.New("count cannot be negative")
	}
	return nil
}

func (p UsePayload) Validate() error {
	if p.ItemID.IsNil() {
		return errors.New("itemId is required")
	}
	if !p.TargetID.IsNil() && p.Tile != nil {
		return errors.New("targetId and tile are mutually exclusive")
	}
	return nil
}

func (p TakePayload) Validate() error {
	if p.ChestID.IsNil() || p.ItemID.IsNil() {
		return errors.New("chestId and itemId are required")
	}
	return nil
}

func (p PortalPayload) Validate() error {
	switch strings.ToLower(p.Direction) {
	case "up", "down":
		return nil
	}
	return errors.New("direction must be up or down")
}
