package api

import (
	"errors"
	"fmt"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// MaxFirePerCommand - предел выстрелов в одной команде
const MaxFirePerCommand = 10

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p FirePayload) Validate() error {
	if p.Count < 1 || p.Count > MaxFirePerCommand {
		return fmt.Errorf("fire count must be in [1, %d], got %d", MaxFirePerCommand, p.Count)
	}
	return nil
}

func (p WeaponPayload) Validate() error {
	if p.Weapon < domain.MinWeapon || p.Weapon > domain.MaxWeapon {
		return errors.New("weapon must be in [1, 7]")
	}
	return nil
}
