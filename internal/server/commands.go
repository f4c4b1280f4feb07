package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/pkg/api"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrQueueFull     = errors.New("input queue full")
)

// Game - то, что сервер знает о запущенной симуляции (engine.Runner)
type Game interface {
	Submit(in domain.Input) bool
	Press(fire, weapon int) bool
	Control(action domain.ActionType) bool
	Latest() domain.Snapshot
	Frame(ctx context.Context) (*image.RGBA, error)
}

// Dispatch декодирует payload команды и передает ее в игру.
// Состояние симуляции здесь не трогается: только каналы Game.
func Dispatch(g Game, cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)

	var accepted bool
	switch action {
	case domain.ActionInput:
		var p api.InputPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return err
		}
		accepted = g.Submit(p.Input())

	case domain.ActionFire:
		p := api.FirePayload{Count: 1}
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return err
		}
		accepted = g.Press(p.Count, 0)

	case domain.ActionWeapon:
		var p api.WeaponPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return err
		}
		accepted = g.Press(0, p.Weapon)

	case domain.ActionPause, domain.ActionReset:
		accepted = g.Control(action)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}

	if !accepted {
		return fmt.Errorf("%s: %w", action, ErrQueueFull)
	}
	return nil
}

// decodePayload разбирает payload (если он есть) и валидирует его
func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
	}
	if v, ok := dst.(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
	}
	return nil
}
