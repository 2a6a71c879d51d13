package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/ashvale/common"
)

var abilityKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8,
}

// Input is one frame of player intent read from the keyboard.
type Input struct {
	// Move is the held direction; Moving is false when no direction key is down.
	Move   common.Direction
	Moving bool
	// Ability is the index of the ability key pressed this frame, or -1.
	Ability int

	PickUp      bool
	UsePortal   bool
	OpenChest   bool
	UseItem     bool
	EquipItem   bool
	ToggleDebug bool
	Quit        bool
}

// pollInput reads the keyboard. The most recently pressed direction wins
// when several are held.
func pollInput(last common.Direction) Input {
	in := Input{Ability: -1, Move: last}

	held := map[common.Direction]bool{
		common.Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		common.Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		common.Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		common.Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
	}
	pressed := map[common.Direction]bool{
		common.Up:    inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp),
		common.Down:  inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyDown),
		common.Left:  inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyLeft),
		common.Right: inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyRight),
	}
	for _, d := range common.Directions {
		if pressed[d] {
			in.Move = d
		}
	}
	if held[in.Move] {
		in.Moving = true
	} else {
		for _, d := range common.Directions {
			if held[d] {
				in.Move, in.Moving = d, true
				break
			}
		}
	}

	for i, k := range abilityKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Ability = i
			break
		}
	}

	in.PickUp = inpututil.IsKeyJustPressed(ebiten.KeyE)
	in.UsePortal = inpututil.IsKeyJustPressed(ebiten.KeyF)
	in.OpenChest = inpututil.IsKeyJustPressed(ebiten.KeyG)
	in.UseItem = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	in.EquipItem = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	in.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return in
}
