package game

import (
	"chosenoffset.com/slatcaster/internal/control"
	"chosenoffset.com/slatcaster/internal/render"
)

// keyBindings maps each key to its command. Arrow keys mirror WASD.
var keyBindings = []struct {
	key render.Key
	cmd control.Command
}{
	{render.KeyW, control.Forward},
	{render.KeyUp, control.Forward},
	{render.KeyS, control.Backward},
	{render.KeyDown, control.Backward},
	{render.KeyA, control.TurnLeft},
	{render.KeyLeft, control.TurnLeft},
	{render.KeyD, control.TurnRight},
	{render.KeyRight, control.TurnRight},
	{render.KeyPlus, control.Widen},
	{render.KeyMinus, control.Narrow},
}

// pendingCommands returns the commands for keys pressed this tick, one per
// command even when two keys share it.
func pendingCommands(input render.InputManager) []control.Command {
	var cmds []control.Command
	seen := make(map[control.Command]bool)
	for _, b := range keyBindings {
		if seen[b.cmd] || !input.IsKeyJustPressed(b.key) {
			continue
		}
		seen[b.cmd] = true
		cmds = append(cmds, b.cmd)
	}
	return cmds
}
