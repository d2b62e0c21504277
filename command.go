package drawing

import (
	"fmt"
	"math"
)

// CommandKind distinguishes built-in draws from custom operations.
type CommandKind uint8

const (
	// CommandBuiltIn draws a range of the frame's index buffer.
	CommandBuiltIn CommandKind = iota
	// CommandCustom replays a registered custom operation.
	CommandCustom
)

// String returns the string representation of CommandKind.
func (k CommandKind) String() string {
	switch k {
	case CommandBuiltIn:
		return "BuiltIn"
	case CommandCustom:
		return "Custom"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// IndexRange is a half-open range of the frame's index buffer.
type IndexRange struct {
	Start, End uint32
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() uint32 {
	return r.End - r.Start
}

// Command is one entry of a compiled frame. Only the fields of its Kind are
// meaningful.
type Command struct {
	Kind      CommandKind
	ClipIndex uint32

	// CommandBuiltIn.
	Indices   IndexRange
	Constants PushConstants
	Texture   TextureID // 0 = untextured

	// CommandCustom.
	Operation OperationID
	Prepared  int
}

// mergesWith reports whether a built-in draw with the given state may extend c.
func (c *Command) mergesWith(clip uint32, texture TextureID, constants PushConstants) bool {
	return c.Kind == CommandBuiltIn &&
		c.ClipIndex == clip &&
		c.Texture == texture &&
		c.Constants.Equal(constants)
}

// CommandList holds the commands of one frame in submission order.
type CommandList struct {
	commands []Command
	limit    uint64
}

func newCommandList() *CommandList {
	return &CommandList{limit: math.MaxUint32}
}

// appendDraw records a built-in draw over indices. The draw extends the
// last command when clip, texture and constants all match; otherwise a new
// command is appended. Earlier commands are never considered.
func (l *CommandList) appendDraw(clip uint32, indices IndexRange, texture TextureID, constants PushConstants) error {
	if n := len(l.commands); n > 0 {
		last := &l.commands[n-1]
		if last.mergesWith(clip, texture, constants) && last.Indices.End == indices.Start {
			last.Indices.End = indices.End
			return nil
		}
	}
	if err := l.reserve(); err != nil {
		return err
	}
	l.commands = append(l.commands, Command{
		Kind:      CommandBuiltIn,
		ClipIndex: clip,
		Indices:   indices,
		Constants: constants,
		Texture:   texture,
	})
	return nil
}

// appendCustom records a custom operation.
func (l *CommandList) appendCustom(clip uint32, op OperationID, prepared int) error {
	if err := l.reserve(); err != nil {
		return err
	}
	l.commands = append(l.commands, Command{
		Kind:      CommandCustom,
		ClipIndex: clip,
		Operation: op,
		Prepared:  prepared,
	})
	return nil
}

func (l *CommandList) reserve() error {
	if uint64(len(l.commands)) >= l.limit {
		return fmt.Errorf("command list holds %d commands: %w", len(l.commands), ErrCapacityExceeded)
	}
	return nil
}

// Len returns the number of commands.
func (l *CommandList) Len() int {
	return len(l.commands)
}

// Commands returns the commands in submission order.
// The returned slice must not be modified.
func (l *CommandList) Commands() []Command {
	return l.commands
}

func (l *CommandList) reset() {
	l.commands = l.commands[:0]
}
