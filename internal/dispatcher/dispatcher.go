// Package dispatcher turns text commands into editor calls and renders the
// results through the console view. A failing command is reported and the
// session continues; only quit (or end of input) stops it.
package dispatcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/clevis/internal/editor"
	"github.com/mesh-intelligence/clevis/internal/view"
)

// Command parsing errors.
var (
	ErrUsage          = errors.New("invalid command usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// Recorder receives every executed command together with its outcome.
// A nil error means the command succeeded.
type Recorder interface {
	Record(command string, outcome error) error
}

// Dispatcher executes one command at a time against an editor.
type Dispatcher struct {
	editor    *editor.Editor
	view      *view.View
	recorder  Recorder
	logger    *slog.Logger
	tolerance float64
	running   bool
}

// New creates a Dispatcher. recorder may be nil; a nil logger uses
// slog.Default().
func New(ed *editor.Editor, v *view.View, recorder Recorder, tolerance float64, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		editor:    ed,
		view:      v,
		recorder:  recorder,
		logger:    logger,
		tolerance: tolerance,
		running:   true,
	}
}

// Running reports whether quit has not yet been executed.
func (d *Dispatcher) Running() bool {
	return d.running
}

// Run executes commands read line by line from r until quit or end of
// input. Command failures are rendered and do not stop the loop; only a
// read error is returned. Lines may be of any length.
func (d *Dispatcher) Run(r io.Reader) error {
	reader := bufio.NewReader(r)
	for d.running {
		line, err := reader.ReadString('\n')
		if line != "" {
			// Execute has already rendered any failure.
			_ = d.Execute(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read commands: %w", err)
		}
	}
	return nil
}

// Execute parses and runs a single command. Blank input is ignored. Any
// error is rendered on the view before being returned.
func (d *Dispatcher) Execute(raw string) error {
	command := strings.TrimSpace(raw)
	if command == "" {
		return nil
	}

	tokens := strings.Fields(command)
	err := d.dispatch(strings.ToLower(tokens[0]), tokens[1:])
	if err != nil {
		d.logger.Debug("command failed", "command", command, "error", err)
		d.view.ShowError(err)
	}

	if d.recorder != nil {
		if recErr := d.recorder.Record(command, err); recErr != nil {
			d.logger.Error("record command", "command", command, "error", recErr)
			d.view.ShowError(recErr)
			if err == nil {
				err = recErr
			}
		}
	}
	return err
}

func (d *Dispatcher) dispatch(keyword string, args []string) error {
	switch keyword {
	case "rectangle":
		return d.handleRectangle(args)
	case "square":
		return d.handleSquare(args)
	case "circle":
		return d.handleCircle(args)
	case "line":
		return d.handleLine(args)
	case "group":
		return d.handleGroup(args)
	case "ungroup":
		return d.handleUngroup(args)
	case "delete":
		return d.handleDelete(args)
	case "boundingbox":
		return d.handleBoundingBox(args)
	case "move":
		return d.handleMove(args)
	case "shapeat":
		return d.handleShapeAt(args)
	case "intersect":
		return d.handleIntersect(args)
	case "list":
		return d.handleList(args)
	case "listall":
		return d.handleListAll(args)
	case "quit":
		if err := expectArgs(keyword, args, 0); err != nil {
			return err
		}
		d.running = false
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, keyword)
	}
}

func (d *Dispatcher) handleRectangle(args []string) error {
	if err := expectArgs("rectangle", args, 5); err != nil {
		return err
	}
	nums, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	_, err = d.editor.CreateRectangle(args[0], nums[0], nums[1], nums[2], nums[3])
	return err
}

func (d *Dispatcher) handleSquare(args []string) error {
	if err := expectArgs("square", args, 4); err != nil {
		return err
	}
	nums, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	_, err = d.editor.CreateSquare(args[0], nums[0], nums[1], nums[2])
	return err
}

func (d *Dispatcher) handleCircle(args []string) error {
	if err := expectArgs("circle", args, 4); err != nil {
		return err
	}
	nums, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	_, err = d.editor.CreateCircle(args[0], nums[0], nums[1], nums[2])
	return err
}

func (d *Dispatcher) handleLine(args []string) error {
	if err := expectArgs("line", args, 5); err != nil {
		return err
	}
	nums, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	_, err = d.editor.CreateLine(args[0], nums[0], nums[1], nums[2], nums[3])
	return err
}

func (d *Dispatcher) handleGroup(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: group requires a name", ErrUsage)
	}
	_, err := d.editor.Group(args[0], args[1:])
	return err
}

func (d *Dispatcher) handleUngroup(args []string) error {
	if err := expectArgs("ungroup", args, 1); err != nil {
		return err
	}
	_, err := d.editor.Ungroup(args[0])
	return err
}

func (d *Dispatcher) handleDelete(args []string) error {
	if err := expectArgs("delete", args, 1); err != nil {
		return err
	}
	_, err := d.editor.Delete(args[0])
	return err
}

func (d *Dispatcher) handleBoundingBox(args []string) error {
	if err := expectArgs("boundingbox", args, 1); err != nil {
		return err
	}
	box, err := d.editor.BoundingBoxOf(args[0])
	if err != nil {
		return err
	}
	d.view.ShowBoundingBox(box)
	return nil
}

func (d *Dispatcher) handleMove(args []string) error {
	if err := expectArgs("move", args, 3); err != nil {
		return err
	}
	nums, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	_, err = d.editor.Move(args[0], nums[0], nums[1])
	return err
}

func (d *Dispatcher) handleShapeAt(args []string) error {
	if err := expectArgs("shapeat", args, 2); err != nil {
		return err
	}
	nums, err := parseNumbers(args)
	if err != nil {
		return err
	}
	desc, found := d.editor.CoveredShapeAt(nums[0], nums[1], d.tolerance)
	d.view.ShowShapeAt(desc, found)
	return nil
}

func (d *Dispatcher) handleIntersect(args []string) error {
	if err := expectArgs("intersect", args, 2); err != nil {
		return err
	}
	ok, err := d.editor.Intersects(args[0], args[1])
	if err != nil {
		return err
	}
	d.view.ShowBool(ok)
	return nil
}

func (d *Dispatcher) handleList(args []string) error {
	if err := expectArgs("list", args, 1); err != nil {
		return err
	}
	desc, err := d.editor.Describe(args[0])
	if err != nil {
		return err
	}
	d.view.ShowDescription(desc)
	return nil
}

func (d *Dispatcher) handleListAll(args []string) error {
	if err := expectArgs("listall", args, 0); err != nil {
		return err
	}
	d.view.ShowTree(d.editor.ListAll())
	return nil
}

// expectArgs checks the argument count of a command.
func expectArgs(keyword string, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s expects %d arguments, got %d", ErrUsage, keyword, want, len(args))
	}
	return nil
}

// parseNumbers parses every token as a finite float.
func parseNumbers(tokens []string) ([]float64, error) {
	nums := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, tok)
		}
		nums[i] = v
	}
	return nums, nil
}
