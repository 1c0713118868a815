package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/devries/synacor/internal/logging"
	"github.com/devries/synacor/internal/queue"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type Point struct {
	x int
	y int
}

type State struct {
	pos       Point
	value     int
	operation rune
}

type Path []string

type Trial struct {
	state State
	path  Path
}

type Direction struct {
	name  string
	delta Point
}

// Fixed order keeps the reported path stable between runs.
var directions = []Direction{
	{"north", Point{0, 1}},
	{"east", Point{1, 0}},
	{"south", Point{0, -1}},
	{"west", Point{-1, 0}},
}

type Room struct {
	op    rune
	value int
}

// Vault is the 4x4 orb room grid, y increasing northward.
type Vault map[Point]Room

var vault = Vault{
	Point{0, 0}: Room{'n', 22},
	Point{1, 0}: Room{'-', 0},
	Point{2, 0}: Room{'n', 9},
	Point{3, 0}: Room{'*', 0},
	Point{0, 1}: Room{'+', 0},
	Point{1, 1}: Room{'n', 4},
	Point{2, 1}: Room{'-', 0},
	Point{3, 1}: Room{'n', 18},
	Point{0, 2}: Room{'n', 4},
	Point{1, 2}: Room{'*', 0},
	Point{2, 2}: Room{'n', 11},
	Point{3, 2}: Room{'*', 0},
	Point{0, 3}: Room{'*', 0},
	Point{1, 3}: Room{'n', 8},
	Point{2, 3}: Room{'-', 0},
	Point{3, 3}: Room{'n', 1},
}

const orbLimit = 32768

var ErrNoPath = errors.New("no path brings the orb to the vault door")

// solve finds the shortest walk from start to end that leaves the orb
// holding target. The start room may not be re-entered, the orb vanishes
// if it reaches end with any other value, and it shatters outside
// [0, orbLimit).
func solve(v Vault, start, end Point, target int) (Path, error) {
	room, ok := v[start]
	if !ok || room.op != 'n' {
		return nil, fmt.Errorf("start %v is not a number room", start)
	}

	pending := queue.New[Trial]()
	pending.Add(Trial{State{pos: start, value: room.value}, Path{}})

	seenStates := make(map[State]bool)

	for pending.Available() {
		t := pending.Pop()

		for _, dir := range directions {
			npt := Point{t.state.pos.x + dir.delta.x, t.state.pos.y + dir.delta.y}
			room, ok := v[npt]
			if !ok || npt == start {
				continue
			}

			path := make(Path, len(t.path)+1)
			copy(path, t.path)
			path[len(t.path)] = dir.name

			nstate := State{pos: npt, value: t.state.value, operation: t.state.operation}
			if room.op == 'n' {
				nstate.value = apply(nstate.operation, nstate.value, room.value)
				if nstate.value < 0 || nstate.value >= orbLimit {
					continue
				}
			} else {
				nstate.operation = room.op
			}

			if seenStates[nstate] {
				continue
			}
			seenStates[nstate] = true

			if npt == end {
				if nstate.value == target {
					return path, nil
				}
				continue
			}

			pending.Add(Trial{nstate, path})
		}
	}

	return nil, ErrNoPath
}

func apply(op rune, a, b int) int {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	}
	return a
}

// replay walks path through v and returns the orb value on arrival.
func replay(v Vault, start Point, path Path) (int, error) {
	pos := start
	value := v[start].value
	var op rune

	for _, step := range path {
		var delta *Point
		for _, d := range directions {
			if d.name == step {
				delta = &d.delta
				break
			}
		}
		if delta == nil {
			return 0, fmt.Errorf("unknown direction %q", step)
		}

		pos = Point{pos.x + delta.x, pos.y + delta.y}
		room, ok := v[pos]
		if !ok {
			return 0, fmt.Errorf("walked off the vault at %v", pos)
		}
		if room.op == 'n' {
			value = apply(op, value, room.value)
		} else {
			op = room.op
		}
	}
	return value, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	flags := pflag.NewFlagSet("maze", pflag.ContinueOnError)
	target := flags.IntP("target", "t", 30, "orb value required at the vault door")
	logLevel := flags.String("log-level", "info", "debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "maze: %s\n", err)
		return 2
	}
	defer logger.Sync()

	path, err := solve(vault, Point{0, 0}, Point{3, 3}, *target)
	if err != nil {
		logger.Error("orb maze unsolved", zap.Int("target", *target), zap.Error(err))
		return 1
	}

	value, err := replay(vault, Point{0, 0}, path)
	if err != nil || value != *target {
		logger.Error("orb maze path does not replay", zap.Strings("path", path), zap.Int("value", value), zap.Error(err))
		return 1
	}

	logger.Debug("orb maze solved", zap.Int("steps", len(path)))
	for _, p := range path {
		fmt.Fprintln(stdout, p)
	}
	return 0
}
