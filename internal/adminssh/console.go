// Package adminssh serves the operator command surface over SSH:
// genmap/showmap/exit, line-oriented, no PTY or screen. It reuses
// gliderlabs/ssh and golang.org/x/crypto/ssh for host-key wiring, but
// never opens a full-screen PTY.
package adminssh

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	gossh "github.com/gliderlabs/ssh"

	"dungeonforge/internal/dungeon"
	"dungeonforge/internal/grid"
	"dungeonforge/internal/mapservice"
	"dungeonforge/internal/render"
)

// state is the "current map" global the serving collaborator owns — this
// kind of mutable state sits outside the generation core, which has no
// callbacks and no mutable post-conditions of its own. It is shared by
// every connected operator session.
type state struct {
	mu  sync.Mutex
	cur *grid.Grid
}

// Console serves the operator CLI over SSH.
type Console struct {
	logger *slog.Logger
	state  state
}

// NewConsole returns a Console ready to be handed to a gossh.Server as its
// session Handler.
func NewConsole(logger *slog.Logger) *Console {
	return &Console{logger: logger}
}

// Handle is a gossh.Server Handler: it drives a line-oriented REPL over the
// raw session reader/writer, blocking for the connection's lifetime.
func (c *Console) Handle(s gossh.Session) {
	fmt.Fprintln(s, "dungeonforge admin console. Commands: genmap, showmap, exit")
	scanner := bufio.NewScanner(s)
	for {
		fmt.Fprint(s, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !c.dispatch(s, line) {
			return
		}
	}
}

// dispatch runs one command line, returning false when the session should
// close.
func (c *Console) dispatch(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit":
		fmt.Fprintln(w, "goodbye")
		return false
	case "genmap":
		c.genmap(w, fields[1:])
	case "showmap":
		c.showmap(w)
	default:
		fmt.Fprintf(w, "unknown command %q\n", fields[0])
	}
	return true
}

// genmap implements "genmap [type] [width] [height] [minRooms] [maxRooms]
// [seed]", defaulting type to passage.
func (c *Console) genmap(w io.Writer, args []string) {
	req := mapservice.Request{Kind: mapservice.KindPassage, Width: 30, Height: 30}
	positions := []func(string) error{
		func(v string) error { req.Kind = mapservice.Kind(v); return nil },
		func(v string) error { return atoiInto(&req.Width, v) },
		func(v string) error { return atoiInto(&req.Height, v) },
		func(v string) error { return atoiInto(&req.MinRooms, v) },
		func(v string) error { return atoiInto(&req.MaxRooms, v) },
		func(v string) error {
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			req.Seed = &seed
			return nil
		},
	}
	for i, arg := range args {
		if i >= len(positions) {
			break
		}
		if err := positions[i](arg); err != nil {
			fmt.Fprintf(w, "bad argument %q: %v\n", arg, err)
			return
		}
	}

	g, err := mapservice.Generate(req)
	if err != nil {
		fmt.Fprintf(w, "generate failed: %v\n", err)
		c.logger.Error("genmap failed", "error", err, "kind", req.Kind)
		return
	}

	c.state.mu.Lock()
	c.state.cur = g
	c.state.mu.Unlock()

	fmt.Fprintf(w, "generated %s map %dx%d (seed=%s)\n", req.Kind, g.Width, g.Height, g.Metadata[dungeon.MetaSeed])
}

// showmap prints the current map via the ASCII renderer.
func (c *Console) showmap(w io.Writer) {
	c.state.mu.Lock()
	g := c.state.cur
	c.state.mu.Unlock()

	if g == nil {
		fmt.Fprintln(w, "no map generated yet")
		return
	}
	out, err := render.Render(g, render.Options{Colorized: true})
	if err != nil {
		fmt.Fprintf(w, "render failed: %v\n", err)
		return
	}
	fmt.Fprint(w, out)
}

func atoiInto(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}
