package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ayn2op/lazybar"
	"github.com/ayn2op/lazybar/config"
	"github.com/ayn2op/lazybar/keybind"
	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
)

var words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua ut enim ad minim veniam quis
nostrud exercitation ullamco laboris nisi aliquip ex ea commodo consequat`)

// itemText returns a deterministic sentence whose length varies with index.
func itemText(index int) string {
	n := 3 + (index*7)%17
	out := make([]string, n)
	for i := range out {
		out[i] = words[(index*13+i*5)%len(words)]
	}
	return strings.Join(out, " ")
}

func newItem(index int, maxLines int) *lazybar.TextView {
	return lazybar.NewTextView().
		SetLabel(fmt.Sprintf("%d.", index)).
		SetText(itemText(index)).
		SetMaxLines(maxLines)
}

type options struct {
	configPath string
	grid       bool
	staggered  bool
	lanes      int
	count      int
	reverse    bool
	logPath    string
	snapshot   string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to the configuration file")
	flag.BoolVar(&o.grid, "grid", false, "show a grid instead of a list")
	flag.BoolVar(&o.staggered, "staggered", false, "show a staggered grid")
	flag.IntVar(&o.lanes, "lanes", 3, "number of grid lanes")
	flag.IntVar(&o.count, "count", 1000, "number of items")
	flag.BoolVar(&o.reverse, "reverse", false, "lay the list out bottom to top")
	flag.StringVar(&o.logPath, "log", "", "append debug logs to this file")
	flag.StringVar(&o.snapshot, "snapshot", "", "render one frame of WxH cells to stdout and exit")
	flag.Parse()
	return o
}

func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "lazybar ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// newHost builds the scrollable content described by o.
func newHost(o options, keyMap keybind.ScrollKeyMap) (lazybar.ScrollHost, scrollbar.Layout) {
	if o.grid || o.staggered {
		grid := lazybar.NewScrollGrid(o.lanes).
			SetItemCount(o.count).
			SetStaggered(o.staggered).
			SetKeyMap(keyMap).
			SetBuilder(func(index int) lazybar.ScrollListItem {
				maxLines := 2
				if o.staggered {
					maxLines = 6
				}
				return newItem(index, maxLines)
			})
		return grid, grid.Layout()
	}

	list := lazybar.NewScrollList().
		SetItemCount(o.count).
		SetReverse(o.reverse).
		SetKeyMap(keyMap).
		SetBuilder(func(index, cursor int) lazybar.ScrollListItem {
			item := newItem(index, 0)
			if index == cursor {
				item.SetTextStyle(tcell.StyleDefault.Reverse(true))
			}
			return item
		})
	return list, scrollbar.ListLayout
}

func main() {
	o := parseFlags()

	logger, closeLog, err := newLogger(o.logPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer closeLog()

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	keyMap := keybind.NewScrollKeyMap(cfg.Keybinds)
	logger.Printf("keys: %s", keyMap)

	host, layout := newHost(o, keyMap)
	fs := lazybar.NewFastScroll(host, layout).
		ApplyConfig(cfg).
		SetLogger(logger)
	defer fs.Stop()

	r := newRoot(newView(fs, keyMap), keyMap, cfg.Help.Border)

	if o.snapshot != "" {
		out, err := snapshot(r, fs, o)
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Println(out)
		return
	}

	app := lazybar.NewApplication().SetLogger(logger)
	fs.SetScheduler(app).SetWakeFunc(app.Redraw)
	if err := app.SetRoot(r).Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

// heldTimer is a timer that never fires.
type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

// snapshot draws r on an in-memory screen: once at rest, once after jumping
// to the middle and once more after the thumb has slid in.
func snapshot(r *root, fs *lazybar.FastScroll, o options) (string, error) {
	var width, height int
	if _, err := fmt.Sscanf(o.snapshot, "%dx%d", &width, &height); err != nil || width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid snapshot size %q, want WxH", o.snapshot)
	}

	now := time.Unix(0, 0)
	fs.SetClock(func() time.Time { return now }).
		SetScheduler(scrollbar.SchedulerFunc(func(time.Duration, func()) scrollbar.Timer {
			return heldTimer{}
		}))

	screen := lazybar.NewCaptureScreen(width, height)
	r.SetRect(0, 0, width, height)
	r.Draw(screen)

	if err := fs.Host().ScrollToIndex(context.Background(), o.count/2, 0); err != nil {
		return "", fmt.Errorf("scroll: %w", err)
	}
	r.Draw(screen)

	now = now.Add(time.Second)
	screen.Clear()
	r.Draw(screen)
	return screen.String(), nil
}
