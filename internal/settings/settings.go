// Package settings reads and writes the key:value settings file.
package settings

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"comix/internal/debug"
	"comix/internal/source"
)

// Window size defaults used when lastsize is absent.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Font size and scroll step bounds.
const (
	DefaultFontSize = 13
	MinFontSize     = 8
	MaxFontSize     = 48
	DefaultScroll   = 2
	MinScroll       = 1
	MaxScroll       = 100
)

// Startup window modes.
const (
	ModeWindow = ""
	ModeFull   = "full"
	ModeMax    = "max"
)

// Load statuses.
const (
	StatusOK      = "OK"
	StatusDefault = "Default"
	StatusWarning = "Warning"
)

// Geometry is a window position and size.
type Geometry struct {
	X, Y, W, H int
}

func (g Geometry) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", g.X, g.Y, g.W, g.H)
}

// Settings is the parsed settings file.
type Settings struct {
	KeepZoom   bool
	ReadRight  bool // right-to-left reading order
	Background color.RGBA
	Mode       string
	LastSize   *Geometry
	Borderless bool
	FontSize   int
	Scroll     int // percent of the image height per pan step
	Sort       source.SortStrategy

	// Binding overrides by action name, from key.<action> and mouse.<action>
	// lines. Key names are checked by the caller.
	Keys  map[string][]string
	Mouse map[string][]string
}

// Defaults returns the settings used for missing or malformed keys.
func Defaults() Settings {
	return Settings{
		Background: color.RGBA{35, 35, 35, 255},
		Mode:       ModeWindow,
		FontSize:   DefaultFontSize,
		Scroll:     DefaultScroll,
		Sort:       &source.NaturalSortStrategy{},
		Keys:       map[string][]string{},
		Mouse:      map[string][]string{},
	}
}

// LoadResult carries the settings together with what went wrong reading them.
type LoadResult struct {
	Settings Settings
	Warnings []string
	Status   string // "OK", "Default", "Warning"
}

// DefaultPath returns ~/.comixrc, or comixrc when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "comixrc"
	}
	return filepath.Join(home, ".comixrc")
}

// Load reads the settings file at path. A missing file yields the defaults.
func Load(path string) LoadResult {
	f, err := os.Open(path)
	if err != nil {
		debug.Log(debug.CONFIG, "no settings at %s: %v", path, err)
		return LoadResult{Settings: Defaults(), Warnings: []string{}, Status: StatusDefault}
	}
	defer f.Close()

	result := Parse(f)
	for _, w := range result.Warnings {
		log.Printf("Warning: %s: %s", path, w)
	}
	return result
}

// Parse reads key:value lines. Blank lines and lines starting with '#' are
// skipped.
func Parse(r io.Reader) LoadResult {
	result := LoadResult{Settings: Defaults(), Warnings: []string{}, Status: StatusOK}
	warn := func(format string, args ...interface{}) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
		result.Status = StatusWarning
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			warn("line %d: missing ':' in %q", lineNo, line)
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if err := apply(&result.Settings, key, value); err != nil {
			warn("line %d: %v", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		warn("read error: %v", err)
	}

	debug.Log(debug.CONFIG, "settings: %+v (%s, %d warnings)", result.Settings, result.Status, len(result.Warnings))
	return result
}

func apply(s *Settings, key, value string) error {
	if action, ok := strings.CutPrefix(key, "key."); ok {
		return parseBinding(key, action, value, s.Keys)
	}
	if action, ok := strings.CutPrefix(key, "mouse."); ok {
		return parseBinding(key, action, value, s.Mouse)
	}

	switch key {
	case "keepzoom":
		return parseBool(key, value, &s.KeepZoom)
	case "readright":
		return parseBool(key, value, &s.ReadRight)
	case "borderless":
		return parseBool(key, value, &s.Borderless)
	case "background":
		nums, err := parseTuple(value, 3)
		if err != nil {
			return fmt.Errorf("background: %v", err)
		}
		for _, n := range nums {
			if n < 0 || n > 255 {
				return fmt.Errorf("background: component %d out of range 0-255", n)
			}
		}
		s.Background = color.RGBA{uint8(nums[0]), uint8(nums[1]), uint8(nums[2]), 255}
	case "mode":
		switch value {
		case ModeFull, ModeMax:
			s.Mode = value
		default:
			return fmt.Errorf("mode: want full or max, got %q", value)
		}
	case "lastsize":
		nums, err := parseTuple(value, 4)
		if err != nil {
			return fmt.Errorf("lastsize: %v", err)
		}
		if nums[2] <= 0 || nums[3] <= 0 {
			return fmt.Errorf("lastsize: size %dx%d is not positive", nums[2], nums[3])
		}
		s.LastSize = &Geometry{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}
	case "fontsize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("fontsize: %q is not a number", value)
		}
		s.FontSize = clampInt(n, MinFontSize, MaxFontSize)
		if s.FontSize != n {
			return fmt.Errorf("fontsize: %d clamped to %d", n, s.FontSize)
		}
	case "scroll":
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(value, "%")))
		if err != nil {
			return fmt.Errorf("scroll: %q is not a percentage", value)
		}
		s.Scroll = clampInt(n, MinScroll, MaxScroll)
		if s.Scroll != n {
			return fmt.Errorf("scroll: %d%% clamped to %d%%", n, s.Scroll)
		}
	case "sort":
		strategy, ok := source.SortByName(strings.ToLower(value))
		if !ok {
			return fmt.Errorf("sort: unknown order %q", value)
		}
		s.Sort = strategy
	default:
		return fmt.Errorf("unknown key %q ignored", key)
	}
	return nil
}

// parseBinding reads a comma separated list such as "Ctrl+KeyW, Escape". An
// empty list unbinds the action.
func parseBinding(key, action, value string, dst map[string][]string) error {
	if action == "" {
		return fmt.Errorf("%s: missing action name", key)
	}
	bindings := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			bindings = append(bindings, part)
		}
	}
	dst[action] = bindings
	return nil
}

func parseBool(key, value string, dst *bool) error {
	switch value {
	case "true":
		*dst = true
	case "false":
		*dst = false
	default:
		return fmt.Errorf("%s: want true or false, got %q", key, value)
	}
	return nil
}

// parseTuple reads "(a,b,...)" with exactly n integers.
func parseTuple(value string, n int) ([]int, error) {
	if !strings.HasPrefix(value, "(") || !strings.HasSuffix(value, ")") {
		return nil, fmt.Errorf("%q is not a parenthesized list", value)
	}
	parts := strings.Split(value[1:len(value)-1], ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q has %d values, want %d", value, len(parts), n)
	}
	nums := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %q is not a number", value, p)
		}
		nums[i] = v
	}
	return nums, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaveLastSize rewrites the lastsize line of the file at path, appending it
// when absent. Every other line is kept byte for byte.
func SaveLastSize(path string, g Geometry) error {
	if g.W <= 0 || g.H <= 0 {
		return fmt.Errorf("not saving invalid window size %dx%d", g.W, g.H)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	entry := "lastsize:" + g.String()
	lines := strings.SplitAfter(string(data), "\n")
	replaced := false
	for i, line := range lines {
		key, _, ok := strings.Cut(line, ":")
		if !ok || strings.ToLower(strings.TrimSpace(key)) != "lastsize" {
			continue
		}
		ending := ""
		if strings.HasSuffix(line, "\r\n") {
			ending = "\r\n"
		} else if strings.HasSuffix(line, "\n") {
			ending = "\n"
		}
		lines[i] = entry + ending
		replaced = true
	}

	out := strings.Join(lines, "")
	if !replaced {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += entry + "\n"
	}

	debug.Log(debug.CONFIG, "saving %s to %s", entry, path)
	return os.WriteFile(path, []byte(out), 0644)
}
