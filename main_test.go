package main

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"

	"comix/internal/control"
	"comix/internal/loader"
	"comix/internal/navigation"
	"comix/internal/source"
	"comix/internal/viewport"
	"comix/internal/widget"
)

func TestParseKeyString(t *testing.T) {
	km := NewKeybindingManager(nil)
	tests := []struct {
		name     string
		keyStr   string
		valid    bool
		expected KeyCombination
	}{
		{"Plain key", "KeyQ", true, KeyCombination{Key: ebiten.KeyQ}},
		{"Ctrl key", "Ctrl+KeyW", true, KeyCombination{Key: ebiten.KeyW, Ctrl: true}},
		{"Two modifiers", "Ctrl+Shift+Equal", true, KeyCombination{Key: ebiten.KeyEqual, Ctrl: true, Shift: true}},
		{"Lowercase modifier", "alt+Key0", true, KeyCombination{Key: ebiten.Key0, Alt: true}},
		{"Function key", "F11", true, KeyCombination{Key: ebiten.KeyF11}},
		{"Unknown key", "KeyWhat", false, KeyCombination{}},
		{"Unknown modifier", "Super+KeyA", false, KeyCombination{}},
		{"Empty string", "", false, KeyCombination{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.parseKeyString(tt.keyStr)
			if ok != tt.valid {
				t.Fatalf("parseKeyString(%q) valid = %v, want %v", tt.keyStr, ok, tt.valid)
			}
			if ok && *got != tt.expected {
				t.Errorf("parseKeyString(%q) = %+v, want %+v", tt.keyStr, *got, tt.expected)
			}
		})
	}
}

func TestParseMouseString(t *testing.T) {
	mm := NewMousebindingManager(nil, GetDefaultMouseSettings())
	tests := []struct {
		name     string
		mouseStr string
		valid    bool
		reserved bool
	}{
		{"Side button", "Back", true, false},
		{"Shift wheel", "Shift+WheelDown", true, false},
		{"Plain wheel", "WheelUp", true, true},
		{"Plain left click", "LeftClick", true, true},
		{"Ctrl left click", "Ctrl+LeftClick", true, false},
		{"Double middle", "DoubleMiddleClick", true, false},
		{"Double left", "DoubleLeftClick", true, true},
		{"Bad wheel", "WheelSideways", false, false},
		{"Unknown button", "ThumbClick", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mm.parseMouseString(tt.mouseStr)
			if ok != tt.valid {
				t.Fatalf("parseMouseString(%q) valid = %v, want %v", tt.mouseStr, ok, tt.valid)
			}
			if ok && got.reserved() != tt.reserved {
				t.Errorf("parseMouseString(%q).reserved() = %v, want %v", tt.mouseStr, got.reserved(), tt.reserved)
			}
		})
	}
}

func TestDefaultBindingsAreValid(t *testing.T) {
	if err := validateKeybindings(GetDefaultKeybindings()); err != nil {
		t.Errorf("default keybindings: %v", err)
	}
	if err := validateMousebindings(GetDefaultMousebindings()); err != nil {
		t.Errorf("default mouse bindings: %v", err)
	}
}

// Every bound action must be one the controller understands.
func TestActionsKnownToController(t *testing.T) {
	paths := []source.ImagePath{{Path: "a.png"}, {Path: "b.png"}}
	nav, err := navigation.New(paths, nopRequester{})
	if err != nil {
		t.Fatal(err)
	}
	c := control.New(viewport.New(), nav, nopSlot{}, widget.NewBar(nil), nopWindow{}, control.Options{})
	for _, name := range GetActionNames() {
		if !c.Execute(name) {
			t.Errorf("controller rejected action %q", name)
		}
	}
}

func TestBuildKeybindings(t *testing.T) {
	tests := []struct {
		name         string
		overrides    map[string][]string
		wantWarnings int
		check        func(map[string][]string) bool
	}{
		{
			"No overrides",
			nil,
			0,
			func(m map[string][]string) bool { return reflect.DeepEqual(m, GetDefaultKeybindings()) },
		},
		{
			"Override one action",
			map[string][]string{"rotate_left": {"KeyJ"}},
			0,
			func(m map[string][]string) bool { return reflect.DeepEqual(m["rotate_left"], []string{"KeyJ"}) },
		},
		{
			"Unbind an action",
			map[string][]string{"exit": {}},
			0,
			func(m map[string][]string) bool { return len(m["exit"]) == 0 },
		},
		{
			"Bind an action with no default key",
			map[string][]string{"jump_first": {"KeyG"}},
			0,
			func(m map[string][]string) bool { return reflect.DeepEqual(m["jump_first"], []string{"KeyG"}) },
		},
		{
			"Unknown action",
			map[string][]string{"teleport": {"KeyT"}},
			1,
			func(m map[string][]string) bool { _, ok := m["teleport"]; return !ok },
		},
		{
			"Conflict falls back to defaults",
			map[string][]string{"rotate_left": {"KeyR"}},
			1,
			func(m map[string][]string) bool { return reflect.DeepEqual(m, GetDefaultKeybindings()) },
		},
		{
			"Invalid key falls back to defaults",
			map[string][]string{"rotate_left": {"Hyper+KeyR"}},
			1,
			func(m map[string][]string) bool { return reflect.DeepEqual(m, GetDefaultKeybindings()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := buildKeybindings(tt.overrides)
			if len(warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", warnings, tt.wantWarnings)
			}
			if !tt.check(got) {
				t.Errorf("unexpected keybindings: %v", got)
			}
		})
	}
}

func TestBuildMousebindingsRejectsReserved(t *testing.T) {
	got, warnings := buildMousebindings(map[string][]string{"next": {"WheelDown"}})
	if len(warnings) != 1 || !strings.Contains(warnings[0], "reserved") {
		t.Errorf("warnings = %v, want one reserved binding warning", warnings)
	}
	if !reflect.DeepEqual(got, GetDefaultMousebindings()) {
		t.Errorf("mouse bindings = %v, want defaults", got)
	}
}

func TestSnapshotEquals(t *testing.T) {
	a := &RenderStateSnapshot{WindowWidth: 800, WindowHeight: 600}
	if a.Equals(nil) {
		t.Error("snapshot equal to nil")
	}
	if !a.Equals(&RenderStateSnapshot{WindowWidth: 800, WindowHeight: 600}) {
		t.Error("identical snapshots differ")
	}
	if a.Equals(&RenderStateSnapshot{WindowWidth: 800, WindowHeight: 600, Fullscreen: true}) {
		t.Error("fullscreen change not detected")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestInfoText(t *testing.T) {
	p := source.ImagePath{Path: "book.cbz:p/01.jpg", ArchivePath: "book.cbz", EntryPath: "p/01.jpg"}
	info := &source.Info{Width: 640, Height: 480, Format: "jpeg", Size: 2048, Model: "X100"}

	got := infoText(p, 2, 10, info, "50%")
	want := []string{"01.jpg", "3 / 10", "Archive: book.cbz", "640x480 jpeg, 2.0 KiB", "Camera: X100", "Zoom: 50%"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("infoText = %q, want %q", got, want)
	}

	got = infoText(source.ImagePath{Path: "a.png"}, 0, 1, nil, "100%")
	want = []string{"a.png", "1 / 1", "No metadata", "Zoom: 100%"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("infoText without metadata = %q, want %q", got, want)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 10, "abcdefghij"},
		{"abcdefghijk", 10, "abcdefg..."},
		{"日本語のキーが不明です", 8, "日本語のキ..."},
	}
	for _, tt := range tests {
		got := truncateRunes(tt.in, tt.limit)
		if got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateRunes(%q, %d) produced invalid UTF-8", tt.in, tt.limit)
		}
	}
}

type nopRequester struct{}

func (nopRequester) Request(int, source.ImagePath) {}

type nopSlot struct{}

func (nopSlot) TryWith(func(*loader.Frame)) bool { return false }

type nopWindow struct{}

func (nopWindow) SetTitle(string) {}

func (nopWindow) SetCursor(control.Cursor) {}

func (nopWindow) ToggleFullscreen() {}
