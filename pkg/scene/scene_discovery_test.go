package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cylinder-room", "Cylinder Room"},
		{"copper_torus", "Copper Torus"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete_metadata.json",
			content: `{"name": "Glass Room", "description": "Glass cylinders in a room", "group": "Rooms", "objects": []}`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Glass Room",
				DisplayName: "Glass Room",
				Description: "Glass cylinders in a room",
				Group:       "Rooms",
				Type:        "file",
			},
		},
		{
			name:    "partial_metadata.json",
			content: `{"name": "Tori", "lights": []}`,
			expected: SceneInfo{
				ID:          "file:partial_metadata",
				Name:        "Tori",
				DisplayName: "Tori",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
		{
			name:    "no-metadata.json",
			content: `{"objects": []}`,
			expected: SceneInfo{
				ID:          "file:no-metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_InvalidFiles(t *testing.T) {
	// Missing files keep the fallback values without an error
	info, err := ParseSceneMetadata("nonexistent.json")
	if err != nil {
		t.Errorf("ParseSceneMetadata() should handle missing files gracefully: %v", err)
	}
	if info.DisplayName != "Nonexistent" {
		t.Errorf("Expected fallback display name, got %q", info.DisplayName)
	}

	// Malformed JSON reports an error but still fills the basics
	path := writeSceneFile(t, t.TempDir(), "broken.json", `{"name": `)
	info, err = ParseSceneMetadata(path)
	if err == nil {
		t.Error("Expected an error for malformed JSON")
	}
	if info.ID == "" || info.DisplayName == "" {
		t.Error("ParseSceneMetadata() should populate basic fields even with malformed JSON")
	}
}

func TestListFileScenes(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListFileScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected an empty list for a missing directory, got %v", scenes)
	}

	dir := t.TempDir()
	writeSceneFile(t, dir, "b.json", `{"name": "Zebra"}`)
	writeSceneFile(t, dir, "a.json", `{"name": "Aardvark"}`)
	writeSceneFile(t, dir, "notes.txt", `not a scene`)

	scenes, err = ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].DisplayName != "Aardvark" || scenes[1].DisplayName != "Zebra" {
		t.Errorf("Expected scenes sorted by display name, got %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "room.json", `{"name": "Room", "group": "Rooms"}`)
	writeSceneFile(t, dir, "loose.json", `{}`)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(response.Groups))
	}

	// Built-in first, then alphabetical
	expectedGroups := []string{"Built-in Scenes", "Rooms", "Scene Files"}
	for i, name := range expectedGroups {
		if response.Groups[i].Name != name {
			t.Errorf("Group %d = %q, want %q", i, response.Groups[i].Name, name)
		}
	}

	expectedBuiltins := []string{"default", "cylinders", "shapes"}
	builtins := response.Groups[0].Scenes
	if len(builtins) != len(expectedBuiltins) {
		t.Fatalf("Built-in scenes count = %d, want %d", len(builtins), len(expectedBuiltins))
	}
	for i, id := range expectedBuiltins {
		if builtins[i].ID != id {
			t.Errorf("Built-in %d = %q, want %q", i, builtins[i].ID, id)
		}
	}

	for _, group := range response.Groups {
		for _, s := range group.Scenes {
			if s.ID == "" || s.DisplayName == "" {
				t.Errorf("Scene missing ID or DisplayName: %+v", s)
			}
			if s.Type != "builtin" && s.Type != "file" {
				t.Errorf("Invalid scene type: %s", s.Type)
			}
			if s.Type == "file" && (s.FilePath == "" || !strings.HasPrefix(s.ID, "file:")) {
				t.Errorf("File scene not addressable: %+v", s)
			}
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "tiny.json", `{
  "materials": [{"id": "m"}],
  "objects": [{"type": "sphere", "material_id": "m", "radius": 1}]
}`)
	opts := BuildOptions{AssetDir: t.TempDir()}

	tests := []struct {
		ref        string
		primitives int
		wantErr    bool
	}{
		{"cylinders", 8, false},
		{"file:tiny", 1, false},
		{filepath.Join(dir, "tiny.json"), 1, false},
		{"file:../tiny", 0, true},
		{"file:", 0, true},
		{"unknown", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			s, err := Load(tt.ref, dir, opts)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) error: %v", tt.ref, err)
			}
			if s.GetPrimitiveCount() != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, s.GetPrimitiveCount())
			}
		})
	}
}

func TestBundledSceneFiles(t *testing.T) {
	scenesDir := filepath.Join("..", "..", "scenes")
	infos, err := ListFileScenes(scenesDir)
	if err != nil {
		t.Fatalf("ListFileScenes failed: %v", err)
	}
	if len(infos) == 0 {
		t.Fatal("Expected bundled scene files")
	}

	for _, info := range infos {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Load(info.ID, scenesDir, BuildOptions{})
			if err != nil {
				t.Fatalf("Failed to load %s: %v", info.ID, err)
			}
			if s.GetPrimitiveCount() == 0 || len(s.Lights) == 0 {
				t.Errorf("Expected objects and lights in %s", info.ID)
			}
		})
	}
}
