package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
	filePrefix   = "file:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON description (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtinScene struct {
	info  SceneInfo
	build func(BuildOptions) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Checkered floor with tori, cylinders, ellipsoids and copper accents",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "cylinders",
			Name:        "Cylinder Room",
			Description: "Matte, mirror and glass cylinders in a closed room",
		},
		build: func(BuildOptions) *Scene { return NewCylinderScene() },
	},
	{
		info: SceneInfo{
			ID:          "shapes",
			Name:        "Shape Gallery",
			Description: "One of every primitive with textured, mirror and glass materials",
		},
		build: func(BuildOptions) *Scene { return NewShapesScene() },
	},
}

// BuiltinScenes returns metadata for the scenes compiled into the binary
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		infos[i] = info
	}
	return infos
}

// NewBuiltin builds a built-in scene by ID
func NewBuiltin(id string, opts BuildOptions) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(opts), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q", id)
}

// Load resolves a scene reference: a path to a .json description, a
// "file:" ID from ListAllScenes, or a built-in scene ID
func Load(ref, scenesDir string, opts BuildOptions) (*Scene, error) {
	switch {
	case strings.HasPrefix(ref, filePrefix):
		name := strings.TrimPrefix(ref, filePrefix)
		if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			return nil, fmt.Errorf("invalid scene id %q", ref)
		}
		return LoadSceneFile(filepath.Join(scenesDir, name+".json"), opts.Logger)
	case strings.EqualFold(filepath.Ext(ref), ".json"):
		return LoadSceneFile(ref, opts.Logger)
	default:
		return NewBuiltin(ref, opts)
	}
}

// ListFileScenes scans scenesDir for JSON scene descriptions. A missing
// directory yields an empty list.
func ListFileScenes(scenesDir string) ([]SceneInfo, error) {
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(scenesDir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Keep the fallback values so the file still shows up
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene file.
// Missing values fall back to the file name and the default group.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          filePrefix + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       fileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, nil
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("decode scene header: %w", err)
	}

	if name := strings.TrimSpace(header.Name); name != "" {
		info.Name = name
		info.DisplayName = name
	}
	info.Description = strings.TrimSpace(header.Description)
	if group := strings.TrimSpace(header.Group); group != "" {
		info.Group = group
	}
	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes(scenesDir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(scenesDir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtins, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtinGroup,
			Scenes: builtins,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cylinder-room" -> "Cylinder Room"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
