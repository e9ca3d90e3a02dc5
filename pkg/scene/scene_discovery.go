package scene

import (
	"errors"
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
	ID          string `json:"id"`          // Name for Create, or file:<base> for scene files
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
	Objects     int    `json:"objects"`     // Number of primitives
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

// ListBuiltinScenes describes every built-in scene, sorted by display name
func ListBuiltinScenes() ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range Names() {
		s, err := Create(name)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        s.Name,
			DisplayName: builtins[name].displayName,
			Description: s.Description,
			Group:       builtinGroup,
			Type:        "builtin",
			Objects:     s.GetPrimitiveCount(),
		})
	}

	sortByDisplayName(scenes)
	return scenes, nil
}

// ListFileScenes scans dir for *.json scene files. A missing directory yields
// no scenes. Files that fail to load are left out and reported together in
// the returned error alongside the scenes that did load.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	var errs []error
	for _, path := range files {
		s, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenes = append(scenes, SceneInfo{
			ID:          filePrefix + fileID(path),
			Name:        s.Name,
			DisplayName: titleCase(s.Name),
			Description: s.Description,
			Group:       fileGroup,
			Type:        "file",
			FilePath:    path,
			Objects:     s.GetPrimitiveCount(),
		})
	}

	sortByDisplayName(scenes)
	return scenes, errors.Join(errs...)
}

// List returns the built-in scenes followed by the scene files in dir
func List(dir string) ([]SceneInfo, error) {
	scenes, err := ListBuiltinScenes()
	if err != nil {
		return nil, err
	}
	files, err := ListFileScenes(dir)
	return append(scenes, files...), err
}

// ListAllScenes returns List(dir) grouped by category, built-in scenes first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	scenes, err := List(dir)
	if scenes == nil && err != nil {
		return response, fmt.Errorf("failed to list scenes: %w", err)
	}

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, s := range scenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtinGroup,
			Scenes: builtInGroup,
		})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, err
}

// Resolve builds a scene from an ID returned by List: a built-in name, or
// file:<base> naming <base>.json inside dir.
func Resolve(id, dir string) (*Scene, error) {
	base, ok := strings.CutPrefix(id, filePrefix)
	if !ok {
		return Create(id)
	}
	if base == "" || base != filepath.Base(base) || dir == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return LoadFile(filepath.Join(dir, base+".json"))
}

func sortByDisplayName(scenes []SceneInfo) {
	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
}

// fileID returns the file name without directory or extension
func fileID(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
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
