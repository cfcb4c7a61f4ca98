package store

import (
	"fmt"
	"strings"

	"github.com/taskdeck/tdl/models"
	"github.com/taskdeck/tdl/types"
)

// patchKeys are the fields an update patch may carry. Level keys set to nil
// clear that category level; absent keys leave the field untouched.
var patchKeys = map[string]bool{
	"text":   true,
	"level1": true,
	"level2": true,
	"level3": true,
}

// validatePatch rejects patches with no recognized fields before any storage
// is touched.
func validatePatch(patch map[string]interface{}) error {
	for key := range patch {
		if patchKeys[key] {
			return nil
		}
	}
	return types.NewStoreError(types.CodeEmptyPatch,
		"patch has no recognized fields (text, level1, level2, level3)",
		map[string]interface{}{"fields": []string{"text", "level1", "level2", "level3"}})
}

// applyPatch applies the recognized patch fields to task in place. The
// resulting category path must stay dense: clearing a level while a deeper
// level survives is rejected rather than producing a sparse path.
func applyPatch(task *models.Task, patch map[string]interface{}, maxDepth int) error {
	if text, ok := patch["text"]; ok {
		str, err := patchString("text", text)
		if err != nil {
			return err
		}
		task.Text = str
	}

	levels := make([]*string, maxDepth)
	for i := 0; i < maxDepth && i < len(task.CategoryPath); i++ {
		level := task.CategoryPath[i]
		levels[i] = &level
	}

	for i := 1; i <= maxDepth; i++ {
		value, ok := patch[fmt.Sprintf("level%d", i)]
		if !ok {
			continue
		}
		if value == nil {
			levels[i-1] = nil
			continue
		}
		str, err := patchString(fmt.Sprintf("level%d", i), value)
		if err != nil {
			return err
		}
		levels[i-1] = &str
	}

	var path models.CategoryPath
	for i, level := range levels {
		if level == nil {
			// Density check: everything deeper must be gone too.
			for _, deeper := range levels[i:] {
				if deeper != nil {
					return types.NewStoreError(types.CodeInvalidPatch,
						fmt.Sprintf("patch would leave a sparse category path: level %d absent while a deeper level is set", i+1),
						map[string]interface{}{"level": i + 1})
				}
			}
			break
		}
		path = append(path, *level)
	}
	if err := path.Validate(maxDepth); err != nil {
		return err
	}

	task.CategoryPath = path
	return nil
}

func patchString(field string, value interface{}) (string, error) {
	str, ok := value.(string)
	if !ok {
		return "", types.NewStoreError(types.CodeInvalidPatch,
			fmt.Sprintf("field %s must be a string (or null for category levels)", field),
			map[string]interface{}{"field": field, "value": value})
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return "", types.NewStoreError(types.CodeInvalidPatch,
			fmt.Sprintf("field %s must not be empty; use null to clear a category level", field),
			map[string]interface{}{"field": field})
	}
	return str, nil
}
