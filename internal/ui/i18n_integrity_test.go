package ui_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/misteinb/fluent-controls-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in the locale JSON files.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinPicks,
		config.TKeyWinSettings,
		config.TKeyLblDate,
		config.TKeyLblLastChange,
		config.TKeyLblLastPaste,
		config.TKeyLblNone,
		config.TKeyBtnExport,
		config.TKeyBtnPicks,
		config.TKeyBtnSettings,
		config.TKeyBtnImportSeed,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblFormat,
		config.TKeyHelpFormat,
		config.TKeyLblTimezone,
		config.TKeyHelpTimezone,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyLblShowAbove,
		config.TKeyHelpShowAbove,
		config.TKeyLblSeedURL,
		config.TKeyHelpSeedURL,
		config.TKeyLblUser,
		config.TKeyLblPass,
		config.TKeyLblGeneral,
		config.TKeyLblSeed,
		config.TKeyNotifExported,
		config.TKeyNotifSeedFail,
		config.TKeyEvtSummary,
		config.TKeyColPicked,
		config.TKeyColValue,
		config.TKeyColSource,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyErrBadDate,
	}

	for _, file := range []string{"locales/active.en.json", "locales/active.fr.json"} {
		content, err := os.ReadFile(file)
		require.NoErrorf(t, err, "Must load %s", file)

		var jsonMap map[string]interface{}
		err = json.Unmarshal(content, &jsonMap)
		require.NoErrorf(t, err, "%s must be valid JSON", file)

		for _, key := range keysToCheck {
			_, exists := jsonMap[key]
			assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, file)
		}

		// Check for orphan keys (exist in JSON but not in Go)
		defined := make(map[string]bool, len(keysToCheck))
		for _, k := range keysToCheck {
			defined[k] = true
		}
		for jsonKey := range jsonMap {
			if strings.HasPrefix(jsonKey, "_") {
				continue
			}
			if !defined[jsonKey] {
				t.Logf("Warning: Key '%s' exists in %s but is not checked in the test suite (might be unused)", jsonKey, file)
			}
		}
	}
}
