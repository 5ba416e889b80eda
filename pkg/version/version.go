package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

const devVersion = "0.0.0-dev"

// buildSettings lê as configurações vcs.* embutidas pelo Go em module mode.
var buildSettings = func() map[string]string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return nil
	}
	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	return settings
}

// populateFromBuildInfo preenche Version/Commit/BuildTime quando o ldflags não os definiu.
func populateFromBuildInfo(settings map[string]string) {
	if Version != "" && Version != devVersion {
		return
	}

	// Commit curto (7 chars)
	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}

	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	if tag := settings["vcs.tag"]; tag != "" {
		Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

func init() {
	populateFromBuildInfo(buildSettings())
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
}
