package bootstrap

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/dingu/di"
)

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
}

// NewSummary creates a new bootstrap summary tracker. A nil writer prints to stdout.
func NewSummary(serviceName, version string, out io.Writer) *Summary {
	if out == nil {
		out = os.Stdout
	}
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         out,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display prints the registry entries grouped by dependency level, so each
// entry appears after everything it depends on.
func (s *Summary) Display(r *di.Registry) {
	w := s.out

	// Header
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	if r == nil || r.Len() == 0 {
		fmt.Fprintf(w, "📦 Registry\n")
		fmt.Fprintf(w, "   └── No entries registered\n\n")
		return
	}

	infos := make(map[string]di.RegistrationInfo, r.Len())
	for _, info := range r.Registrations() {
		infos[info.Name] = info
	}

	levels, err := r.Levels()
	if err != nil {
		// An unverifiable graph is still listed, flat and by name.
		names := make([]string, 0, len(infos))
		for _, info := range r.Registrations() {
			names = append(names, info.Name)
		}
		levels = [][]string{names}
	}

	fmt.Fprintf(w, "📦 Registry %s (%d entries, %s)\n", r.Name(), len(infos), lockState(r.Locked()))
	for i, level := range levels {
		last := i == len(levels)-1
		prefix, indent := "├──", "│   "
		if last {
			prefix, indent = "└──", "    "
		}
		fmt.Fprintf(w, "   %s Level %d\n", prefix, i)
		for j, name := range level {
			entryPrefix := "├──"
			if j == len(level)-1 {
				entryPrefix = "└──"
			}
			info := infos[name]
			fmt.Fprintf(w, "   %s%s %s %s [%s]%s\n",
				indent, entryPrefix, modeIcon(info.Mode), name, info.Mode, formatDependencies(info.Dependencies))
		}
	}

	if err != nil {
		fmt.Fprintf(w, "\n⚠️  Dependency graph has issues: %v\n", err)
	} else {
		fmt.Fprintf(w, "\n✅ Dependency graph verified (%d levels)\n", len(levels))
	}
	fmt.Fprintf(w, "\n")
}

func formatDependencies(deps []string) string {
	if len(deps) == 0 {
		return ""
	}
	return " 🔗 " + strings.Join(deps, ", ")
}

func lockState(locked bool) string {
	if locked {
		return "locked"
	}
	return "open"
}

func modeIcon(mode di.RegistrationMode) string {
	switch mode {
	case di.Value:
		return "📌"
	case di.Singleton:
		return "⚙️"
	case di.Instance:
		return "🔁"
	default:
		return "❓"
	}
}
