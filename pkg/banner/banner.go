// Package banner prints the startup summary shown once a webcore instance
// has begun listening.
package banner

import (
	"fmt"
	"runtime"

	"webcore/pkg/config"
)

const banner = `
██╗    ██╗███████╗██████╗  ██████╗ ██████╗ ██████╗ ███████╗
██║    ██║██╔════╝██╔══██╗██╔════╝██╔═══██╗██╔══██╗██╔════╝
██║ █╗ ██║█████╗  ██████╔╝██║     ██║   ██║██████╔╝█████╗
██║███╗██║██╔══╝  ██╔══██╗██║     ██║   ██║██╔══██╗██╔══╝
╚███╔███╔╝███████╗██████╔╝╚██████╗╚██████╔╝██║  ██║███████╗
 ╚══╝╚══╝ ╚══════╝╚═════╝  ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝
`

// Print renders the banner for cfg, the resolved worker count, and the
// registered static roots.
func Print(cfg *config.Config, resolvedWorkers int, staticDirs []string, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", cfg.Addr())
	fmt.Printf("Workers:  %d\n", resolvedWorkers)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Printf("Log level: %s\n", cfg.Logging.Level)

	fmt.Println("\n== Static roots ===============================================")
	if len(staticDirs) == 0 {
		fmt.Println("(none registered)")
	}
	for _, d := range staticDirs {
		fmt.Printf("- %s\n", d)
	}

	fmt.Println("\n== Endpoints ===================================================")
	if cfg.Metrics.Enabled {
		fmt.Printf("Metrics:  http://%s%s\n", cfg.Metrics.Address, cfg.Metrics.Path)
	} else {
		fmt.Println("Metrics:  disabled")
	}
	if cfg.Metrics.Enabled && cfg.Docs.Enabled {
		fmt.Printf("Docs:     http://%s%s\n", cfg.Metrics.Address, cfg.Docs.Path)
	} else {
		fmt.Println("Docs:     disabled")
	}

	fmt.Println("\n== Runtime =====================================================")
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
}
