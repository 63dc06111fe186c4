package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagDump bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List difficulty profiles",
	Long: `Shows the difficulty profiles of the active configuration, in the
order of the 1-4 keys.

With --dump, prints the built-in flappy.yaml. Copy it to
~/.arcade/configs/flappy.yaml to customize the game.`,
	Args: cobra.NoArgs,
	Run:  runProfiles,
}

func init() {
	profilesCmd.Flags().BoolVar(&flagDump, "dump", false, "Print the built-in configuration YAML")
}

func runProfiles(_ *cobra.Command, _ []string) {
	if flagDump {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg := loadConfig()

	fmt.Println("Profiles:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, p := range cfg.Profiles {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-10s  %5s  %5s  %6s  %7s  %7s\n",
		"Key", maxNameLen, "Name", "Label", "Gap", "Speed", "Spawn", "Gravity", "Impulse")
	fmt.Printf("  %-3s  %-*s  %-10s  %5s  %5s  %6s  %7s  %7s\n",
		"---", maxNameLen, "----", "-----", "---", "-----", "-----", "-------", "-------")

	for i, p := range cfg.Profiles {
		key := "-"
		if i < 4 {
			key = fmt.Sprintf("%d", i+1)
		}
		marker := ""
		if p.Name == cfg.DefaultProfile {
			marker = " (default)"
		}
		fmt.Printf("  %-3s  %-*s  %-10s  %5.0f  %5.1f  %5.0fms  %7.2f  %7.1f%s\n",
			key, maxNameLen, p.Name, p.Label, p.GapSize, p.HorizontalSpeed,
			p.SpawnIntervalMs, p.Gravity, p.ImpulseVelocity, marker)
	}

	fmt.Println()
	fmt.Println("Run 'flappy play --profile <name>' to start with a profile.")
}
