// Package main demonstrates persistent history and configuration files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/nao1215/termline"
)

func main() {
	configPath := flag.String("config", termline.DefaultConfigPath(), "YAML configuration file")
	dir := flag.String("dir", "", "history directory (default: XDG config directory)")
	useKeyring := flag.Bool("keyring", false, "keep history in the OS keyring instead of a file")
	flag.Parse()

	// Missing files yield the defaults
	config, err := termline.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// History can live in several places:
	// - XDG compliant (recommended): termline.GetDefaultHistoryDir()
	// - Absolute path: "/home/user/.my_app"
	// - Home directory: "~/.my_app"
	// - Relative path: "./app_history" (converted to absolute)
	// - The OS keyring: termline.HistoryMethodKeyring
	if *useKeyring {
		termline.WithHistory(termline.HistoryConfig{
			Enabled: true,
			Method:  termline.HistoryMethodKeyring,
			Limit:   1000,
		})(&config)
	} else {
		termline.WithLocalHistory(*dir, 1000)(&config)
	}
	termline.WithPromptPrefix("history")(&config)

	s, err := termline.NewSession(config)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	err = s.Shell().AddCommand(termline.Command{
		Name:        "save-config",
		Description: "write the current configuration to " + *configPath,
		Run: func(_ context.Context, _ []string) error {
			if err := termline.SaveConfig(*configPath, config); err != nil {
				return err
			}
			s.Writer().Info("configuration saved to " + *configPath)
			return nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("History Example with Persistence")
	fmt.Println("Use Up/Down arrow keys to navigate history")
	fmt.Println("Type 'history' to see command history, 'history clear' to clear it")
	fmt.Println("Type 'save-config' to store the current settings")
	if !*useKeyring {
		location := *dir
		if location == "" {
			location = termline.GetDefaultHistoryDir()
		}
		fmt.Printf("History is automatically saved under %s\n", location)
	}
	fmt.Println()

	if err := s.Run(); err != nil && !errors.Is(err, termline.ErrEOF) && !errors.Is(err, termline.ErrInterrupted) {
		log.Printf("Error: %v\n", err)
	}
	fmt.Println("Goodbye!")
}
