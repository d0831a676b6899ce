package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "salescope/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set salescope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("provider: %s\n", cfg.Provider)
		fmt.Printf("api_key: %s\n", mask(cfg.APIKey))
		if cfg.SpaceURL != "" {
			fmt.Printf("space_url: %s\n", cfg.SpaceURL)
		}
		fmt.Printf("model: %s\n", cfg.Model)
		fmt.Printf("currency: %s\n", cfg.Currency)
		if cfg.RulesFile != "" {
			fmt.Printf("rules_file: %s\n", cfg.RulesFile)
		}
		fmt.Printf("sample_path: %s\n", cfg.SamplePath)
		fmt.Printf("http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "provider":
			switch val {
			case "local", "hf", "space":
				cfg.Provider = val
			default:
				return fmt.Errorf("invalid provider: %s (use local, hf, or space)", val)
			}
		case "api_key":
			cfg.APIKey = val
		case "space_url":
			cfg.SpaceURL = val
		case "model":
			cfg.Model = val
		case "currency":
			cfg.Currency = val
		case "rules_file":
			cfg.RulesFile = val
		case "sample_path":
			cfg.SamplePath = val
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
