package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	wrap := true
	exampleConfig := Config{
		Site: SiteConfig{
			URL:         "https://flashblaze.xyz",
			Base:        "/",
			ProdBase:    DefaultProdBase,
			Title:       "My Blog",
			Description: "Personal blog and portfolio",
			Author:      "Author Name",
			Language:    "en",
		},
		Markdown: MarkdownConfig{
			Theme: DefaultTheme,
			Langs: []string{},
			Wrap:  &wrap,
		},
		Content: ContentConfig{
			Dir:       DefaultContent,
			StaticDir: DefaultStatic,
		},
		Build: BuildConfig{
			Output: DefaultOutput,
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
