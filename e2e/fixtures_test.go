//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Logo is one manifest record written by the fixtures
type Logo struct {
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image LogoImage `json:"image"`
}

// LogoImage is the image reference of a Logo
type LogoImage struct {
	Source string `json:"source"`
	Path   string `json:"path"`
}

// DefaultLogos is the manifest most tests browse
var DefaultLogos = []Logo{
	logo("Audi", "audi"),
	logo("BMW", "bmw"),
	logo("Volkswagen", "volkswagen"),
}

func logo(name, slug string) Logo {
	return Logo{
		Name: name,
		Slug: slug,
		Image: LogoImage{
			Source: "https://www.carlogos.org/car-logos/" + slug + "-logo.png",
			Path:   "images/" + slug + ".png",
		},
	}
}

// CreateTestWorkspace creates a temporary directory holding logos.json and
// a config file that logs into the workspace.
func (tf *TUITestFramework) CreateTestWorkspace(logos []Logo) (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir

	if err := tf.WriteManifest(logos); err != nil {
		return "", err
	}

	config := fmt.Sprintf(`version = 1

[catalog]
manifest = "logos.json"
watch = true

[ui]
link_base = "https://logos.example"

[logging]
file = %q
level = "debug"
`, filepath.Join(tmpDir, "logogrip.log"))

	if err := os.WriteFile(filepath.Join(tmpDir, ".logogrip.toml"), []byte(config), 0644); err != nil {
		return "", err
	}
	return tmpDir, nil
}

// WriteManifest replaces the workspace manifest
func (tf *TUITestFramework) WriteManifest(logos []Logo) error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	data, err := json.MarshalIndent(logos, "", "  ")
	if err != nil {
		return err
	}
	return tf.WriteRawManifest(data)
}

// WriteRawManifest writes data as the workspace manifest verbatim
func (tf *TUITestFramework) WriteRawManifest(data []byte) error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	return os.WriteFile(filepath.Join(tf.workspace, "logos.json"), data, 0644)
}
