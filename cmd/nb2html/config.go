package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nb2html/internal/fileutil"
	"github.com/alnah/go-nb2html/internal/yamlutil"

	nb2html "github.com/alnah/go-nb2html"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config mirrors nb2html.Settings for file-based configuration. Boolean
// fields that default to true are pointers so an absent key keeps the
// default.
type Config struct {
	UseFirstCellMetadata bool   `yaml:"useFirstCellMetadata"`
	ColorScheme          string `yaml:"colorScheme"`
	Template             string `yaml:"template"`
	FixCSS               *bool  `yaml:"fixCSS"`
	SkipCSS              bool   `yaml:"skipCSS"`
	GenerateSummary      *bool  `yaml:"generateSummary"`
	SummaryMaxLength     int    `yaml:"summaryMaxLength"`
	CleanMarkup          *bool  `yaml:"cleanMarkup"`
	AddPermalinks        bool   `yaml:"addPermalinks"`
	NotebookSaveAs       string `yaml:"notebookSaveAs"`
	OutputPath           string `yaml:"outputPath"`

	StopSummaryTags []StopTagConfig `yaml:"stopSummaryTags"`
}

// StopTagConfig is one stop tag in the config file, e.g.
//
//	- tag: div
//	  attr: class
//	  value: output
type StopTagConfig struct {
	Tag   string `yaml:"tag"`
	Attr  string `yaml:"attr"`
	Value string `yaml:"value"`
}

// LoadConfig loads configuration from a file path or config name. A name
// without path separators is searched in the current directory and the
// user config directory, trying .yaml then .yml.
func LoadConfig(nameOrPath string) (*Config, error) {
	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations: current directory, then ~/.config/nb2html/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "nb2html", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// Settings converts the file config into library settings.
func (c *Config) Settings() nb2html.Settings {
	s := nb2html.DefaultSettings()

	s.UseFirstCellMetadata = c.UseFirstCellMetadata
	s.ColorScheme = c.ColorScheme
	s.ExportTemplate = c.Template
	s.SkipCSS = c.SkipCSS
	s.AddPermalinks = c.AddPermalinks
	s.NotebookSaveAs = c.NotebookSaveAs
	s.OutputPath = c.OutputPath

	if c.FixCSS != nil {
		s.FixCSS = *c.FixCSS
	}
	if c.GenerateSummary != nil {
		s.GenerateSummary = *c.GenerateSummary
	}
	if c.CleanMarkup != nil {
		s.CleanMarkup = *c.CleanMarkup
	}
	if c.SummaryMaxLength > 0 {
		s.SummaryMaxLength = c.SummaryMaxLength
	}
	if len(c.StopSummaryTags) > 0 {
		s.StopSummaryTags = toStopTags(c.StopSummaryTags)
	}
	return s
}

// toStopTags converts config stop tags to library stop tags.
func toStopTags(configured []StopTagConfig) []nb2html.StopTag {
	tags := make([]nb2html.StopTag, len(configured))
	for i, tag := range configured {
		tags[i] = nb2html.StopTag{Tag: tag.Tag}
		if tag.Attr != "" {
			tags[i].Attr = &nb2html.StopTagAttr{Key: tag.Attr, Val: tag.Value}
		}
	}
	return tags
}
