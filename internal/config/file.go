package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/nupi-ai/openvpn-authc/internal/constants"
	"github.com/nupi-ai/openvpn-authc/internal/util/numparse"
	"gopkg.in/yaml.v3"
)

// LoadFile overlays the settings found in path onto base. Files ending in
// .yaml or .yml are parsed as YAML, everything else as "key = value" lines.
// Unknown keys in the line format are reported through logger and skipped.
func LoadFile(path string, base Config, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path, data, base)
	default:
		return parseLines(path, bytes.NewReader(data), base, logger), nil
	}
}

// LoadFirst overlays the first readable file of paths onto base and returns
// its name. A readable file ends the search even when it fails to parse; the
// parse error is logged and base is returned unchanged.
func LoadFirst(paths []string, base Config, logger *log.Logger) (Config, string) {
	if logger == nil {
		logger = log.Default()
	}
	for _, path := range paths {
		cfg, err := LoadFile(path, base, logger)
		if err == nil {
			return cfg, path
		}
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			continue
		}
		logger.Printf("Unable to parse configuration file '%s': %v", path, err)
		return base, path
	}
	return base, ""
}

// parseLines reads the classic format. Blank lines and lines starting with
// "#" are skipped. The key is the first alphanumeric run starting at the first
// letter; the value is the first run of printable non-space characters after
// "=". Only the first ConfigMaxLines lines are read.
func parseLines(name string, r io.Reader, base Config, logger *log.Logger) Config {
	cfg := base
	br := bufio.NewReader(r)
	for lineNo := 1; lineNo <= constants.ConfigMaxLines; lineNo++ {
		line, err := br.ReadString('\n')
		if line == "" && err != nil {
			break
		}

		key, value, ok := splitLine(line)
		if ok {
			switch key {
			case "hostname":
				cfg.Hostname = value
			case "port":
				cfg.Port = numparse.Atoi(value)
			case "timeout":
				cfg.Timeout = time.Duration(numparse.Atoi(value)) * time.Second
			default:
				logger.Printf("Warning: unknown configuration parameter '%s' in configuration file '%s' line %d.", key, name, lineNo)
			}
		}
		if err != nil {
			break
		}
	}
	return cfg
}

func splitLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if trimmed == "" || trimmed[0] == '#' {
		return "", "", false
	}

	start := strings.IndexFunc(line, isASCIILetter)
	if start < 0 {
		return "", "", false
	}
	end := start
	for end < len(line) && (isASCIILetter(rune(line[end])) || isASCIIDigit(rune(line[end]))) {
		end++
	}
	key = line[start:end]

	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", false
	}
	rest := strings.TrimLeftFunc(line[eq+1:], func(r rune) bool { return !isGraphic(r) })
	if stop := strings.IndexFunc(rest, func(r rune) bool { return !isGraphic(r) }); stop >= 0 {
		rest = rest[:stop]
	}
	if rest == "" {
		return "", "", false
	}
	return key, rest, true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isGraphic matches printable ASCII other than space.
func isGraphic(r rune) bool {
	return r > ' ' && r < 0x7f
}

type yamlFile struct {
	Hostname *string `yaml:"hostname"`
	Port     *int    `yaml:"port"`
	Timeout  *int    `yaml:"timeout"`
}

func parseYAML(name string, data []byte, base Config) (Config, error) {
	var f yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("config: decode %s: %w", name, err)
	}

	cfg := base
	if f.Hostname != nil {
		cfg.Hostname = strings.TrimSpace(*f.Hostname)
	}
	if f.Port != nil {
		cfg.Port = *f.Port
	}
	if f.Timeout != nil {
		cfg.Timeout = time.Duration(*f.Timeout) * time.Second
	}
	return cfg, nil
}
