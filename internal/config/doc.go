// Package config handles configuration loading and merging for pylens.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--tool, --theme, --format, --configuration, --tui)
//  2. Environment variables (PYLENS_TOOL, PYLENS_THEME, NO_COLOR, PYLENS_DEBUG)
//  3. YAML config file (.pylens.yaml in the working directory or ~/.config/pylens/.pylens.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # File Format
//
//	tool: mypy
//	theme: orca
//	format: terminal
//	interface: tui
//	tools:
//	  mypy:
//	    binary: .venv/bin/mypy
//	    config: pyproject.toml
//	    args: --python-version 3.12
//
// # Environment Variables
//
//   - PYLENS_TOOL: tool to run when --tool is not given
//   - PYLENS_THEME: theme name when --theme is not given
//   - NO_COLOR: any non-empty value selects the mono theme
//   - PYLENS_DEBUG: any non-empty value enables debug logging
//   - PYLENS_CONFIG: path of the config file, bypassing the lookup
package config
