/*
Package config loads treevent runtime settings.

# Overview

Config wraps a map[string]any (usually decoded from YAML or JSON) and
provides typed accessors that return a default on a missing key or a type
mismatch. Settings is the typed view the rest of treevent consumes.

	cfg, err := config.FromFile("treevent.yaml")
	if err != nil {
	    return err
	}
	settings, err := config.Decode(cfg)

# File Layout

	events:
	  inserted: inserted
	  removed: removed
	  attributes: attributes
	log:
	  level: info      # debug, info, warn, error
	  format: text     # text, json
	metrics: false
	tracing: false
	journal:
	  driver: none     # none, memory, sqlite
	  path: treevent.db

Every key is optional. Missing keys keep the values from Default.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
