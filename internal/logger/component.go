// Copyright (C) MongoDB, Inc. 2023-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import "os"

// Component is an enumeration representing the "components" which can be
// logged against. A Level can be configured on a per-component basis.
type Component int

const (
	// ComponentAll enables logging for all components.
	ComponentAll Component = iota

	// ComponentDecode enables logging of per-document decode results.
	ComponentDecode

	// ComponentInput enables logging of input framing: comments, empty and
	// undecodable lines.
	ComponentInput

	// ComponentRender enables logging of output failures.
	ComponentRender
)

const (
	envVarLogAll    = "BSONVIEW_LOG_ALL"
	envVarLogDecode = "BSONVIEW_LOG_DECODE"
	envVarLogInput  = "BSONVIEW_LOG_INPUT"
	envVarLogRender = "BSONVIEW_LOG_RENDER"
)

var componentEnvVarMap = map[string]Component{
	envVarLogAll:    ComponentAll,
	envVarLogDecode: ComponentDecode,
	envVarLogInput:  ComponentInput,
	envVarLogRender: ComponentRender,
}

// String returns the name used for the component in log records.
func (c Component) String() string {
	switch c {
	case ComponentDecode:
		return "decode"
	case ComponentInput:
		return "input"
	case ComponentRender:
		return "render"
	default:
		return "all"
	}
}

// getEnvComponentLevels returns a component-to-level mapping defined by the
// environment variables that lookup finds, with "BSONVIEW_LOG_ALL" having the
// lowest priority. A nil lookup reads the process environment.
func getEnvComponentLevels(lookup func(string) (string, bool)) map[Component]Level {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	getenv := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	componentLevels := make(map[Component]Level)

	globalLevel, globalSet := ParseLevel(getenv(envVarLogAll))

	for envVar, component := range componentEnvVarMap {
		if component == ComponentAll {
			continue
		}

		if level, ok := ParseLevel(getenv(envVar)); ok {
			componentLevels[component] = level
		} else if globalSet {
			componentLevels[component] = globalLevel
		}
	}

	return componentLevels
}

// selectComponentLevels returns a new map of components to levels, with the
// explicit levels taking precedence over the environment. An explicit
// ComponentAll level applies to every component it does not name.
func selectComponentLevels(lookup func(string) (string, bool), explicit map[Component]Level) map[Component]Level {
	selected := getEnvComponentLevels(lookup)

	if all, ok := explicit[ComponentAll]; ok {
		for _, component := range componentEnvVarMap {
			if component != ComponentAll {
				selected[component] = all
			}
		}
	}

	for component, level := range explicit {
		if component != ComponentAll {
			selected[component] = level
		}
	}

	return selected
}
