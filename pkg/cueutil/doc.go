// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities used by the plugin
// manifest and host configuration loaders.
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schemaBytes []byte
//
//	schema := cueutil.Schema{Source: schemaBytes, Definition: "#Manifest"}
//	result, err := cueutil.DecodeFile[Manifest](schema, "plugin.cue")
//	if err != nil {
//	    return nil, err // a *cueutil.FileError naming the bad field
//	}
//	return result.Value, nil
package cueutil
