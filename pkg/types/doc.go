// SPDX-License-Identifier: MPL-2.0

// Package types defines value types shared by the plugin engine packages
// (alias, trigger, helpdoc, registry, plugin). These types carry semantic
// meaning and validation but have no domain-specific dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
package types
