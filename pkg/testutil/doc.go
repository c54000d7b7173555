// Package testutil provides utilities for testing dotsync components.
//
// Key components:
//   - TestEnvironment: isolated home, config and sync directories on the
//     real filesystem, with HOME and XDG variables pointed at them
//   - FileTree: declarative file layout setup
//   - Assert helpers for the three materialization modes
//
// Each test gets its own temp directories and loaded Config; nothing is
// shared between tests.
package testutil
