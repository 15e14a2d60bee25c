// Package vcs queries version-control metadata by running the git executable.
//
// Process execution goes through the Runner interface; ExecRunner is the
// os/exec implementation and tests substitute fakes. Git binds a Runner to a
// git executable, and every query takes the working directory explicitly.
package vcs
