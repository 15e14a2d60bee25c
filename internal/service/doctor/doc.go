// Package doctor checks that a working directory can serve build metadata:
// git runs, the directory is a work tree, HEAD is on a branch and no stale
// index.lock blocks git.
package doctor
