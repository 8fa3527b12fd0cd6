//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Inspects every pipeline layout under assets/ with the configured back-end.
func (Run) Inspect() error {
	fmt.Println("Run inspector...")
	_, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml"), withStream())
	return err
}

// Watches assets/ and rebuilds the inspected layouts and shaders on change.
func (Run) Watch() error {
	mg.Deps(Build.Shaders)
	_, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml", "-watch"), withStream())
	return err
}
