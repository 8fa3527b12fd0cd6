//go:build mage

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the prism inspector into bin/.
func (Build) Prism() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "prism"), "."), withStream())
	return err
}

// Compiles the GLSL shaders under assets/shaders to SPIR-V with glslc.
func (Build) Shaders() error {
	return buildShaders()
}

func buildShaders() error {
	var sources []string
	for _, ext := range []string{"vert", "frag", "comp"} {
		matches, err := filepath.Glob(filepath.Join("assets", "shaders", "*."+ext+".glsl"))
		if err != nil {
			return err
		}
		sources = append(sources, matches...)
	}
	for _, src := range sources {
		// sky.frag.glsl -> sky.frag.spv
		out := strings.TrimSuffix(src, ".glsl") + ".spv"
		stage := strings.TrimPrefix(filepath.Ext(strings.TrimSuffix(src, ".glsl")), ".")
		if _, err := executeCmd("glslc", withArgs("-fshader-stage="+stage, src, "-o", out), withStream()); err != nil {
			return err
		}
	}
	return nil
}
