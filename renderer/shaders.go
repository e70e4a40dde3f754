package renderer

import (
	"embed"
	"fmt"
	"path"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/*
var shaderFS embed.FS

// shaderSource reads an embedded shader and expands #include "file" lines.
// GLSL has no include directive, so shared helpers are pasted in here.
func shaderSource(name string) (string, error) {
	data, err := shaderFS.ReadFile(path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("reading shader %s: %w", name, err)
	}

	var out strings.Builder
	for _, line := range strings.SplitAfter(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#include ") {
			out.WriteString(line)
			continue
		}
		inc := strings.Trim(strings.TrimPrefix(trimmed, "#include "), `"`)
		src, err := shaderSource(inc)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		out.WriteString(src)
		if !strings.HasSuffix(src, "\n") {
			out.WriteString("\n")
		}
	}
	return out.String(), nil
}

// loadShader compiles an embedded vertex/fragment pair.
func loadShader(vsName, fsName string) (rl.Shader, error) {
	vs, err := shaderSource(vsName)
	if err != nil {
		return rl.Shader{}, err
	}
	fs, err := shaderSource(fsName)
	if err != nil {
		return rl.Shader{}, err
	}
	shader := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(shader) {
		return rl.Shader{}, fmt.Errorf("compiling shader %s/%s failed", vsName, fsName)
	}
	return shader, nil
}
