package shaders

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Faultbox/orrery/internal/engine/lighting"
)

func TestShadersEmbedded(t *testing.T) {
	sources := map[string]string{
		"body.vert":   BodyVertexShader,
		"body.frag":   BodyFragmentShader,
		"skybox.vert": SkyboxVertexShader,
		"skybox.frag": SkyboxFragmentShader,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing #version 410 core header", name)
		}
		if !strings.Contains(src, "void main()") {
			t.Errorf("%s: missing main", name)
		}
	}
}

func TestBodyShaderLightLimitMatchesLighting(t *testing.T) {
	want := fmt.Sprintf("#define MAX_POINT_LIGHTS %d", lighting.MaxPointLights)
	if !strings.Contains(BodyFragmentShader, want) {
		t.Errorf("body.frag does not contain %q", want)
	}
}
